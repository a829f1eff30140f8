package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Proxy forwards requests to a single downstream service and serves a
// fixed fallback payload when the downstream cannot be reached. The
// gateway holds no routing state beyond the downstream URL.
type Proxy struct {
	target   *url.URL
	proxy    *httputil.ReverseProxy
	fallback gin.H
	logger   *zap.Logger
}

func NewProxy(rawURL string, fallback gin.H, logger *zap.Logger) (*Proxy, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid downstream url %q: %w", rawURL, err)
	}

	p := &Proxy{
		target:   target,
		fallback: fallback,
		logger:   logger,
	}

	rp := httputil.NewSingleHostReverseProxy(target)
	rp.ErrorHandler = p.serveFallback
	p.proxy = rp

	return p, nil
}

func (p *Proxy) Handle(c *gin.Context) {
	p.proxy.ServeHTTP(c.Writer, c.Request)
}

// Route dispatches /api/* traffic to the owning downstream by path
// prefix. Unknown prefixes get a plain 404.
func Route(products, orders *Proxy) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch {
		case strings.HasPrefix(c.Request.URL.Path, "/api/products"):
			products.Handle(c)
		case strings.HasPrefix(c.Request.URL.Path, "/api/orders"):
			orders.Handle(c)
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown route"})
		}
	}
}

func (p *Proxy) serveFallback(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Warn("Downstream unavailable, serving fallback",
		zap.String("downstream", p.target.String()),
		zap.String("path", r.URL.Path),
		zap.Error(err))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	if encodeErr := json.NewEncoder(w).Encode(p.fallback); encodeErr != nil {
		p.logger.Error("Failed to write fallback response", zap.Error(encodeErr))
	}
}
