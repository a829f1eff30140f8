package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFallbackEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewFallbackHandler()

	router := gin.New()
	router.GET("/fallback/products", h.ProductFallback)
	router.GET("/fallback/orders", h.OrderFallback)
	router.GET("/health", h.Health)

	tests := []struct {
		path        string
		wantService string
	}{
		{"/fallback/products", "product-service"},
		{"/fallback/orders", "order-service"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusServiceUnavailable, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tt.wantService, body["service"])
			assert.Contains(t, body["message"], "temporarily unavailable")
		})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "API Gateway is UP", w.Body.String())
}

// closeNotifyRecorder makes httptest.ResponseRecorder usable with
// httputil.ReverseProxy on toolchains where it still requires
// http.CloseNotifier (removed in Go 1.22).
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
}

func (c *closeNotifyRecorder) CloseNotify() <-chan bool { return make(chan bool) }

func TestProxyForwardsToDownstream(t *testing.T) {
	gin.SetMode(gin.TestMode)

	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"path":"` + r.URL.Path + `"}`))
	}))
	defer downstream.Close()

	proxy, err := NewProxy(downstream.URL, ProductFallbackBody, zap.NewNop())
	require.NoError(t, err)

	router := gin.New()
	router.Any("/api/products/*path", proxy.Handle)

	w := httptest.NewRecorder()
	router.ServeHTTP(&closeNotifyRecorder{w}, httptest.NewRequest(http.MethodGet, "/api/products/7", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"path":"/api/products/7"}`, w.Body.String())
}

func TestProxyServesFallbackWhenDownstreamUnreachable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Closed port: the proxy cannot connect.
	proxy, err := NewProxy("http://127.0.0.1:1", OrderFallbackBody, zap.NewNop())
	require.NoError(t, err)

	router := gin.New()
	router.Any("/api/orders/*path", proxy.Handle)

	w := httptest.NewRecorder()
	router.ServeHTTP(&closeNotifyRecorder{w}, httptest.NewRequest(http.MethodGet, "/api/orders/1", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "order-service", body["service"])
}

func TestRouteDispatchesByPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)

	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	}))
	defer downstream.Close()

	products, err := NewProxy(downstream.URL, ProductFallbackBody, zap.NewNop())
	require.NoError(t, err)
	orders, err := NewProxy(downstream.URL, OrderFallbackBody, zap.NewNop())
	require.NoError(t, err)

	router := gin.New()
	router.Any("/api/*path", Route(products, orders))

	w := httptest.NewRecorder()
	router.ServeHTTP(&closeNotifyRecorder{w}, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/products", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(&closeNotifyRecorder{w}, httptest.NewRequest(http.MethodPost, "/api/orders", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(&closeNotifyRecorder{w}, httptest.NewRequest(http.MethodGet, "/api/payments", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewProxyRejectsInvalidURL(t *testing.T) {
	_, err := NewProxy("://bad", OrderFallbackBody, zap.NewNop())
	assert.Error(t, err)
}
