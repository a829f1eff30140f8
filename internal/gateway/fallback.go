package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Fixed payloads served when a downstream service is unreachable.
var (
	ProductFallbackBody = gin.H{
		"status":  "error",
		"message": "Product Service is temporarily unavailable. Please try again later.",
		"service": "product-service",
	}
	OrderFallbackBody = gin.H{
		"status":  "error",
		"message": "Order Service is temporarily unavailable. Please try again later.",
		"service": "order-service",
	}
)

type FallbackHandler struct{}

func NewFallbackHandler() *FallbackHandler {
	return &FallbackHandler{}
}

func (h *FallbackHandler) ProductFallback(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, ProductFallbackBody)
}

func (h *FallbackHandler) OrderFallback(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, OrderFallbackBody)
}

func (h *FallbackHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "API Gateway is UP")
}
