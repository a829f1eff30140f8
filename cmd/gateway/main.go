package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/gateway"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/pkg/config"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/pkg/middleware"
	pkgtls "github.com/cloud-wave-best-zizon/ecommerce-backend/pkg/tls"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	productProxy, err := gateway.NewProxy(cfg.ProductServiceURL, gateway.ProductFallbackBody, logger)
	if err != nil {
		log.Fatal("Failed to create product proxy:", err)
	}
	orderProxy, err := gateway.NewProxy(cfg.OrderServiceURL, gateway.OrderFallbackBody, logger)
	if err != nil {
		log.Fatal("Failed to create order proxy:", err)
	}
	fallback := gateway.NewFallbackHandler()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	router.Any("/api/*path", gateway.Route(productProxy, orderProxy))

	router.GET("/fallback/products", fallback.ProductFallback)
	router.GET("/fallback/orders", fallback.OrderFallback)
	router.GET("/health", fallback.Health)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	tlsConfig, err := pkgtls.LoadTLSConfig(&cfg.TLS, logger)
	if err != nil {
		log.Fatal("Failed to load TLS config:", err)
	}
	defer pkgtls.Cleanup()

	go func() {
		logger.Info("Starting API gateway", zap.String("port", cfg.Port))

		var err error
		if tlsConfig != nil {
			srv.TLSConfig = tlsConfig
			go pkgtls.WatchCertificates(logger)
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
