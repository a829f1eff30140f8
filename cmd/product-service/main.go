package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/events"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/handler"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/repository"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/service"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/pkg/config"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/pkg/middleware"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/pkg/postgres"
	pkgtls "github.com/cloud-wave-best-zizon/ecommerce-backend/pkg/tls"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadProductService()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	var productRepo repository.ProductRepository
	var db *sql.DB
	if cfg.LocalMode {
		logger.Info("Running in local mode with in-memory store")
		productRepo = repository.NewMemoryProductRepository()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err = postgres.Open(ctx, cfg.DatabaseDSN)
		cancel()
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()
		productRepo = repository.NewPostgresProductRepository(db)
	}

	productService := service.NewProductService(productRepo, logger)
	productHandler := handler.NewProductHandler(productService, logger)

	var consumer *events.KafkaConsumer
	if cfg.KafkaBrokers != "" {
		consumer = events.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, productService, logger)
		consumer.Start()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	api := router.Group("/api")
	{
		api.GET("/products", productHandler.ListProducts)
		api.POST("/products", productHandler.CreateProduct)
		api.GET("/products/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "product-service"})
		})
		api.GET("/products/:id", productHandler.GetProduct)
		api.PUT("/products/:id", productHandler.UpdateProduct)
		api.DELETE("/products/:id", productHandler.DeleteProduct)
		api.PATCH("/products/:id/stock", productHandler.AdjustStock)
	}

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
		logger.Info("Starting product service", zap.String("port", cfg.Port))

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
	if consumer != nil {
		consumer.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
