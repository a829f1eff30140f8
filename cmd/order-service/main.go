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
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/order/client"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/order/handler"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/order/repository"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/order/service"
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

	cfg, err := config.LoadOrderService()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	var orderRepo repository.OrderRepository
	var db *sql.DB
	if cfg.LocalMode {
		logger.Info("Running in local mode with in-memory store")
		orderRepo = repository.NewMemoryOrderRepository()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err = postgres.Open(ctx, cfg.DatabaseDSN)
		cancel()
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()
		orderRepo = repository.NewPostgresOrderRepository(db)
	}

	productClient := client.NewProductClient(cfg.ProductServiceURL)

	var publisher service.OrderEventPublisher
	var producer *events.KafkaProducer
	if cfg.KafkaBrokers != "" {
		producer = events.NewKafkaProducer(cfg.KafkaBrokers, logger)
		defer producer.Close()
		publisher = producer
	}

	orderService := service.NewOrderService(orderRepo, productClient, publisher, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	api := router.Group("/api")
	{
		api.GET("/orders", orderHandler.ListOrders)
		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "order-service"})
		})
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
		api.POST("/orders/:id/cancel", orderHandler.CancelOrder)
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
		logger.Info("Starting order service", zap.String("port", cfg.Port))

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
