package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"card-tokenizer/internal/config"
	"card-tokenizer/internal/handlers"
	"card-tokenizer/internal/kafka"
	"card-tokenizer/internal/logger"
	"card-tokenizer/internal/middleware"
	rediswrap "card-tokenizer/internal/redis"
	"card-tokenizer/internal/services"
	"card-tokenizer/internal/storage"
	"card-tokenizer/internal/stripeclient"

	"github.com/gin-gonic/gin"
)

// Global logger instance
var log *logger.Logger

func main() {
	log = logger.NewLogger()
	defer log.Close()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn("ENV", "Error loading .env file, using environment variables")
	}

	log.LogProcess("STARTUP", "Card Tokenizer starting up...")
	log.Info("SYSTEM", "Initializing components...")

	cfg := config.Load()
	log.Info("CONFIG", "Configuration loaded successfully")

	log.LogProcess("DATABASE", "Initializing MySQL database...")
	store, err := storage.NewMySQLStore(cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", "Failed to initialize MySQL: "+err.Error())
	}
	defer store.Close()
	log.LogDatabase("INIT", "mysql", "MySQL storage initialized successfully")

	log.LogProcess("KAFKA", "Initializing Kafka producer...")
	kafkaProducer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.MockMode, log)
	if err != nil {
		log.Fatal("KAFKA", "Failed to create Kafka producer: "+err.Error())
	}
	defer kafkaProducer.Close()
	log.LogKafka("INIT", "producer", "Kafka producer initialized successfully")

	log.LogProcess("KAFKA", "Initializing Kafka consumer...")
	kafkaConsumer, err := kafka.NewUsageConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, store)
	if err != nil {
		log.Fatal("KAFKA", "Failed to create Kafka consumer: "+err.Error())
	}
	defer kafkaConsumer.Close()
	log.LogKafka("INIT", "consumer", "Kafka consumer initialized successfully")

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	log.LogProcess("SERVICE", "Redis connection configured")

	// Initialize tokenization client with the publishable key
	if cfg.Stripe.PublishableKey == "" {
		log.Warn("STRIPE", "STRIPE_PUBLISHABLE_KEY environment variable not set")
		log.Warn("STRIPE", "Please set a valid publishable key in your .env file")
	}
	backend := stripeclient.NewHTTPBackend(cfg.Stripe.BaseURL)
	tokenClient, err := stripeclient.NewClient(cfg.Stripe.PublishableKey, backend, log)
	if err != nil {
		log.Fatal("STRIPE", "Failed to initialize token client: "+err.Error())
	}
	log.LogProcess("STRIPE", "Token client initialized")

	// Initialize services
	tokenService := services.NewTokenService(store, kafkaProducer, tokenClient, log, rediswrap.NewRedis(redisClient))
	log.LogProcess("SERVICE", "Token service initialized")

	// Initialize handlers
	tokenHandler := handlers.NewTokenHandler(tokenService)
	log.LogProcess("HANDLER", "All handlers initialized")

	// Start Kafka consumer in background
	go func() {
		log.LogKafka("START", "consumer", "Starting Kafka consumer goroutine")
		if err := kafkaConsumer.ConsumeUsage(context.Background(), tokenService.ProcessUsageEvent); err != nil {
			log.Error("KAFKA", "Consumer error: "+err.Error())
		}
	}()

	// Setup router
	router := setupRouter(tokenHandler)
	log.LogProcess("ROUTER", "HTTP router configured")

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.LogProcess("SERVER", "Starting HTTP server on port "+cfg.Server.Port)
		log.Info("STARTUP", "🚀 Card Tokenizer is ready to accept requests!")
		log.Info("STARTUP", "📊 Health check available at: http://localhost"+cfg.Server.Port+"/health")
		log.Info("STARTUP", "💳 Token API available at: http://localhost"+cfg.Server.Port+"/api/v1/tokens")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", "Server failed to start: "+err.Error())
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("SHUTDOWN", "Received shutdown signal, initiating graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("SHUTDOWN", "Server forced to shutdown: "+err.Error())
	}

	log.Info("SHUTDOWN", "✅ Card Tokenizer shutdown completed successfully")
}

func setupRouter(tokenHandler *handlers.TokenHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.EnhancedLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit(log))
	router.Use(middleware.SecurityHeaders(log))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		log.LogAPI("GET", "/health", "200", "0ms")
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"service":   "card-tokenizer",
			"version":   "1.0.0",
		})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		tokens := v1.Group("/tokens")
		{
			tokens.POST("", tokenHandler.CreateToken)
			tokens.GET("", tokenHandler.ListRecords)
			tokens.GET("/:id", tokenHandler.GetRecord)
			tokens.GET("/:id/upstream", tokenHandler.GetUpstreamToken)
		}

		cards := v1.Group("/cards")
		{
			cards.POST("/validate", tokenHandler.ValidateCard)
		}
	}

	log.LogProcess("ROUTER", "All routes registered successfully")
	return router
}
