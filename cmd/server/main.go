package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/rentloop/service-booking/internal/application"
	"github.com/rentloop/service-booking/internal/config"
	bookingDomain "github.com/rentloop/service-booking/internal/domain/booking"
	bookingEvents "github.com/rentloop/service-booking/internal/events"
	"github.com/rentloop/service-booking/internal/handler"
	"github.com/rentloop/service-booking/internal/platform/auth"
	"github.com/rentloop/service-booking/internal/platform/database"
	"github.com/rentloop/service-booking/internal/platform/health"
	"github.com/rentloop/service-booking/internal/platform/kafka"
	"github.com/rentloop/service-booking/internal/platform/logger"
	"github.com/rentloop/service-booking/internal/platform/middleware"
	"github.com/rentloop/service-booking/internal/repository"
)

const serviceName = "service-rental-booking"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig.DSN(), database.DefaultPoolConfig(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// The overlap exclusion constraint only exists in the SQL migrations, so
	// they run in every environment.
	if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), cfg.MigrationsPath, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, 15*time.Minute)

	// Initialize Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConfig.Addr,
		Password: cfg.RedisConfig.Password,
		DB:       cfg.RedisConfig.DB,
	})
	defer func() { _ = redisClient.Close() }()

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db, cfg.StoreTimeout)
	productRepo := repository.NewCachedProductRepository(
		repository.NewGormProductRepository(db, cfg.StoreTimeout),
		redisClient,
		cfg.RedisConfig.CacheTTL,
		log,
	)

	// Initialize application service
	bookingService := application.NewBookingService(
		bookingRepo,
		productRepo,
		bookingDomain.NewDailyRatePricingStrategy(),
		bookingEvents.NewKafkaBookingPublisher(kafkaProducer, log),
		log,
	)

	// Initialize and start product event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "rental-booking-service"
	productConsumer := bookingEvents.NewProductEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		productRepo,
		log,
	)
	defer func() { _ = productConsumer.Close() }()

	go func() {
		log.Info("starting product event consumer")
		if err := productConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("product event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	adminBookingHandler := handler.NewAdminBookingHandler(bookingService)

	// Setup Gin router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.AddChecker("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.RegisterRoutes(router)

	// Register routes
	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminBookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName)

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
