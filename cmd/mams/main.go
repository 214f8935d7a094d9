package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/mams-platform/mams/internal/catalog"
	catalogdomain "github.com/mams-platform/mams/internal/catalog/domain"
	"github.com/mams-platform/mams/internal/dashboard"
	"github.com/mams-platform/mams/internal/directory"
	directorydomain "github.com/mams-platform/mams/internal/directory/domain"
	"github.com/mams-platform/mams/internal/ledger"
	ledgerhttp "github.com/mams-platform/mams/internal/ledger/delivery/http"
	ledgerdomain "github.com/mams-platform/mams/internal/ledger/domain"
	"github.com/mams-platform/mams/internal/ledger/usecase/command"
	"github.com/mams-platform/mams/kafka"
	"github.com/mams-platform/mams/pkg/database"
	"github.com/mams-platform/mams/pkg/logger"
	"github.com/mams-platform/mams/pkg/middleware"
	"github.com/mams-platform/mams/pkg/tracing"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	serviceName := getEnv("OTEL_SERVICE_NAME", "mams")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting asset management service")

	// Initialize tracer
	_, shutdownTracer, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(ctx); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "mamsdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	gormDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer gormDB.Close()

	// Separate plain connection for health checks, kept off the ORM pool
	healthDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open health check connection")
	}
	defer healthDB.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&catalogdomain.EquipmentType{},
		&directorydomain.Base{},
		&directorydomain.User{},
		&ledgerdomain.InventoryRecord{},
		&ledgerdomain.PurchaseRecord{},
		&ledgerdomain.TransferRecord{},
		&ledgerdomain.AssignmentRecord{},
		&ledgerdomain.ExpenditureRecord{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka movement events are optional; without brokers the ledger still
	// records movements, it just publishes nothing
	var publisher command.MovementPublisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		kafkaPublisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to connect to Kafka, movement events disabled")
		} else {
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
			logger.Logger.Info().Str("brokers", brokers).Msg("Kafka movement publisher connected")
		}
	}

	// Redis caches dashboard summaries; nil client disables the cache
	var redisClient *redis.Client
	if addr := getEnv("REDIS_ADDR", ""); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})
		logger.Logger.Info().Str("addr", addr).Msg("Redis summary cache connected")
	}

	router, err := buildRouter(db, healthDB, publisher, redisClient)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handlers")
	}

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: c.Handler(router),
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}

func buildRouter(db *gorm.DB, healthDB *sql.DB, publisher command.MovementPublisher, redisClient *redis.Client) (*mux.Router, error) {
	catalogHandler, err := catalog.InitializeHTTPHandler(db)
	if err != nil {
		return nil, err
	}
	directoryHandler, err := directory.InitializeHTTPHandler(db)
	if err != nil {
		return nil, err
	}
	ledgerHandler, err := ledger.InitializeHTTPHandler(db, publisher)
	if err != nil {
		return nil, err
	}
	dashboardHandler, err := dashboard.InitializeHTTPHandler(db, redisClient)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery)
	router.Use(middleware.Logging)
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(ledgerhttp.MetricsMiddleware)

	catalogHandler.RegisterRoutes(router)
	directoryHandler.RegisterRoutes(router)
	ledgerHandler.RegisterRoutes(router)
	dashboardHandler.RegisterRoutes(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := healthDB.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	}).Methods("GET")

	return router, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
