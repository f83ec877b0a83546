package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/luxhub/project-service/config"
	"github.com/luxhub/project-service/internal/pkg/broker"
	"github.com/luxhub/project-service/internal/pkg/cache"
	"github.com/luxhub/project-service/internal/pkg/database/postgres"
	"github.com/luxhub/project-service/internal/pkg/logger"
	"github.com/luxhub/project-service/internal/pkg/search"

	catH "github.com/luxhub/project-service/internal/catalog/handler"
	catRepoPkg "github.com/luxhub/project-service/internal/catalog/repository"
	catUCPkg "github.com/luxhub/project-service/internal/catalog/usecase"

	ledH "github.com/luxhub/project-service/internal/ledger/handler"
	ledUCPkg "github.com/luxhub/project-service/internal/ledger/usecase"

	ordH "github.com/luxhub/project-service/internal/orders/handler"
	ordListenerPkg "github.com/luxhub/project-service/internal/orders/listener"
	ordRepoPkg "github.com/luxhub/project-service/internal/orders/repository"
	ordUCPkg "github.com/luxhub/project-service/internal/orders/usecase"

	projH "github.com/luxhub/project-service/internal/project/handler"
	projRepoPkg "github.com/luxhub/project-service/internal/project/repository"
	projUCPkg "github.com/luxhub/project-service/internal/project/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     false,
		DisableStacktrace: false,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	projRepo := projRepoPkg.NewPGRepository(db)
	catRepo := catRepoPkg.NewPGRepository(db)
	ordRepo := ordRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()

	kafkaProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer kafkaProducer.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (search falls back to DB)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize UseCases
	projUC := projUCPkg.NewProjectUseCase(projRepo, appLogger)
	catUC := catUCPkg.NewCatalogUseCase(catRepo, redisClient, esClient, cfg.Ledger.ProductCacheTTL, appLogger)
	ordUC := ordUCPkg.NewOrderUseCase(ordRepo, catUC, redisClient, kafkaProducer, cfg.Ledger.HistoryCacheTTL, appLogger)

	ledgerStore := ledUCPkg.NewLedgerStore(ledUCPkg.Config{
		MaxQuantity:    cfg.Ledger.MaxQuantity,
		ResolveTimeout: cfg.Ledger.ResolveTimeout,
		HistoryTimeout: cfg.Ledger.HistoryTimeout,
	}, projUC, ordUC, catUC, appLogger)

	// 6.5 Initialize Listener
	ordListener := ordListenerPkg.NewOrderListener(kafkaConsumer, ordUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ordListener.Start(ctx)

	// 7. Initialize Handlers and Routes
	mux := http.NewServeMux()
	projH.NewProjectHandler(projUC, appLogger).RegisterRoutes(mux)
	catH.NewCatalogHandler(catUC, appLogger).RegisterRoutes(mux)
	ordH.NewOrderHandler(ordUC, appLogger).RegisterRoutes(mux)
	ledH.NewLedgerHandler(ledgerStore, ordUC, appLogger).RegisterRoutes(mux)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// 8. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	server := &http.Server{
		Addr:         port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
