package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"mentorhub/backend/internal/api"
	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/config"
	"mentorhub/backend/internal/db"
	"mentorhub/backend/internal/logging"
	"mentorhub/backend/internal/metrics"
	"mentorhub/backend/internal/routes"
	"mentorhub/backend/internal/workers"
)

func main() {
	configPath := flag.String("config", os.Getenv("MENTORHUB_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	if err := cfg.Validate(); err != nil {
		logging.Fatal("Invalid configuration", "error", err)
	}

	logging.Info("MentorHub starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	dsn := cfg.Postgres.DSN()

	sqlDB, err := db.InitPostgres(dsn)
	if err != nil {
		logging.Fatal("Failed to connect to Postgres (sqlx)", "error", err)
	}
	defer sqlDB.Close()
	logging.Info("Connected to Postgres (sqlx)")

	gormDB, err := db.InitPostgresORM(dsn)
	if err != nil {
		logging.Fatal("Failed to connect to Postgres (GORM)", "error", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logging.Fatal("Failed to migrate schema", "error", err)
	}
	logging.Info("Connected to Postgres (GORM) and migrated schema")

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = common.NewRedisClient(cfg.Redis)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logging.Fatal("Failed to connect to Redis", "addr", cfg.Redis.Addr(), "error", err)
		}
		defer redisClient.Close()
	}

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	deps, err := api.InitDependencies(cfg, gormDB, sqlDB, redisClient, metricsReg)
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bg := workers.InitWorkers(ctx, deps.Repo.Stats, deps.Services.Events, metricsReg, cfg.Progress.MonitorInterval)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           routes.RegisterRoutes(deps, prometheus.DefaultGatherer, time.Now()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "addr", cfg.Addr, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err)
	}
	bg.Stop()

	logging.Info("Shutdown complete")
}
