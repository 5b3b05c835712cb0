package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	_ "github.com/lib/pq"

	httpapi "github.com/kirish34/teketeke/internal/api/http"
	"github.com/kirish34/teketeke/internal/cache"
	"github.com/kirish34/teketeke/internal/config"
	"github.com/kirish34/teketeke/internal/jobs"
	"github.com/kirish34/teketeke/internal/logger"
	"github.com/kirish34/teketeke/internal/repository/postgres"
	"github.com/kirish34/teketeke/internal/scheduler"
	"github.com/kirish34/teketeke/internal/security"
	"github.com/kirish34/teketeke/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting TekeTeke settlement backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Policy Cache
	cacheTTL := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	var policyCache cache.Cache
	if cfg.Cache.Type == "redis" {
		logger.Info("Using redis policy cache", "addr", cfg.Cache.RedisAddr)
		policyCache = cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr}), "teketeke:")
	} else {
		logger.Info("Using in-memory policy cache", "max_entries", cfg.Cache.MaxEntries)
		policyCache = cache.NewMemoryCache(cfg.Cache.MaxEntries)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenExpiryHours)*time.Hour)

	// Initialize Services
	policySvc := service.NewPolicyService(store.PolicyRepository, policyCache, cacheTTL)
	settlementSvc := service.NewSettlementService(
		store.SettlementRepository,
		store.TransactionRepository,
		store.LedgerRepository,
		policySvc,
	)
	ledgerSvc := service.NewLedgerService(store.TransactionRepository, store.LedgerRepository)
	codePoolSvc := service.NewCodePoolService(store.CodePoolRepository, cfg.Payments.CodePrefix)

	// Seed the code pool and start the timeout sweeper
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{CodePool: codePoolSvc}, cfg)
	jobRunner.SeedCodePool()
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// Set up HTTP server
	router := httpapi.NewRouter(settlementSvc, ledgerSvc, policySvc, codePoolSvc, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
