package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/kirish34/teketeke/internal/config"
	"github.com/kirish34/teketeke/internal/jobs"
	"github.com/kirish34/teketeke/internal/logger"
	"github.com/kirish34/teketeke/internal/repository/postgres"
	"github.com/kirish34/teketeke/internal/scheduler"
	"github.com/kirish34/teketeke/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a single job and exit (timeout-pending-payments, seed-code-pool)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting TekeTeke cron runner...", "log_level", cfg.Log.Level)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	codePoolSvc := service.NewCodePoolService(store.CodePoolRepository, cfg.Payments.CodePrefix)
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{CodePool: codePoolSvc}, cfg)

	if *runOnce != "" {
		switch *runOnce {
		case "timeout-pending-payments":
			jobRunner.TimeoutPendingPayments()
		case "seed-code-pool":
			jobRunner.SeedCodePool()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		logger.Info("Job completed", "job", *runOnce)
		return
	}

	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	logger.Info("Scheduler started, waiting for shutdown signal")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down scheduler...")
	cronScheduler.Stop()
	logger.Info("Cron runner stopped")
}
