// The scheduler binary runs the asynq worker that delivers follow-up
// reminder emails. It shares the database and configuration with the API
// server but consumes tasks instead of serving HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"crm_leads_backend/internal/email"
	"crm_leads_backend/internal/scheduler"
	"crm_leads_backend/platform/config"
	"crm_leads_backend/platform/db"
	"crm_leads_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	sender := email.NewSender(cfg)

	worker, err := scheduler.NewWorker(cfg, cfg, pool, sender, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("scheduler worker stopped")
}
