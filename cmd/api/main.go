package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm_leads_backend/internal/auth"
	"crm_leads_backend/internal/catalog"
	"crm_leads_backend/internal/dashboard"
	"crm_leads_backend/internal/email"
	"crm_leads_backend/internal/events"
	"crm_leads_backend/internal/followup"
	apphttp "crm_leads_backend/internal/http"
	"crm_leads_backend/internal/http/router"
	"crm_leads_backend/internal/identity"
	"crm_leads_backend/internal/leads"
	"crm_leads_backend/internal/leads/adapters"
	"crm_leads_backend/internal/notification"
	"crm_leads_backend/internal/reference"
	"crm_leads_backend/internal/scheduler"
	"crm_leads_backend/internal/targets"
	"crm_leads_backend/migrations"
	"crm_leads_backend/platform/config"
	"crm_leads_backend/platform/db"
	"crm_leads_backend/platform/logger"
	"crm_leads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Infrastructure: migrations, pool, bus, mail.

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	eventBus := events.NewInMemoryBus(log)
	sender := email.NewSender(cfg)
	val := validator.New()

	// Domain modules. Construction order matters only where one module
	// feeds another a dependency.

	// Notification is event-driven only; it registers no routes.
	notificationModule := notification.New(pool, sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	// Follow-up reminder scheduling, active only when Redis is configured
	reminderClient, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}
	schedulerModule := scheduler.NewModule(reminderClient, log)
	schedulerModule.RegisterHandlers(eventBus)

	authModule := auth.NewModule(pool, cfg, val)
	identityModule := identity.NewModule(pool, val)
	catalogModule := catalog.NewModule(pool, val)
	referenceModule := reference.NewModule(pool, val)

	// Leads checks product references through its own port rather than
	// importing the catalog module directly.
	catalogReader := adapters.NewCatalogReaderAdapter(catalogModule.Repository())
	leadsModule := leads.NewModule(pool, eventBus, catalogReader, val)

	followupModule := followup.NewModule(pool, eventBus, val)
	targetsModule := targets.NewModule(pool, identityModule.Repository(), val)
	dashboardModule := dashboard.NewModule(pool)

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			identityModule,
			catalogModule,
			referenceModule,
			leadsModule,
			followupModule,
			targetsModule,
			dashboardModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.ReminderScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; follow-up reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
	}
}

// withRetry runs fn up to attempts times with a quadratically growing
// delay. Startup dependencies like Postgres may come up after us in
// container environments.
func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", lastErr)

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt*attempt) * baseDelay):
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
