package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adpilot/internal/adapter/alert"
	"adpilot/internal/adapter/amazon"
	httpadapter "adpilot/internal/adapter/http"
	"adpilot/internal/adapter/postgres"
	"adpilot/internal/adapter/sheets"
	"adpilot/internal/adapter/usecase"
	"adpilot/internal/config"
	"adpilot/internal/core/port"
	"adpilot/internal/db"
	"adpilot/internal/scheduler"
)

// automationJob adapts the usecase to the scheduler for self-scheduled mode.
// Each tick gets its own bounded context; fifteen minutes comfortably covers
// report polling plus the update batch.
type automationJob struct {
	svc port.Automation
}

func (j automationJob) Name() string { return "ads-automation" }

func (j automationJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()
	_, err := j.svc.Run(ctx)
	return err
}

// main is the entry point of the adpilot service. It loads configuration,
// optionally runs warehouse migrations, wires the platform client, sinks and
// notifier into the automation pipeline, then serves the run webhook and,
// when configured, a built-in cron trigger. On a termination signal it
// gracefully shuts down.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables. Rule validation happens
	// here, so a broken seasonal table stops the process before the first run.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler).With(slog.String("env", cfg.Env))
	}

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	platform, err := amazon.NewClient(cfg.Amazon, logger)
	if err != nil {
		logger.Error("amazon client error", slog.Any("error", err))
		os.Exit(1)
	}
	sheet, err := sheets.NewSink(ctx, cfg.Sheets)
	if err != nil {
		logger.Error("sheets client error", slog.Any("error", err))
		os.Exit(1)
	}

	svc := usecase.NewAutomation(
		platform,
		sheet,
		postgres.NewWarehouse(pool),
		alert.NewNotifier(cfg.Alerts, logger),
		cfg.Rules.Domain(),
		logger,
		nil,
	)

	var sched *scheduler.Scheduler
	if cfg.Schedule.Cron != "" {
		sched = scheduler.New(logger)
		if err = sched.AddJob(cfg.Schedule.Cron, automationJob{svc: svc}); err != nil {
			logger.Error("invalid cron schedule", slog.Any("error", err))
			os.Exit(1)
		}
		sched.Start()
		defer sched.Stop()
	}

	handler := httpadapter.NewHandler(svc, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
