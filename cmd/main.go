package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clipsum/internal/app"
	"clipsum/internal/bot"
	"clipsum/internal/config"
	"clipsum/internal/database"
	"clipsum/internal/logging"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.ParseBot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, logCloser := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer logCloser.Close()
	slog.SetDefault(log)

	if err = run(cfg, log); err != nil {
		log.Error("Exiting with error",
			"error", err)
		logCloser.Close()
		os.Exit(1)
	}
}

func run(cfg config.BotConfig, log *slog.Logger) error {
	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("initialize db: %w", err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close db",
				"error", err,
				"dbPath", cfg.DBPath)
		}
	}()
	log.InfoContext(ctx, "DB is initialized",
		"dbPath", cfg.DBPath)

	orch, stopOrchestrator, err := app.NewOrchestrator(ctx, cfg.Config, log)
	if err != nil {
		return fmt.Errorf("initialize orchestrator: %w", err)
	}
	defer stopOrchestrator()

	botInst, err := bot.New(cfg.Token, orch, db, cfg.AllowedUsers, log)
	if err != nil {
		return fmt.Errorf("initialize bot: %w", err)
	}
	log.InfoContext(ctx, "Bot is initialized",
		"allowedUsersCount", len(cfg.AllowedUsers))

	done := make(chan struct{})
	go func() {
		defer close(done)
		botInst.Start(ctx)
	}()
	log.InfoContext(ctx, "Bot is started")

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	log.InfoContext(ctx, "Shutdown signal is received",
		"signal", sig.String())
	cancel()

	<-done
	log.InfoContext(ctx, "Bot is stopped",
		"signal", sig.String(),
		"uptimeSeconds", time.Since(start).Seconds())

	return nil
}
