package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edumate/internal/auth"
	"edumate/internal/config"
	"edumate/internal/repository"
	"edumate/internal/server"
	"edumate/internal/service"
	"edumate/internal/storage/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	addrFlag := flag.String("addr", cfg.Addr, "HTTP listen address")
	dbFlag := flag.String("db", cfg.DBPath, "Path to sqlite database file")
	staticFlag := flag.String("static", cfg.StaticDir, "Directory with stylesheets and images")
	flag.Parse()
	cfg.Addr, cfg.DBPath, cfg.StaticDir = *addrFlag, *dbFlag, *staticFlag

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	if err := run(cfg, logger); err != nil {
		logger.Error("edumate stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	logger.Info("EduMate task and reminder tracker")
	if cfg.UsesDevSecret() {
		logger.Warn("EDUMATE_SECRET_KEY not set; using the development secret")
	}

	store, err := sqlite.Open(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	db, err := repository.NewDB(store.DB(), logger)
	if err != nil {
		return err
	}

	resets, err := auth.NewResetTokens(cfg.SecretKey, cfg.ResetTTL)
	if err != nil {
		return err
	}

	accounts := service.NewAccountService(repository.NewUserRepository(db), store,
		auth.NewHasher(cfg.BcryptCost), resets, cfg.SessionTTL, logger)
	tasks := service.NewTaskService(repository.NewTaskRepository(db), logger)
	reminders := service.NewReminderService(repository.NewReminderRepository(db), logger)

	scheduler := service.NewSchedulerService(time.UTC, logger)
	if _, err := scheduler.ScheduleSessionSweep(cfg.SessionSweep, accounts); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv, err := server.New(server.Options{
		Accounts:     accounts,
		Tasks:        tasks,
		Reminders:    reminders,
		Logger:       logger,
		StaticDir:    cfg.StaticDir,
		CookieSecure: cfg.CookieSecure,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
	return nil
}
