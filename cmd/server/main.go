package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.App.LogJSON, cfg.App.LogDebug)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zl = zl.With(zap.String("app", cfg.App.AppName), zap.String("env", cfg.App.Environment))

	bootstrap, cleanup, err := app.Bootstrap(cfg, zl)
	if err != nil {
		zl.Fatal("failed to bootstrap app", zap.Error(err))
	}
	defer func() {
		if err := cleanup(); err != nil {
			zl.Warn("cleanup error", zap.Error(err))
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		zl.Fatal("invalid HTTP port", zap.Error(err))
	}

	jobsCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()
	sched := bootstrap.Container.Scheduler
	if err := sched.Start(jobsCtx); err != nil {
		zl.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	errCh := make(chan error, 1)
	go func() {
		zl.Info("http server listening", zap.String("addr", addr))
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zl.Error("server error", zap.Error(err))
		}
	case sig := <-sigCh:
		zl.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			zl.Warn("shutdown error", zap.Error(err))
		}
	}
}
