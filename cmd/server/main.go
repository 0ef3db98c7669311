package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/db"
	httpapi "backoffice/internal/http"
	"backoffice/internal/logger"
	"backoffice/internal/repository"
	"backoffice/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("backoffice", cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database error", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log); err != nil {
		log.Fatal("migration error", zap.Error(err))
	}

	repo := repository.New(pool)
	svc := service.New(repo, service.Options{MaxImportRows: cfg.ImportMaxRows, Logger: log})
	if err := svc.EnsureDefaultAdmin(ctx, cfg.DefaultAdminUsername, cfg.DefaultAdminPassword); err != nil {
		log.Fatal("default admin init error", zap.Error(err))
	}

	handler := httpapi.NewHandler(svc, log, func(ctx context.Context) error {
		return db.Ping(ctx, pool)
	})
	router := httpapi.NewRouter(handler, httpapi.RouterOptions{
		Logger:         log,
		Timeout:        cfg.RequestTimeout,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("backoffice listening", zap.String("addr", server.Addr), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			log.Error("force close failed", zap.Error(closeErr))
		}
	}
}
