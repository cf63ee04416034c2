package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sessionly/sessionly/internal/auth"
	"github.com/sessionly/sessionly/internal/config"
	"github.com/sessionly/sessionly/internal/database"
	"github.com/sessionly/sessionly/internal/logging"
	"github.com/sessionly/sessionly/internal/models"
	"github.com/sessionly/sessionly/internal/notify"
	"github.com/sessionly/sessionly/internal/server"
	"github.com/sessionly/sessionly/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logging.NewLogger("sessionly-api", cfg.LogLevel, cfg.LogFormat)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.EncryptionKey != "" {
		if err := models.InitEncryption(cfg.EncryptionKey); err != nil {
			log.Error("failed to initialize encryption", "error", err)
			os.Exit(1)
		}
	} else if cfg.IsProduction() {
		log.Error("ENCRYPTION_KEY is required in production")
		os.Exit(1)
	} else {
		log.Warn("ENCRYPTION_KEY not set, storing therapy text unencrypted")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, log); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	if !cfg.IsProduction() {
		if err := database.SeedDevData(db); err != nil {
			log.Warn("failed to seed dev data", "error", err)
		}
	}

	if err := worker.InitClient(cfg.RedisURL); err != nil {
		log.Error("failed to initialize task client", "error", err)
		os.Exit(1)
	}
	defer worker.CloseClient()

	publisher, err := notify.NewPublisher(cfg.RedisURL)
	if err != nil {
		log.Error("failed to create notify publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	stopWorker, err := worker.Start(cfg, db, publisher)
	if err != nil {
		log.Error("failed to start worker", "error", err)
		os.Exit(1)
	}
	defer stopWorker()

	stopScheduler, err := worker.StartScheduler(cfg)
	if err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer stopScheduler()

	router := server.NewRouter(server.Deps{
		DB:          db,
		Tokens:      auth.NewTokenManager(cfg.JWTSecret, auth.DefaultTokenTTL),
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
