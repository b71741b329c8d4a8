package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog/log"

	"hostel-backend/config"
	"hostel-backend/internal/api"
	"hostel-backend/internal/applog"
	"hostel-backend/internal/db"
	"hostel-backend/internal/push"
	"hostel-backend/internal/store"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}
	applog.Init(cfg.Env)
	log.Info().Str("path", configPath).Msg("configuration loaded")

	if cfg.Auth.JWTSecret == "" {
		log.Fatal().Msg("auth.jwt_secret must be configured")
	}
	if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
		log.Fatal().Msg("VAPID keys must be configured")
	}

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize database")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}
	log.Info().Msg("database initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)

	pool := push.NewPool(cfg.WorkerPool.Size, cfg.WorkerPool.QueueSize, appStore, &webpushOptions)
	pool.Start(ctx)

	router := api.NewRouter(appStore, cfg, pool, &webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server ListenAndServe")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutdown signal received, stopping services")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}
