// Command server runs the DevCollab API: auth, admin console, and the
// websocket presence channel.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devcollab/devcollab-api/internal/api"
	"github.com/devcollab/devcollab-api/internal/infrastructure/config"
	mongodb "github.com/devcollab/devcollab-api/internal/infrastructure/db/mongo"
	redisdb "github.com/devcollab/devcollab-api/internal/infrastructure/db/redis"
	"github.com/devcollab/devcollab-api/internal/ws"
	"github.com/devcollab/devcollab-api/pkg/logger"
)

// @title DevCollab API
// @version 1.0
// @description Collaboration platform backend with a role-gated admin console.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	for _, idx := range []interface{ EnsureIndexes(context.Context) error }{
		mongodb.NewUserRepository(db),
		mongodb.NewProjectRepository(db),
		mongodb.NewMessageRepository(db),
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Presence hub ---
	hub := ws.NewHub(redisdb.NewPresenceStore(rdb), log)
	go hub.Run(ctx)

	// --- HTTP ---
	e := api.NewRouter(db, rdb, hub, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
