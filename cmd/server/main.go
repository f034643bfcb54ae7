package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/config"
	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/logger"
	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/router"
	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/store"
	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("could not load config")
	}
	log := logger.New(cfg.LogLevel, cfg.Development())
	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err == nil {
		err = mongoClient.Ping(connectCtx, readpref.Primary())
	}
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer mongoClient.Disconnect(ctx)
	log.Info().Str("db", cfg.MongoDB).Msg("Database connected")

	mongoStore := store.NewMongoStore(mongoClient.Database(cfg.MongoDB))
	if err := mongoStore.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}

	// ── Redis (optional user cache) ──────────────────────────
	var users tracker.UserStore = mongoStore
	if cfg.CacheEnabled() {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect")
		}
		defer rdb.Close()
		users = store.NewCachedUsers(mongoStore, rdb, cfg.UserCacheTTL, log)
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.UserCacheTTL).Msg("user cache enabled")
	}

	// ── Handlers ─────────────────────────────────────────────
	h := tracker.NewHandler(users, mongoStore, tracker.WithLocation(cfg.Location))

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(log, cfg.AllowedOrigins(), h),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Your app is listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
