package main

import (
	"context"
	"errors"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/open-builders/school-bot/internal/bot"
	rcache "github.com/open-builders/school-bot/internal/cache/redis"
	"github.com/open-builders/school-bot/internal/common/config"
	"github.com/open-builders/school-bot/internal/common/logger"
	apphttp "github.com/open-builders/school-bot/internal/http"
	platformmongo "github.com/open-builders/school-bot/internal/platform/mongo"
	platformredis "github.com/open-builders/school-bot/internal/platform/redis"
	"github.com/open-builders/school-bot/internal/platform/telegram"
	"github.com/open-builders/school-bot/internal/repository"
	"github.com/open-builders/school-bot/internal/repository/memory"
	"github.com/open-builders/school-bot/internal/repository/mongodb"
	"github.com/open-builders/school-bot/internal/scene"
	"github.com/open-builders/school-bot/internal/service/profile"
)

const serviceName = "school-bot"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(serviceName, false)
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(serviceName, cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var checks []apphttp.Check

	store, mongoClient := openStore(ctx, cfg)
	if mongoClient != nil {
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Close(closeCtx); err != nil {
				logger.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
			}
		}()
	}
	checks = append(checks, storeChecks(store)...)

	var sessions scene.Store = scene.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		redisClient, err := platformredis.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		sessions = rcache.NewSessionStore(redisClient, cfg.Redis.SessionTTL)
		checks = append(checks, apphttp.Check{Name: "redis", Pinger: apphttp.PingFunc(redisClient.Check)})
		logger.Info().Msg("Dialog sessions stored in Redis")
	} else {
		logger.Warn().Msg("REDIS_ADDR is empty, dialog sessions are kept in memory")
	}

	tgBot, err := telegram.NewBot(cfg.Telegram.BotToken, cfg.Telegram.PollTimeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Telegram bot")
	}

	app := bot.New(bot.Options{
		Messenger: telegram.NewClient(tgBot),
		Store:     store,
		Sessions:  sessions,
		Rewards: profile.Rewards{
			StartingCoins:   cfg.Rewards.StartingCoins,
			CompletionBonus: cfg.Rewards.CompletionBonus,
			ReferralBonus:   cfg.Rewards.ReferralBonus,
		},
	})
	// in-flight events finish during shutdown
	app.Start(context.WithoutCancel(ctx))
	telegram.Bind(tgBot, app)

	server := apphttp.NewServer(cfg.Server.Port, apphttp.NewRouter(serviceName, cfg.Debug, checks...))
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	go tgBot.Start()
	logger.Info().Str("bot", tgBot.Me.Username).Msg("Bot started")

	<-ctx.Done()
	logger.Info().Msg("Shutting down...")

	// stop polling first so no new events are queued
	tgBot.Stop()
	app.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server forced to shutdown")
	}

	logger.Info().Msg("Bot exited")
}

// openStore picks the profile store. Without a reachable database the bot
// still runs and tells users the store is offline.
func openStore(ctx context.Context, cfg *config.Config) (*repository.Store, *platformmongo.Client) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Warn().Msg("Using the in-memory store, data is lost on restart")
		return memory.NewStore(), nil
	}
	if !cfg.StoreConfigured() {
		logger.Error().Msg("MONGO_URI is empty, running with the store unavailable")
		return repository.Unavailable(), nil
	}

	client, err := platformmongo.Open(ctx, cfg.Store.MongoURI, cfg.Store.Database, cfg.Store.Timeout)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to MongoDB, running with the store unavailable")
		return repository.Unavailable(), nil
	}
	logger.Info().Str("database", cfg.Store.Database).Msg("MongoDB connection established")
	return mongodb.NewStore(client), client
}

// storeChecks reports the profile store to readiness. An unavailable store
// stays unready; the memory store has nothing to ping.
func storeChecks(store *repository.Store) []apphttp.Check {
	if store.Ping == nil {
		return nil
	}
	return []apphttp.Check{{Name: "mongo", Pinger: apphttp.PingFunc(store.Ping)}}
}
