package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drawit/internal/cache"
	"drawit/internal/config"
	"drawit/internal/game"
	"drawit/internal/logger"
	"drawit/internal/repository"
	"drawit/internal/service"
	"drawit/internal/transport/rest"
	"drawit/internal/transport/ws"
	"drawit/internal/words"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	var (
		db          *mongo.Database
		leaderboard cache.LeaderboardCache
		rounds      repository.RoundRepo
	)

	// MongoDB connection (optional)
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = mongoClient.Ping(pingCtx, nil)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to ping MongoDB")
		}
		log.Info().Str("db", cfg.MongoDB).Msg("connected to MongoDB")

		db = mongoClient.Database(cfg.MongoDB)
		rounds = repository.NewRoundRepo(db)
	} else {
		log.Warn().Msg("MONGO_URI not set, round archive disabled")
	}

	// Redis connection (optional)
	if cfg.RedisURI != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr(),
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal().Err(err).Msg("failed to ping Redis")
		}
		log.Info().Str("addr", cfg.RedisAddr()).Msg("connected to Redis")

		leaderboard = cache.NewLeaderboardCache(rdb)
	} else {
		log.Warn().Msg("REDIS_URI not set, leaderboard disabled")
	}

	wordList := loadWords(ctx, db, cfg.WordListPath, log)
	log.Info().Int("words", wordList.Len()).Msg("word list loaded")

	// Game core
	registry := game.NewRegistry(wordList, cfg.Game.Options(), log.With().Str("component", "game").Logger())
	recorder := service.NewGameRecorder(leaderboard, rounds, log.With().Str("component", "recorder").Logger())
	registry.SetRecorder(recorder)
	dispatcher := game.NewDispatcher(registry, log.With().Str("component", "dispatcher").Logger())

	// Services
	authSvc := service.NewAuthService(cfg.JWTSecret)
	roomSvc := service.NewRoomService(registry, cfg.MaxRoomSize, leaderboard, rounds)

	router := rest.NewRouter(&rest.Container{
		AuthService: authSvc,
		RoomService: roomSvc,
		WSHandler:   ws.NewHandler(registry, dispatcher, log.With().Str("component", "ws").Logger()),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe")
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	registry.Shutdown()
	recorder.Close()

	log.Info().Msg("server exited")
}

// loadWords prefers the Mongo words collection and falls back to the file
func loadWords(ctx context.Context, db *mongo.Database, path string, log zerolog.Logger) *words.List {
	if db != nil {
		loadCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		stored, err := repository.NewWordRepo(db).All(loadCtx)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("failed to load words from MongoDB, using word file")
		case len(stored) > 0:
			return words.New(stored)
		}
	}

	list, err := words.LoadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to load word list")
	}
	return list
}
