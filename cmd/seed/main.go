package main

import (
	"context"
	"time"

	"drawit/internal/config"
	"drawit/internal/logger"
	"drawit/internal/repository"
	"drawit/internal/words"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	mongoURI := cfg.MongoURI
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer client.Disconnect(ctx)

	list, err := words.LoadFile(cfg.WordListPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.WordListPath).Msg("failed to read word list")
	}

	repo := repository.NewWordRepo(client.Database(cfg.MongoDB))
	inserted, err := repo.InsertMany(ctx, list.Words())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed words")
	}

	log.Info().
		Int("total", list.Len()).
		Int("inserted", inserted).
		Str("db", cfg.MongoDB).
		Msg("word list seeded")
}
