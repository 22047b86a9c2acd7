package repository

import (
	"context"
	"fmt"

	"drawit/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WordRepo stores the guessable word list
type WordRepo interface {
	All(ctx context.Context) ([]string, error)
	InsertMany(ctx context.Context, words []string) (int, error)
}

type wordRepo struct {
	collection *mongo.Collection
}

func NewWordRepo(db *mongo.Database) WordRepo {
	return &wordRepo{
		collection: db.Collection("words"),
	}
}

func (r *wordRepo) All(ctx context.Context) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find words: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []model.WordDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode words: %w", err)
	}

	words := make([]string, len(docs))
	for i, d := range docs {
		words[i] = d.Word
	}
	return words, nil
}

// InsertMany upserts words by value and returns how many were new
func (r *wordRepo) InsertMany(ctx context.Context, words []string) (int, error) {
	if len(words) == 0 {
		return 0, nil
	}
	writes := make([]mongo.WriteModel, len(words))
	for i, w := range words {
		writes[i] = mongo.NewUpdateOneModel().
			SetFilter(bson.M{"word": w}).
			SetUpdate(bson.M{"$setOnInsert": model.WordDoc{Word: w}}).
			SetUpsert(true)
	}

	res, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("seed words: %w", err)
	}
	return int(res.UpsertedCount), nil
}
