package repository

import (
	"context"
	"fmt"

	"drawit/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RoundRepo archives finished rounds
type RoundRepo interface {
	Create(ctx context.Context, round *model.RoundRecord) error
	ListByRoom(ctx context.Context, room string, limit int) ([]*model.RoundRecord, error)
}

type roundRepo struct {
	collection *mongo.Collection
}

func NewRoundRepo(db *mongo.Database) RoundRepo {
	return &roundRepo{
		collection: db.Collection("rounds"),
	}
}

func (r *roundRepo) Create(ctx context.Context, round *model.RoundRecord) error {
	res, err := r.collection.InsertOne(ctx, round)
	if err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		round.ID = oid
	}
	return nil
}

// ListByRoom returns the most recent rounds played under a room name
func (r *roundRepo) ListByRoom(ctx context.Context, room string, limit int) ([]*model.RoundRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"room": room}, opts)
	if err != nil {
		return nil, fmt.Errorf("find rounds: %w", err)
	}
	defer cursor.Close(ctx)

	var rounds []*model.RoundRecord
	if err = cursor.All(ctx, &rounds); err != nil {
		return nil, fmt.Errorf("decode rounds: %w", err)
	}
	return rounds, nil
}
