package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoundRecord is an archived finished round
type RoundRecord struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Room          string             `json:"room" bson:"room"`
	Generation    int64              `json:"generation" bson:"generation"`
	Word          string             `json:"word" bson:"word"`
	DrawingPlayer string             `json:"drawingPlayer" bson:"drawingPlayer"`
	Guessed       []string           `json:"guessed" bson:"guessed"`
	Standings     []PlayerData       `json:"standings" bson:"standings"`
	StartedAt     time.Time          `json:"startedAt" bson:"startedAt"`
	FinishedAt    time.Time          `json:"finishedAt" bson:"finishedAt"`
}

// WordDoc is a stored guessable word
type WordDoc struct {
	Word string `json:"word" bson:"word"`
}
