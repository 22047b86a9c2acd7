package game

import (
	"encoding/json"
	"errors"

	"drawit/internal/model"
)

var (
	ErrRoomExists      = errors.New("room already exists")
	ErrRoomFull        = errors.New("room is full")
	ErrRoomClosed      = errors.New("room is closed")
	ErrUsernameTaken   = errors.New("username is taken in this room")
	ErrConnClosed      = errors.New("connection closed")
	ErrInvalidCapacity = errors.New("room capacity must be at least 2")
)

// Conn is an outbound connection handle. Send must not block.
type Conn interface {
	Send(data []byte) error
	Close()
}

// WordSource supplies distinct random words
type WordSource interface {
	Random(n int) []string
}

// Recorder receives game events for out-of-band storage. Implementations must not block.
type Recorder interface {
	ScoresChanged(roomKey string, standings []model.PlayerData)
	RoundFinished(record model.RoundRecord)
	RoomClosed(roomKey string)
}

type nopRecorder struct{}

func (nopRecorder) ScoresChanged(string, []model.PlayerData) {}
func (nopRecorder) RoundFinished(model.RoundRecord)          {}
func (nopRecorder) RoomClosed(string)                        {}

func encode(v any) []byte {
	data, _ := json.Marshal(v)
	return data
}
