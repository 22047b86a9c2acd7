package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"drawit/internal/cache"
	"drawit/internal/game"
	"drawit/internal/model"
	"drawit/internal/repository"
)

var (
	ErrInvalidRoomName = errors.New("room name is required")
	ErrRoomExists      = errors.New("room already exists")
	ErrRoomTooSmall    = errors.New("the minimum room size is 2")
	ErrRoomNotFound    = errors.New("room not found")
	ErrUsernameTaken   = errors.New("a player with this username already joined")
	ErrRoomFull        = errors.New("this room is already full")
	ErrUnavailable     = errors.New("backing store not configured")
)

// RoomTooLargeError reports a requested size above the configured maximum
type RoomTooLargeError struct {
	Max int
}

func (e *RoomTooLargeError) Error() string {
	return fmt.Sprintf("the maximum room size is %d", e.Max)
}

// RoomService handles the room lobby: creation, search and join checks
type RoomService struct {
	registry    *game.Registry
	maxRoomSize int
	leaderboard cache.LeaderboardCache
	rounds      repository.RoundRepo
}

// NewRoomService creates a new room service. leaderboard and rounds may be nil.
func NewRoomService(
	registry *game.Registry,
	maxRoomSize int,
	leaderboard cache.LeaderboardCache,
	rounds repository.RoundRepo,
) *RoomService {
	return &RoomService{
		registry:    registry,
		maxRoomSize: maxRoomSize,
		leaderboard: leaderboard,
		rounds:      rounds,
	}
}

// CreateRoom validates and registers a new room
func (s *RoomService) CreateRoom(req model.CreateRoomRequest) error {
	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		return ErrInvalidRoomName
	case req.MaxPlayers < 2:
		return ErrRoomTooSmall
	case req.MaxPlayers > s.maxRoomSize:
		return &RoomTooLargeError{Max: s.maxRoomSize}
	}

	if _, err := s.registry.CreateRoom(name, req.MaxPlayers); err != nil {
		if errors.Is(err, game.ErrRoomExists) {
			return ErrRoomExists
		}
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

// SearchRooms lists rooms whose name contains query, ignoring case
func (s *RoomService) SearchRooms(query string) []model.RoomResponse {
	query = strings.ToLower(query)
	out := []model.RoomResponse{}
	for _, room := range s.registry.Rooms() {
		if !strings.Contains(strings.ToLower(room.Name()), query) {
			continue
		}
		out = append(out, model.RoomResponse{
			Name:        room.Name(),
			MaxPlayers:  room.Capacity(),
			PlayerCount: room.PlayerCount(),
		})
	}
	return out
}

// CanJoin checks whether username may join roomName right now
func (s *RoomService) CanJoin(username, roomName string) error {
	room := s.registry.Room(roomName)
	switch {
	case room == nil:
		return ErrRoomNotFound
	case room.HasUsername(username):
		return ErrUsernameTaken
	case room.PlayerCount() >= room.Capacity():
		return ErrRoomFull
	}
	return nil
}

// Leaderboard returns the cached top scores of the live room
func (s *RoomService) Leaderboard(ctx context.Context, roomName string, top int) ([]model.LeaderboardEntry, error) {
	if s.leaderboard == nil {
		return nil, ErrUnavailable
	}
	key, ok := s.registry.RoomKey(roomName)
	if !ok {
		return nil, ErrRoomNotFound
	}
	entries, err := s.leaderboard.GetTop(ctx, key, top)
	if err != nil {
		return nil, fmt.Errorf("leaderboard %s: %w", roomName, err)
	}
	return entries, nil
}

// Rounds returns archived rounds played under roomName, newest first
func (s *RoomService) Rounds(ctx context.Context, roomName string, limit int) ([]*model.RoundRecord, error) {
	if s.rounds == nil {
		return nil, ErrUnavailable
	}
	rounds, err := s.rounds.ListByRoom(ctx, roomName, limit)
	if err != nil {
		return nil, fmt.Errorf("rounds %s: %w", roomName, err)
	}
	return rounds, nil
}
