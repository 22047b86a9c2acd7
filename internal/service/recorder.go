package service

import (
	"context"
	"sync"
	"time"

	"drawit/internal/cache"
	"drawit/internal/model"
	"drawit/internal/repository"

	"github.com/rs/zerolog"
)

const (
	recorderQueueSize = 1024
	recorderTimeout   = 2 * time.Second
)

type eventKind int

const (
	eventScores eventKind = iota
	eventRound
	eventRoomClosed
)

type recorderEvent struct {
	kind      eventKind
	roomKey   string
	standings []model.PlayerData
	round     model.RoundRecord
}

// GameRecorder persists game events off the room lock. Events go through a
// bounded queue to a single worker and are dropped when the queue is full.
type GameRecorder struct {
	leaderboard cache.LeaderboardCache
	rounds      repository.RoundRepo
	log         zerolog.Logger

	mu     sync.RWMutex
	closed bool
	events chan recorderEvent
	done   chan struct{}
}

// NewGameRecorder starts the recorder worker. Either store may be nil.
func NewGameRecorder(leaderboard cache.LeaderboardCache, rounds repository.RoundRepo, log zerolog.Logger) *GameRecorder {
	r := &GameRecorder{
		leaderboard: leaderboard,
		rounds:      rounds,
		log:         log,
		events:      make(chan recorderEvent, recorderQueueSize),
		done:        make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *GameRecorder) ScoresChanged(roomKey string, standings []model.PlayerData) {
	if r.leaderboard == nil {
		return
	}
	r.enqueue(recorderEvent{kind: eventScores, roomKey: roomKey, standings: standings})
}

func (r *GameRecorder) RoundFinished(record model.RoundRecord) {
	if r.rounds == nil {
		return
	}
	r.enqueue(recorderEvent{kind: eventRound, round: record})
}

func (r *GameRecorder) RoomClosed(roomKey string) {
	if r.leaderboard == nil {
		return
	}
	r.enqueue(recorderEvent{kind: eventRoomClosed, roomKey: roomKey})
}

// Close drains queued events and stops the worker
func (r *GameRecorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.events)
	}
	r.mu.Unlock()
	<-r.done
}

func (r *GameRecorder) enqueue(ev recorderEvent) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.events <- ev:
	default:
		r.log.Warn().Str("room", ev.roomKey).Int("kind", int(ev.kind)).Msg("recorder queue full, event dropped")
	}
}

func (r *GameRecorder) run() {
	defer close(r.done)
	for ev := range r.events {
		r.apply(ev)
	}
}

func (r *GameRecorder) apply(ev recorderEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), recorderTimeout)
	defer cancel()

	var err error
	switch ev.kind {
	case eventScores:
		err = r.leaderboard.UpdateScores(ctx, ev.roomKey, ev.standings)
	case eventRound:
		err = r.rounds.Create(ctx, &ev.round)
	case eventRoomClosed:
		err = r.leaderboard.Delete(ctx, ev.roomKey)
	}
	if err != nil {
		r.log.Error().Err(err).Str("room", ev.roomKey).Msg("failed to record game event")
	}
}
