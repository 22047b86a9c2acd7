package game

import (
	"context"
	"sync"
	"time"

	"drawit/internal/model"
)

// Player is one connected identity. Connection and liveness fields are
// guarded by mu; drawing state, score and rank belong to the owning room
// and are only touched under the room lock.
type Player struct {
	ClientID string
	Username string

	mu       sync.Mutex
	conn     Conn
	online   bool
	lastPing time.Time
	lastPong time.Time
	probe    context.CancelFunc

	isDrawing bool
	score     int
	rank      int
}

// NewPlayer creates an online player bound to conn
func NewPlayer(clientID, username string, conn Conn) *Player {
	return &Player{
		ClientID: clientID,
		Username: username,
		conn:     conn,
		online:   true,
	}
}

// Rebind swaps the connection handle after a reconnect
func (p *Player) Rebind(conn Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn = conn
	p.online = true
}

// Send writes data to the current connection without blocking
func (p *Player) Send(data []byte) error {
	p.mu.Lock()
	conn := p.conn
	p.mu.Unlock()
	if conn == nil {
		return ErrConnClosed
	}
	return conn.Send(data)
}

func (p *Player) Online() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.online
}

// Probing reports whether a liveness probe is running
func (p *Player) Probing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.probe != nil
}

// ReceivedPong marks the player online
func (p *Player) ReceivedPong() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastPong = time.Now()
	p.online = true
}

// StartProbe starts the liveness loop, replacing any running one. When a
// cycle ends without a pong newer than interval the player goes offline,
// onTimeout runs once and the loop ends.
func (p *Player) StartProbe(interval time.Duration, onTimeout func()) {
	ctx, cancel := context.WithCancel(context.Background())

	p.mu.Lock()
	if p.probe != nil {
		p.probe()
	}
	p.probe = cancel
	p.online = true
	p.lastPong = time.Now()
	p.mu.Unlock()

	go p.runProbe(ctx, interval, onTimeout)
}

// StopProbe cancels the probe without waiting for it
func (p *Player) StopProbe() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.probe != nil {
		p.probe()
		p.probe = nil
	}
}

func (p *Player) runProbe(ctx context.Context, interval time.Duration, onTimeout func()) {
	ping := encode(model.NewPing())
	wait := time.NewTimer(interval)
	defer wait.Stop()

	for {
		p.mu.Lock()
		p.lastPing = time.Now()
		conn := p.conn
		p.mu.Unlock()

		if conn != nil {
			_ = conn.Send(ping)
		}

		wait.Reset(interval)
		select {
		case <-ctx.Done():
			return
		case <-wait.C:
		}

		p.mu.Lock()
		if ctx.Err() != nil {
			p.mu.Unlock()
			return
		}
		expired := p.lastPing.Sub(p.lastPong) > interval
		if expired {
			p.online = false
			p.probe()
			p.probe = nil
		}
		p.mu.Unlock()

		if expired {
			onTimeout()
			return
		}
	}
}

// data snapshots the player for a ranked list. Caller holds the room lock.
func (p *Player) data() model.PlayerData {
	return model.PlayerData{
		Username: p.Username,
		Drawing:  p.isDrawing,
		Score:    p.score,
		Rank:     p.rank,
	}
}
