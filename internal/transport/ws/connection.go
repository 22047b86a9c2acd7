package ws

import (
	"errors"
	"sync"

	"drawit/internal/game"
)

const sendQueueSize = 256

var ErrSendQueueFull = errors.New("send queue full")

// Connection is the outbound side of one websocket. Frames are queued for
// the write pump; a slow reader loses frames instead of stalling a room.
type Connection struct {
	ClientID string

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

// NewConnection creates a connection for clientID
func NewConnection(clientID string) *Connection {
	return &Connection{
		ClientID: clientID,
		send:     make(chan []byte, sendQueueSize),
	}
}

// Send queues data without blocking
func (c *Connection) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return game.ErrConnClosed
	}
	select {
	case c.send <- data:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Close stops the write pump. Safe to call more than once.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
