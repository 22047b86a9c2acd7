package game

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"drawit/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (c *fakeConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	c.frames = append(c.frames, append([]byte(nil), data...))
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = nil
}

// ofType returns every received frame with the given type tag
func (c *fakeConn) ofType(typ string) [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out [][]byte
	for _, f := range c.frames {
		var env model.Envelope
		if json.Unmarshal(f, &env) == nil && env.Type == typ {
			out = append(out, f)
		}
	}
	return out
}

// last decodes the most recent frame of typ into v
func (c *fakeConn) last(t *testing.T, typ string, v any) {
	t.Helper()
	frames := c.ofType(typ)
	require.NotEmpty(t, frames, "no %s frame received", typ)
	require.NoError(t, json.Unmarshal(frames[len(frames)-1], v))
}

type fixedWords []string

func (w fixedWords) Random(n int) []string {
	if n > len(w) {
		n = len(w)
	}
	return append([]string(nil), w[:n]...)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// slowOptions keeps every background timer far away from test runtime
func slowOptions() Options {
	opts := DefaultOptions()
	opts.Tick = time.Hour
	opts.PingInterval = time.Hour
	opts.RemoveAfter = time.Hour
	return opts
}

func newTestRegistry(t *testing.T, opts Options) *Registry {
	t.Helper()
	reg := NewRegistry(fixedWords{"apple", "banana", "cherry", "dragon fruit"}, opts, zerolog.Nop())
	t.Cleanup(reg.Shutdown)
	return reg
}

// newTestRoom creates a room on a fake clock and joins one player per client id.
// Usernames are the client ids with a "-name" suffix.
func newTestRoom(t *testing.T, reg *Registry, capacity int, clientIDs ...string) (*Room, *testClock, map[string]*fakeConn) {
	t.Helper()
	room, err := reg.CreateRoom("room", capacity)
	require.NoError(t, err)

	clock := newTestClock()
	room.now = clock.Now

	conns := make(map[string]*fakeConn)
	for _, id := range clientIDs {
		conns[id] = &fakeConn{}
		_, err := room.Join(id, id+"-name", conns[id])
		require.NoError(t, err)
	}
	return room, clock, conns
}

// expire fires the phase timer transition synchronously
func expire(room *Room) {
	room.mu.Lock()
	defer room.mu.Unlock()
	room.stopTimer()
	room.advance()
}

func drawerOf(room *Room) *Player {
	room.mu.Lock()
	defer room.mu.Unlock()
	return room.drawer
}

func scoreOf(room *Room, p *Player) int {
	room.mu.Lock()
	defer room.mu.Unlock()
	return p.score
}

func chat(clientID, roomName, text string) ([]byte, model.ChatMessage) {
	msg := model.ChatMessage{
		Type:     model.TypeChatMessage,
		From:     clientID + "-name",
		RoomName: roomName,
		Message:  text,
	}
	raw, _ := json.Marshal(msg)
	return raw, msg
}

func other(conns map[string]*fakeConn, not string) string {
	for id := range conns {
		if id != not {
			return id
		}
	}
	return ""
}
