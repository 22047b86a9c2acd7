package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"drawit/internal/game"
	"drawit/internal/model"
	"drawit/internal/service"
	"drawit/internal/transport/rest/middleware"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listWords []string

func (w listWords) Random(n int) []string { return w[:min(n, len(w))] }

func newTestServer(t *testing.T) (*httptest.Server, *game.Registry) {
	t.Helper()
	opts := game.DefaultOptions()
	opts.Tick = time.Hour
	opts.PingInterval = time.Hour
	opts.RemoveAfter = time.Hour

	reg := game.NewRegistry(listWords{"apple", "pear", "plum"}, opts, zerolog.Nop())
	t.Cleanup(reg.Shutdown)
	_, err := reg.CreateRoom("lobby", 4)
	require.NoError(t, err)

	h := NewHandler(reg, game.NewDispatcher(reg, zerolog.Nop()), zerolog.Nop())
	mw := middleware.NewSessionMiddleware(service.NewAuthService("secret"))
	srv := httptest.NewServer(mw.RequireSession(http.HandlerFunc(h.Draw)))
	t.Cleanup(srv.Close)
	return srv, reg
}

func dial(t *testing.T, srv *httptest.Server, clientID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?client_id=" + clientID
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func sendJSON(t *testing.T, c *websocket.Conn, v any) {
	t.Helper()
	require.NoError(t, c.WriteJSON(v))
}

// readUntil reads frames until one with the given type tag arrives
func readUntil(t *testing.T, c *websocket.Conn, typ string) []byte {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, frame, err := c.ReadMessage()
		require.NoError(t, err)
		var env model.Envelope
		if json.Unmarshal(frame, &env) == nil && env.Type == typ {
			return frame
		}
	}
}

func TestDrawRejectsMissingClientID(t *testing.T) {
	srv, _ := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandshakeOverWebsocket(t *testing.T) {
	srv, reg := newTestServer(t)
	c := dial(t, srv, "a")

	sendJSON(t, c, model.JoinRoomHandshake{Type: model.TypeJoinRoomHandshake, Username: "alice", RoomName: "lobby"})

	var list model.PlayersList
	require.NoError(t, json.Unmarshal(readUntil(t, c, model.TypePlayersList), &list))
	require.Len(t, list.Players, 1)
	assert.Equal(t, "alice", list.Players[0].Username)
	assert.True(t, reg.Room("lobby").Has("a"))
}

func TestUnknownRoomOverWebsocket(t *testing.T) {
	srv, _ := newTestServer(t)
	c := dial(t, srv, "a")

	sendJSON(t, c, model.JoinRoomHandshake{Type: model.TypeJoinRoomHandshake, Username: "alice", RoomName: "nowhere"})

	var gameErr model.GameError
	require.NoError(t, json.Unmarshal(readUntil(t, c, model.TypeGameError), &gameErr))
	assert.Equal(t, model.ErrorRoomNotFound, gameErr.ErrorType)
}

func TestChatRelayedBetweenSockets(t *testing.T) {
	srv, _ := newTestServer(t)
	ca, cb := dial(t, srv, "a"), dial(t, srv, "b")

	sendJSON(t, ca, model.JoinRoomHandshake{Type: model.TypeJoinRoomHandshake, Username: "alice", RoomName: "lobby"})
	readUntil(t, ca, model.TypePlayersList)
	sendJSON(t, cb, model.JoinRoomHandshake{Type: model.TypeJoinRoomHandshake, Username: "bob", RoomName: "lobby"})
	readUntil(t, cb, model.TypePlayersList)

	sendJSON(t, ca, model.ChatMessage{Type: model.TypeChatMessage, From: "alice", RoomName: "lobby", Message: "hello"})

	var msg model.ChatMessage
	require.NoError(t, json.Unmarshal(readUntil(t, cb, model.TypeChatMessage), &msg))
	assert.Equal(t, "hello", msg.Message)
}

func TestDisconnectRequestClosesSocket(t *testing.T) {
	srv, reg := newTestServer(t)
	ca, cb := dial(t, srv, "a"), dial(t, srv, "b")

	sendJSON(t, ca, model.JoinRoomHandshake{Type: model.TypeJoinRoomHandshake, Username: "alice", RoomName: "lobby"})
	readUntil(t, ca, model.TypePlayersList)
	sendJSON(t, cb, model.JoinRoomHandshake{Type: model.TypeJoinRoomHandshake, Username: "bob", RoomName: "lobby"})
	readUntil(t, cb, model.TypePlayersList)

	sendJSON(t, ca, map[string]string{"type": model.TypeDisconnectRequest})

	require.NoError(t, ca.SetReadDeadline(time.Now().Add(2*time.Second)))
	var err error
	for err == nil {
		_, _, err = ca.ReadMessage()
	}
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)

	assert.Nil(t, reg.Player("a"))
	assert.False(t, reg.Room("lobby").Has("a"))
	assert.True(t, reg.Room("lobby").Has("b"))
}
