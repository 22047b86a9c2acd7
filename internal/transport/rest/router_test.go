package rest

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
	"drawit/internal/transport/rest/handler"
	"drawit/internal/transport/rest/middleware"
	"drawit/internal/transport/ws"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listWords []string

func (w listWords) Random(n int) []string { return w[:min(n, len(w))] }

type nopConn struct{}

func (nopConn) Send([]byte) error { return nil }
func (nopConn) Close()            {}

func newTestRouter(t *testing.T) (http.Handler, *game.Registry, *service.AuthService) {
	t.Helper()
	opts := game.DefaultOptions()
	opts.Tick = time.Hour
	opts.PingInterval = time.Hour

	reg := game.NewRegistry(listWords{"apple", "pear", "plum"}, opts, zerolog.Nop())
	t.Cleanup(reg.Shutdown)

	auth := service.NewAuthService("secret")
	router := NewRouter(&Container{
		AuthService: auth,
		RoomService: service.NewRoomService(reg, 8, nil, nil),
		WSHandler:   ws.NewHandler(reg, game.NewDispatcher(reg, zerolog.Nop()), zerolog.Nop()),
	})
	return router, reg, auth
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBasic(t *testing.T, rec *httptest.ResponseRecorder) model.BasicApiResponse {
	t.Helper()
	var resp model.BasicApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateRoomEndpoint(t *testing.T) {
	router, reg, _ := newTestRouter(t)

	rec := do(router, http.MethodPost, "/api/createRoom", `{"name":"lobby","maxPlayers":4}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBasic(t, rec).Successful)
	require.NotNil(t, reg.Room("lobby"))
	assert.Equal(t, 4, reg.Room("lobby").Capacity())

	rec = do(router, http.MethodPost, "/api/createRoom", `{"name":"lobby","maxPlayers":4}`)
	assert.Equal(t, model.BasicApiResponse{Successful: false, Message: "room already exists"}, decodeBasic(t, rec))

	rec = do(router, http.MethodPost, "/api/createRoom", `{"name":"big","maxPlayers":20}`)
	assert.Equal(t, "the maximum room size is 8", decodeBasic(t, rec).Message)

	rec = do(router, http.MethodPost, "/api/createRoom", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRoomsEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)
	do(router, http.MethodPost, "/api/createRoom", `{"name":"Lobby","maxPlayers":4}`)
	do(router, http.MethodPost, "/api/createRoom", `{"name":"other","maxPlayers":2}`)

	rec := do(router, http.MethodGet, "/api/getRooms", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodGet, "/api/getRooms?searchQuery=lob", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rooms []model.RoomResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rooms))
	assert.Equal(t, []model.RoomResponse{{Name: "Lobby", MaxPlayers: 4}}, rooms)

	rec = do(router, http.MethodGet, "/api/getRooms?searchQuery=", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rooms))
	assert.Len(t, rooms, 2)

	rec = do(router, http.MethodGet, "/api/getRooms?searchQuery=zzz", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestJoinRoomEndpoint(t *testing.T) {
	router, reg, _ := newTestRouter(t)
	do(router, http.MethodPost, "/api/createRoom", `{"name":"duo","maxPlayers":2}`)

	rec := do(router, http.MethodGet, "/api/joinRoom?username=alice&roomName=nowhere", "")
	assert.Equal(t, "room not found", decodeBasic(t, rec).Message)

	rec = do(router, http.MethodGet, "/api/joinRoom?username=alice&roomName=duo", "")
	assert.True(t, decodeBasic(t, rec).Successful)

	_, err := reg.Room("duo").Join("c1", "alice", nopConn{})
	require.NoError(t, err)
	rec = do(router, http.MethodGet, "/api/joinRoom?username=alice&roomName=duo", "")
	assert.Equal(t, "a player with this username already joined", decodeBasic(t, rec).Message)

	rec = do(router, http.MethodGet, "/api/joinRoom?roomName=duo", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreEndpointsUnavailable(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := do(router, http.MethodGet, "/api/rooms/lobby/leaderboard?top=5", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(router, http.MethodGet, "/api/rooms/lobby/rounds", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSessionEndpoint(t *testing.T) {
	router, _, auth := newTestRouter(t)

	rec := do(router, http.MethodPost, "/api/session", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodPost, "/api/session?client_id=c1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "c1", resp.ClientID)

	claims, err := auth.ValidateSession(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.SessionID, claims.SessionID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.Equal(t, resp.Token, cookies[0].Value)
}

func TestWebsocketRequiresClientID(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := do(router, http.MethodGet, "/ws/draw", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthAndCORS(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := do(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(router, http.MethodOptions, "/api/createRoom", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
