package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"drawit/internal/model"
	"drawit/internal/service"

	"github.com/gorilla/mux"
)

const (
	defaultLeaderboardTop = 10
	defaultRoundsLimit    = 20
	maxListLimit          = 100
)

// RoomHandler handles room endpoints
type RoomHandler struct {
	roomSvc *service.RoomService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomSvc *service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// Create handles POST /api/createRoom
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.roomSvc.CreateRoom(req); err != nil {
		writeJSON(w, http.StatusOK, model.BasicApiResponse{Successful: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, model.BasicApiResponse{Successful: true})
}

// List handles GET /api/getRooms?searchQuery=
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	query, ok := r.URL.Query()["searchQuery"]
	if !ok || len(query) == 0 {
		writeError(w, http.StatusBadRequest, "searchQuery is required")
		return
	}
	writeJSON(w, http.StatusOK, h.roomSvc.SearchRooms(query[0]))
}

// Join handles GET /api/joinRoom?username=&roomName=
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	username, roomName := q.Get("username"), q.Get("roomName")
	if username == "" || roomName == "" {
		writeError(w, http.StatusBadRequest, "username and roomName are required")
		return
	}

	if err := h.roomSvc.CanJoin(username, roomName); err != nil {
		writeJSON(w, http.StatusOK, model.BasicApiResponse{Successful: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, model.BasicApiResponse{Successful: true})
}

// Leaderboard handles GET /api/rooms/{name}/leaderboard?top=
func (h *RoomHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	top := parseLimit(r, "top", defaultLeaderboardTop)

	entries, err := h.roomSvc.Leaderboard(r.Context(), name, top)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"room":        name,
		"leaderboard": entries,
	})
}

// Rounds handles GET /api/rooms/{name}/rounds?limit=
func (h *RoomHandler) Rounds(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	limit := parseLimit(r, "limit", defaultRoundsLimit)

	rounds, err := h.roomSvc.Rounds(r.Context(), name, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if rounds == nil {
		rounds = []*model.RoundRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"room":   name,
		"rounds": rounds,
	})
}

func parseLimit(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n <= 0 {
		return def
	}
	return min(n, maxListLimit)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
