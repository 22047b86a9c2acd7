package handler

import (
	"encoding/json"
	"net/http"

	"drawit/internal/service"
	"drawit/internal/transport/rest/middleware"
)

// SessionResponse is returned by the session endpoint
type SessionResponse struct {
	Token     string `json:"token"`
	ClientID  string `json:"clientId"`
	SessionID string `json:"sessionId"`
}

// AuthHandler handles session endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Session handles POST /api/session?client_id=
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	token, claims, err := h.authSvc.IssueSession(r.URL.Query().Get("client_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	middleware.SetSessionCookie(w, token, claims.ExpiresAt.Time)

	writeJSON(w, http.StatusOK, SessionResponse{
		Token:     token,
		ClientID:  claims.ClientID,
		SessionID: claims.SessionID,
	})
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
