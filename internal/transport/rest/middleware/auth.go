package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"drawit/internal/service"
)

type contextKey string

const (
	ClientIDKey  contextKey = "clientId"
	SessionIDKey contextKey = "sessionId"

	// SessionCookie carries the signed session token
	SessionCookie = "SESSION"
)

// SessionMiddleware attaches a session to every request it guards
type SessionMiddleware struct {
	authSvc *service.AuthService
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(authSvc *service.AuthService) *SessionMiddleware {
	return &SessionMiddleware{authSvc: authSvc}
}

// RequireSession validates the session cookie (or bearer token). When none
// is valid a fresh session is issued for the client_id query parameter.
func (m *SessionMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			if c, err := r.Cookie(SessionCookie); err == nil {
				token = c.Value
			}
		}

		if token != "" {
			if claims, err := m.authSvc.ValidateSession(token); err == nil {
				next.ServeHTTP(w, r.WithContext(withSession(r.Context(), claims.ClientID, claims.SessionID)))
				return
			}
		}

		clientID := r.URL.Query().Get("client_id")
		if clientID == "" {
			http.Error(w, `{"error":"missing client id"}`, http.StatusUnauthorized)
			return
		}

		token, claims, err := m.authSvc.IssueSession(clientID)
		if err != nil {
			http.Error(w, `{"error":"could not issue session"}`, http.StatusInternalServerError)
			return
		}
		SetSessionCookie(w, token, claims.ExpiresAt.Time)

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), claims.ClientID, claims.SessionID)))
	})
}

// SetSessionCookie writes the session cookie
func SetSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func withSession(ctx context.Context, clientID, sessionID string) context.Context {
	ctx = context.WithValue(ctx, ClientIDKey, clientID)
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// GetClientID extracts client ID from context
func GetClientID(ctx context.Context) string {
	if v := ctx.Value(ClientIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetSessionID extracts session ID from context
func GetSessionID(ctx context.Context) string {
	if v := ctx.Value(SessionIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
