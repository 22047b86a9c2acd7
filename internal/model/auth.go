package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims identify a connection before the websocket upgrade
type SessionClaims struct {
	ClientID  string `json:"clientId"`
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}
