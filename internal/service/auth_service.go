package service

import (
	"errors"
	"time"

	"drawit/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionTTL = 24 * time.Hour

var (
	ErrMissingClientID = errors.New("missing client id")
	ErrInvalidToken    = errors.New("invalid or expired token")
)

// AuthService issues and validates per-connection session tokens
type AuthService struct {
	jwtSecret []byte
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(secret string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(secret),
		now:       time.Now,
	}
}

// IssueSession signs a session for clientID with a fresh session id
func (s *AuthService) IssueSession(clientID string) (string, *model.SessionClaims, error) {
	if clientID == "" {
		return "", nil, ErrMissingClientID
	}

	now := s.now()
	claims := &model.SessionClaims{
		ClientID:  clientID,
		SessionID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return tokenString, claims, nil
}

// ValidateSession validates a session JWT and returns its claims
func (s *AuthService) ValidateSession(tokenString string) (*model.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.SessionClaims)
	if !ok || !token.Valid || claims.ClientID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
