package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"workbench/internal/platform/middleware"
)

// TokenService issues and validates the bearer tokens the HTTP surface uses.
// Tokens carry just enough to rehydrate the session from its store.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
}

func NewTokenService(signingKey string, ttl time.Duration) *TokenService {
	return &TokenService{signingKey: []byte(signingKey), ttl: ttl}
}

type tokenClaims struct {
	SessionID string `json:"sid"`
	Persona   string `json:"persona"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for the session.
func (t *TokenService) IssueToken(sess *Session) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		SessionID: sess.ID,
		Persona:   string(sess.Persona),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken implements middleware.JWTValidator.
func (t *TokenService) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return &middleware.JWTClaims{
		UserID:    claims.Subject,
		SessionID: claims.SessionID,
		Persona:   claims.Persona,
	}, nil
}
