package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSigner signs and verifies the session tokens carried in the
// browser cookie. The token only transports the session id; validity is
// always decided by the sessions table.
type TokenSigner struct {
	secret []byte
}

// NewTokenSigner creates a signer using the configured session secret.
func NewTokenSigner(secret string) *TokenSigner {
	return &TokenSigner{secret: []byte(secret)}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Sign produces a signed token for a session id.
func (s *TokenSigner) Sign(sessionID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SessionID: sessionID,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Verify parses a signed token and returns the session id it carries.
// Returns ErrSessionInvalid for any malformed or tampered token.
func (s *TokenSigner) Verify(tokenString string) (string, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", ErrSessionInvalid
	}

	return claims.SessionID, nil
}
