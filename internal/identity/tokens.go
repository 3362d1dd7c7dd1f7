package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies session tokens. The verified username is the
// acting identity for every mutation; it is never taken from request bodies.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens builds a token issuer with the given signing secret and lifetime.
func NewTokens(secret []byte, ttl time.Duration) *Tokens {
	return &Tokens{secret: secret, ttl: ttl}
}

// Issue creates a signed session token for the given username.
func (t *Tokens) Issue(username string) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a session token and returns the acting username.
func (t *Tokens) Verify(raw string) (string, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", errors.Join(ErrUnauthorized, err)
	}
	if !token.Valid || claims.Username == "" {
		return "", ErrUnauthorized
	}
	return claims.Username, nil
}
