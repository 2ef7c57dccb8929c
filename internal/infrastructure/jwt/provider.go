package jwtinfra

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the signed token payload. Collection mirrors the auth
// collection the user lives in; SessionID binds the token to one session.
type Claims struct {
	UserID     string `json:"user_id"`
	Collection string `json:"collection"`
	Email      string `json:"email,omitempty"`
	Mobile     string `json:"mobile,omitempty"`
	SessionID  string `json:"session_id"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs with a process-held secret.
type Provider struct {
	secret []byte
	expiry time.Duration
}

// NewProvider fails when the secret is absent; callers must treat that as a
// fatal configuration error, not a per-request condition.
func NewProvider(secret string, expiry time.Duration) (*Provider, error) {
	if secret == "" {
		return nil, errors.New("jwt signing secret is required")
	}
	return &Provider{secret: []byte(secret), expiry: expiry}, nil
}

func (p *Provider) Sign(userID, email, mobile, sessionID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     userID,
		Collection: "users",
		Email:      email,
		Mobile:     mobile,
		SessionID:  sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
