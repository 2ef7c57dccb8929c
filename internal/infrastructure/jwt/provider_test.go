package jwtinfra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_EmptySecret(t *testing.T) {
	_, err := NewProvider("", time.Hour)
	require.Error(t, err)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	p, err := NewProvider("test-secret", time.Hour)
	require.NoError(t, err)

	tokenStr, err := p.Sign("u1", "alice@example.com", "", "s1")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := p.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "users", claims.Collection)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "s1", claims.SessionID)
}

func TestVerify_WrongSecretRejected(t *testing.T) {
	signer, err := NewProvider("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := NewProvider("secret-b", time.Hour)
	require.NoError(t, err)

	tokenStr, err := signer.Sign("u1", "a@b.com", "", "s1")
	require.NoError(t, err)

	_, err = verifier.Verify(tokenStr)
	assert.Error(t, err)
}

func TestVerify_TamperedTokenRejected(t *testing.T) {
	p, err := NewProvider("test-secret", time.Hour)
	require.NoError(t, err)

	tokenStr, err := p.Sign("u1", "a@b.com", "", "s1")
	require.NoError(t, err)

	tampered := tokenStr[:len(tokenStr)-2] + "xx"
	_, err = p.Verify(tampered)
	assert.Error(t, err)
}

func TestVerify_ExpiredTokenRejected(t *testing.T) {
	p, err := NewProvider("test-secret", -time.Minute)
	require.NoError(t, err)

	tokenStr, err := p.Sign("u1", "a@b.com", "", "s1")
	require.NoError(t, err)

	_, err = p.Verify(tokenStr)
	assert.Error(t, err)
}
