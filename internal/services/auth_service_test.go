package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := NewAuthService(nil, "test-secret", time.Hour, zap.NewNop())

	token, err := svc.GenerateToken("64f0c2a9e1b2c3d4e5f60718", "maria@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c2a9e1b2c3d4e5f60718", claims.UserID)
	assert.Equal(t, "maria@example.com", claims.Email)
}

func TestAuthService_RejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService(nil, "secret-a", time.Hour, zap.NewNop())
	verifier := NewAuthService(nil, "secret-b", time.Hour, zap.NewNop())

	token, err := issuer.GenerateToken("64f0c2a9e1b2c3d4e5f60718", "maria@example.com")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestAuthService_RejectsExpiredToken(t *testing.T) {
	svc := NewAuthService(nil, "test-secret", -time.Minute, zap.NewNop())

	token, err := svc.GenerateToken("64f0c2a9e1b2c3d4e5f60718", "maria@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestAuthService_RejectsGarbageToken(t *testing.T) {
	svc := NewAuthService(nil, "test-secret", time.Hour, zap.NewNop())

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
}
