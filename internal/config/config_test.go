package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	require.NoError(t, LoadConfig())

	assert.Equal(t, 8080, AppConfig.Port)
	assert.Equal(t, "development", AppConfig.Environment)
	assert.Equal(t, "users", AppConfig.UserCollection)
	assert.Equal(t, "passengers", AppConfig.PassengerCollection)
	assert.Equal(t, "cpf_verifications", AppConfig.CPFVerificationCollection)
	assert.Equal(t, 24*time.Hour, AppConfig.JWTTTL)
	assert.Equal(t, 30*time.Second, AppConfig.CPFProviderTimeout)
	assert.Equal(t, 4, AppConfig.VerificationWorkers)
	assert.Equal(t, 256, AppConfig.VerificationQueueSize)
	assert.Contains(t, AppConfig.CPFProviderBaseURL, "api-cpf-light")
	assert.False(t, AppConfig.TracingEnabled)
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("VERIFICATION_WORKERS", "8")

	require.NoError(t, LoadConfig())

	assert.Equal(t, 9090, AppConfig.Port)
	assert.Equal(t, "production", AppConfig.Environment)
	assert.Equal(t, time.Hour, AppConfig.JWTTTL)
	assert.Equal(t, 8, AppConfig.VerificationWorkers)
}

func TestLoadConfig_RejectsMalformedValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "not-a-number")

	require.Error(t, LoadConfig())
}
