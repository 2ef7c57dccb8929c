package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:   "test-secret",
		TokenExpiry: 2 * time.Hour,
		OTPLength:   6,
		OTPExpiry:   5 * time.Minute,
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_MissingSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
}

func TestValidate_BadOTPLength(t *testing.T) {
	cfg := validConfig()
	cfg.OTPLength = 0
	assert.ErrorContains(t, cfg.Validate(), "OTP_LENGTH")
}

func TestValidate_BadOTPExpiry(t *testing.T) {
	cfg := validConfig()
	cfg.OTPExpiry = 0
	assert.ErrorContains(t, cfg.Validate(), "OTP_EXPIRY_MS")
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, 6, cfg.OTPLength)
	assert.Equal(t, 5*time.Minute, cfg.OTPExpiry)
	assert.Equal(t, 2*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, "otp_codes", cfg.DynamoTables.OtpCodes)
}
