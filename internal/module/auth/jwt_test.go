package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *JWTConfig {
	return &JWTConfig{
		Secret: "test-secret-key-that-is-long-enough",
		Expiry: time.Hour,
		Issuer: "test",
	}
}

func TestNewJWTManager_Defaults(t *testing.T) {
	manager := NewJWTManager(&JWTConfig{Secret: "s"})
	assert.Equal(t, 12*time.Hour, manager.Expiry())
	assert.Equal(t, "hackathon", manager.config.Issuer)
}

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())
	admin := &AdminUser{
		ID:    uuid.New(),
		Email: "admin@nxzen.com",
	}

	token, claims, err := manager.Generate(admin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))

	parsed, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, parsed.AdminID)
	assert.Equal(t, admin.Email, parsed.Email)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestJWTManager_ValidateRejectsGarbage(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	_, err := manager.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ValidateRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())
	other := NewJWTManager(&JWTConfig{Secret: "a-completely-different-secret", Expiry: time.Hour})

	token, _, err := manager.Generate(&AdminUser{ID: uuid.New(), Email: "a@b.co"})
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ValidateRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Expiry = -time.Minute
	manager := NewJWTManager(cfg)

	// Negative expiry falls back to the default in the constructor, so
	// set it directly.
	manager.config.Expiry = -time.Minute

	token, _, err := manager.Generate(&AdminUser{ID: uuid.New(), Email: "a@b.co"})
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
