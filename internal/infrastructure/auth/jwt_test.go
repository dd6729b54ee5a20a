package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/towerledger/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-at-least-32-characters!!",
		TokenExpiration: expiration,
		Issuer:          "towerledger-test",
	})
}

func TestGenerateAndValidateStaffToken(t *testing.T) {
	svc := newTestService(time.Hour)
	userID := uuid.New()
	towerID := uuid.New()

	token, err := svc.GenerateToken(GenerateTokenInput{
		UserID:  userID,
		TowerID: towerID,
		Role:    "staff",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)

	claims, err := svc.ValidateToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, towerID.String(), claims.TowerID)
	assert.Equal(t, "staff", claims.Role)
	assert.Empty(t, claims.FlatID)

	got, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestGenerateAndValidateFlatToken(t *testing.T) {
	svc := newTestService(time.Hour)
	flatID := uuid.New()

	token, err := svc.GenerateToken(GenerateTokenInput{
		FlatID: flatID,
		Role:   "flat",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, flatID.String(), claims.FlatID)
	assert.Equal(t, "flat", claims.Role)
	assert.Empty(t, claims.UserID)
	assert.Equal(t, flatID.String(), claims.Subject)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.GenerateToken(GenerateTokenInput{UserID: uuid.New(), Role: "staff"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token.Value)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestService(time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:          "a-different-secret-32-characters!!!!",
		TokenExpiration: time.Hour,
		Issuer:          "towerledger-test",
	})

	token, err := svc.GenerateToken(GenerateTokenInput{UserID: uuid.New(), Role: "admin"})
	require.NoError(t, err)

	_, err = other.ValidateToken(token.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
