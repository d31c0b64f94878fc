package service

import (
	"context"
	"testing"

	"github.com/dhank77/akayacraft/internal/config"
	"github.com/dhank77/akayacraft/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		AdminUsername:      "admin",
		AdminPasswordHash:  string(hash),
	}
}

func TestLoginSuccess(t *testing.T) {
	cfg := authConfig(t)
	svc := NewAuthService(cfg)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "admin",
		Password: "rahasia123",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin", claims["username"])
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(authConfig(t))

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "admin",
		Password: "salah",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc := NewAuthService(authConfig(t))

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "bukan-admin",
		Password: "rahasia123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
