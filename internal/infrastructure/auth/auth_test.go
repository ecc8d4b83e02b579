package auth

import (
	"testing"
	"time"

	"github.com/shopledger/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, password string) *Service {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)

	return NewService(config.AuthConfig{
		PasswordHash:    hash,
		JWTSecret:       "test-secret-key-for-jwt-signing-32ch",
		TokenExpiration: time.Hour,
		Issuer:          "test",
	})
}

func TestService_Login(t *testing.T) {
	svc := newTestService(t, "correct-password")

	t.Run("issues token for correct password", func(t *testing.T) {
		token, err := svc.Login("correct-password")
		require.NoError(t, err)
		assert.NotEmpty(t, token.AccessToken)
		assert.Equal(t, "Bearer", token.TokenType)
		assert.True(t, token.ExpiresAt.After(time.Now()))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		_, err := svc.Login("wrong-password")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})
}

func TestService_ValidateToken(t *testing.T) {
	svc := newTestService(t, "pw")

	t.Run("accepts its own token", func(t *testing.T) {
		token, err := svc.Login("pw")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Subject)
		assert.Equal(t, "test", claims.Issuer)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewService(config.AuthConfig{
			PasswordHash:    mustHash(t, "pw"),
			JWTSecret:       "a-completely-different-secret-key-32",
			TokenExpiration: time.Hour,
			Issuer:          "test",
		})
		token, err := other.Login("pw")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewService(config.AuthConfig{
			PasswordHash:    mustHash(t, "pw"),
			JWTSecret:       "test-secret-key-for-jwt-signing-32ch",
			TokenExpiration: -time.Minute,
			Issuer:          "test",
		})
		token, err := expired.Login("pw")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return hash
}
