package auth

import (
	"testing"
	"time"

	"github.com/finops/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "finops-test",
	})
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "controller@example.com",
		Role:   "accountant",
	}
}

func TestNewJWTService_UsesSecretForRefreshIfNotProvided(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret"})
	assert.Equal(t, []byte("test-secret"), svc.refreshSecret)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	fixed := time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, fixed.Add(15*time.Minute), pair.AccessTokenExpiresAt)
	assert.Equal(t, fixed.Add(7*24*time.Hour), pair.RefreshTokenExpiresAt)
}

func TestValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, input.Email, claims.Email)
	assert.Equal(t, "accountant", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "finops-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	id, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, input.UserID, id)
}

func TestValidateAccessToken_Errors(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "a-completely-different-secret-key",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "finops-test",
	})
	otherIssuer := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "someone-else",
	})

	tests := []struct {
		name    string
		svc     *JWTService
		token   string
		wantErr error
	}{
		{"garbage", svc, "not.a.token", ErrInvalidToken},
		{"empty", svc, "", ErrInvalidToken},
		{"refresh token used as access", svc, pair.RefreshToken, ErrInvalidToken},
		{"different secret", other, pair.AccessToken, ErrInvalidToken},
		{"different issuer", otherIssuer, pair.AccessToken, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := newTestJWTService()
	issued := time.Now()
	svc.now = func() time.Time { return issued }

	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)

	// refresh token outlives the access token
	_, err = svc.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestValidateAccessToken_NotYetValid(t *testing.T) {
	svc := newTestJWTService()
	issued := time.Now()
	svc.now = func() time.Time { return issued.Add(time.Hour) }

	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	svc.now = func() time.Time { return issued }
	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenNotYetValid)
}

func TestValidateRefreshToken(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Empty(t, claims.Role, "refresh tokens do not carry the role")

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRefreshToken_SharedSecretRejectsAccessToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "shared-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "finops-test",
	})
	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestClaims_RemainingTTL(t *testing.T) {
	svc := newTestJWTService()
	issued := time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)
	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	assert.True(t, issued.Equal(claims.IssuedAtTime()))
	assert.Equal(t, 10*time.Minute, claims.RemainingTTL(issued.Add(5*time.Minute)))
	assert.Equal(t, time.Duration(0), claims.RemainingTTL(issued.Add(time.Hour)))
	assert.Equal(t, time.Duration(0), (&Claims{}).RemainingTTL(issued))
}

func TestTokensHaveUniqueIDs(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		pair, err := svc.GenerateTokenPair(input)
		require.NoError(t, err)
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.False(t, seen[claims.ID])
		seen[claims.ID] = true
	}
}
