package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finops/backend/internal/infrastructure/auth"
	"github.com/finops/backend/internal/infrastructure/config"
	"github.com/finops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(accessTTL time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  accessTTL,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "finops-test",
	})
}

func newTestTokenPair(t *testing.T, svc *auth.JWTService, role string) (*auth.TokenPair, auth.GenerateTokenInput) {
	t.Helper()
	input := auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "controller@example.com",
		Role:   role,
	}
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)
	return pair, input
}

func newJWTRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/api/budgets", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetJWTUserID(c),
			"role":    GetJWTRole(c),
			"jti":     GetJWTTokenID(c),
			"expires": !GetJWTExpiresAt(c).IsZero(),
		})
	})
	router.POST("/api/auth/login", okHandler)
	router.GET("/health", okHandler)
	return router
}

func request(router http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func assertUnauthorized(t *testing.T, w *httptest.ResponseRecorder, message string) {
	t.Helper()
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
	assert.Equal(t, message, resp.Error.Message)
	assert.NotEmpty(t, resp.Error.RequestID)
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	pair, input := newTestTokenPair(t, svc, "accountant")

	w := request(newJWTRouter(DefaultJWTConfig(svc)), http.MethodGet, "/api/budgets", pair.AccessToken)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, input.UserID.String(), body["user_id"])
	assert.Equal(t, "accountant", body["role"])
	assert.NotEmpty(t, body["jti"])
	assert.Equal(t, true, body["expires"])
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	router := newJWTRouter(DefaultJWTConfig(svc))
	pair, _ := newTestTokenPair(t, svc, "viewer")

	t.Run("missing header", func(t *testing.T) {
		assertUnauthorized(t, request(router, http.MethodGet, "/api/budgets", ""), "Invalid token")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/budgets", nil)
		req.Header.Set(AuthHeaderKey, "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assertUnauthorized(t, w, "Invalid token")
	})

	t.Run("garbage token", func(t *testing.T) {
		assertUnauthorized(t, request(router, http.MethodGet, "/api/budgets", "not-a-jwt"), "Invalid token")
	})

	t.Run("refresh token used as access token", func(t *testing.T) {
		assertUnauthorized(t, request(router, http.MethodGet, "/api/budgets", pair.RefreshToken), "Invalid token")
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newTestJWTService(-time.Minute)
		old, _ := newTestTokenPair(t, expired, "viewer")
		assertUnauthorized(t, request(router, http.MethodGet, "/api/budgets", old.AccessToken), "Token has expired")
	})
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	router := newJWTRouter(DefaultJWTConfig(newTestJWTService(15 * time.Minute)))

	assert.Equal(t, http.StatusOK, request(router, http.MethodPost, "/api/auth/login", "").Code)
	assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "/health", "").Code)
}

func TestJWTAuthMiddleware_Blacklist(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	blacklist := auth.NewInMemoryTokenBlacklist()
	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = blacklist
	router := newJWTRouter(cfg)

	pair, _ := newTestTokenPair(t, svc, "admin")
	require.Equal(t, http.StatusOK, request(router, http.MethodGet, "/api/budgets", pair.AccessToken).Code)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Minute))

	assertUnauthorized(t, request(router, http.MethodGet, "/api/budgets", pair.AccessToken), "Token has been revoked")
}

type failingBlacklist struct{}

func (failingBlacklist) Revoke(context.Context, string, time.Duration) error { return assert.AnError }
func (failingBlacklist) IsRevoked(context.Context, string) (bool, error) {
	return false, assert.AnError
}

func TestJWTAuthMiddleware_BlacklistOutageFailsOpen(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = failingBlacklist{}
	pair, _ := newTestTokenPair(t, svc, "admin")

	w := request(newJWTRouter(cfg), http.MethodGet, "/api/budgets", pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
