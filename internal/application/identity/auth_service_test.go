package identity

import (
	"context"
	"testing"
	"time"

	"github.com/finops/backend/internal/domain/identity"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/finops/backend/internal/infrastructure/auth"
	"github.com/finops/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough-32",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "finops-test",
	})
}

func newTestAuthService(repo *MockUserRepository, blacklist auth.TokenBlacklist) *AuthService {
	return NewAuthService(repo, newTestJWTService(), blacklist, DefaultAuthServiceConfig(), zap.NewNop())
}

func newTestUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser("pat@example.com", "password123", "Pat", role)
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to viewer and issues tokens", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo, nil)
		repo.On("ExistsByEmail", ctx, "new@example.com").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := svc.Register(ctx, RegisterInput{Email: "new@example.com", Password: "password123", FullName: "New"})
		require.NoError(t, err)
		assert.Equal(t, "viewer", result.User.Role)
		assert.Equal(t, "new@example.com", result.User.Email)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.NotNil(t, result.User.LastLoginAt)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo, nil)
		repo.On("ExistsByEmail", ctx, "pat@example.com").Return(true, nil)

		_, err := svc.Register(ctx, RegisterInput{Email: "pat@example.com", Password: "password123"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("admin only for the first account", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo, nil)
		repo.On("Count", ctx).Return(int64(3), nil)

		_, err := svc.Register(ctx, RegisterInput{Email: "boss@example.com", Password: "password123", Role: "admin"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("first account may be admin", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo, nil)
		repo.On("Count", ctx).Return(int64(0), nil)
		repo.On("ExistsByEmail", ctx, "boss@example.com").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := svc.Register(ctx, RegisterInput{Email: "boss@example.com", Password: "password123", Role: "admin"})
		require.NoError(t, err)
		assert.Equal(t, "admin", result.User.Role)
	})

	t.Run("weak password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo, nil)
		repo.On("ExistsByEmail", ctx, "new@example.com").Return(false, nil)

		_, err := svc.Register(ctx, RegisterInput{Email: "new@example.com", Password: "short"})
		assert.ErrorContains(t, err, "at least 8 characters")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo, nil)
		user := newTestUser(t, identity.RoleAccountant)
		repo.On("FindByEmail", ctx, "pat@example.com").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginInput{Email: "pat@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, "accountant", result.User.Role)

		claims, err := newTestJWTService().ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, "accountant", claims.Role)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo, nil)
		repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password123"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("wrong password locks after max attempts", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo, nil)
		user := newTestUser(t, identity.RoleViewer)
		repo.On("FindByEmail", ctx, "pat@example.com").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		var err error
		for i := 0; i < 5; i++ {
			_, err = svc.Login(ctx, LoginInput{Email: "pat@example.com", Password: "wrongpass1"})
		}
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
		assert.True(t, user.IsLocked())

		_, err = svc.Login(ctx, LoginInput{Email: "pat@example.com", Password: "password123"})
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code, "correct password is refused while locked")
	})

	t.Run("inactive account", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo, nil)
		user := newTestUser(t, identity.RoleViewer)
		user.Active = false
		repo.On("FindByEmail", ctx, "pat@example.com").Return(user, nil)

		_, err := svc.Login(ctx, LoginInput{Email: "pat@example.com", Password: "password123"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_INACTIVE", domainErr.Code)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the pair and re-reads the role", func(t *testing.T) {
		repo := new(MockUserRepository)
		blacklist := auth.NewInMemoryTokenBlacklist()
		svc := newTestAuthService(repo, blacklist)
		user := newTestUser(t, identity.RoleViewer)

		pair, err := newTestJWTService().GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID, Email: user.Email, Role: "viewer"})
		require.NoError(t, err)

		user.Role = identity.RoleAccountant
		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		result, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
		require.NoError(t, err)

		claims, err := newTestJWTService().ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "accountant", claims.Role)

		_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
	})

	t.Run("access tokens are rejected", func(t *testing.T) {
		svc := newTestAuthService(new(MockUserRepository), nil)
		pair, err := newTestJWTService().GenerateTokenPair(auth.GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.AccessToken})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})

	t.Run("deactivated user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo, nil)
		user := newTestUser(t, identity.RoleViewer)
		user.Active = false
		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		pair, err := newTestJWTService().GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID})
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_INACTIVE", domainErr.Code)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := newTestAuthService(new(MockUserRepository), blacklist)

	err := svc.Logout(ctx, LogoutInput{UserID: uuid.New(), TokenJTI: "jti-1", ExpiresAt: time.Now().Add(10 * time.Minute)})
	require.NoError(t, err)
	revoked, err := blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	err = svc.Logout(ctx, LogoutInput{UserID: uuid.New(), TokenJTI: "jti-2", ExpiresAt: time.Now().Add(-time.Minute)})
	require.NoError(t, err)
	revoked, err = blacklist.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked, "expired tokens need no entry")

	assert.NoError(t, newTestAuthService(new(MockUserRepository), nil).Logout(ctx, LogoutInput{TokenJTI: "jti-3"}))
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, nil)
	user := newTestUser(t, identity.RoleAdmin)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	missing := uuid.New()
	repo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

	info, err := svc.GetCurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pat", info.DisplayName)
	assert.Equal(t, "admin", info.Role)

	_, err = svc.GetCurrentUser(ctx, missing)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, nil)
	user := newTestUser(t, identity.RoleViewer)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	repo.On("Update", ctx, user).Return(nil)

	err := svc.ChangePassword(ctx, ChangePasswordInput{UserID: user.ID, OldPassword: "nope12345", NewPassword: "newpass123"})
	assert.ErrorContains(t, err, "Current password is incorrect")

	require.NoError(t, svc.ChangePassword(ctx, ChangePasswordInput{UserID: user.ID, OldPassword: "password123", NewPassword: "newpass123"}))
	assert.True(t, user.VerifyPassword("newpass123"))
}
