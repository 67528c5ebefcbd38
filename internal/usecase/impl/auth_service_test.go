package impl

import (
	"context"
	"testing"
	"time"

	"parlaseramik/internal/domain/entity"
	domainerrors "parlaseramik/internal/domain/errors"
	"parlaseramik/internal/domain/service"
	mockService "parlaseramik/internal/mocks/service"
	"parlaseramik/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testRefreshTTL = 7 * 24 * time.Hour

// authServiceFixtures wires the service to the in-memory store and mocked crypto.
type authServiceFixtures struct {
	service *authService
	store   *memStore
	hasher  *mockService.MockPasswordHasher
	tokens  *mockService.MockTokenService
	now     time.Time
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	store := newMemStore()
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockService.NewMockTokenService(t)

	svc := NewAuthService(AuthServiceParams{
		TxManager:        store,
		UserRepo:         store.UserRepo(),
		RefreshTokenRepo: store.RefreshTokenRepo(),
		Hasher:           hasher,
		TokenService:     tokens,
		Logger:           newDiscardLogger(),
	}).(*authService)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return authServiceFixtures{service: svc, store: store, hasher: hasher, tokens: tokens, now: now}
}

// expectSession stubs token issuance for user, returning refresh as the raw refresh token.
func (fx authServiceFixtures) expectSession(user *entity.User, access, refresh string) {
	fx.tokens.EXPECT().GenerateTokens(user.ID, user.Roles().ToStrings()).Return(access, refresh, nil).Once()
	fx.tokens.EXPECT().HashToken(refresh).Return("hash:" + refresh)
	fx.tokens.EXPECT().GetRefreshTokenDuration().Return(testRefreshTTL).Maybe()
}

func (fx authServiceFixtures) addUser(email, passwordHash string, enabled bool) *entity.User {
	user := fx.store.addUser(email)
	user.PasswordHash = passwordHash
	user.Enabled = enabled
	fx.store.users[user.ID] = *user

	return user
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("gizli123").Return("bcrypt-hash", nil)

	user, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:     "  Ayse@Example.COM ",
		Password:  "gizli123",
		FirstName: "Ayşe",
		LastName:  "Yılmaz",
	})
	require.NoError(t, err)

	assert.Equal(t, "ayse@example.com", user.Email)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.True(t, user.Enabled)
	assert.Equal(t, "bcrypt-hash", user.PasswordHash)

	stored, err := fx.store.UserRepo().FindByEmail(ctx, "ayse@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)
	fx.addUser("ayse@example.com", "x", true)

	fx.hasher.EXPECT().Hash(mock.Anything).Return("bcrypt-hash", nil)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "AYSE@example.com",
		Password: "gizli123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "ayse@example.com",
		Password: "12345",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := fx.addUser("ayse@example.com", "bcrypt-hash", true)

	fx.hasher.EXPECT().Check("gizli123", "bcrypt-hash").Return(true)
	fx.expectSession(user, "access-1", "refresh-1")

	out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "Ayse@example.com", Password: "gizli123"})
	require.NoError(t, err)
	assert.Equal(t, "access-1", out.AccessToken)
	assert.Equal(t, "refresh-1", out.RefreshToken)
	assert.Equal(t, user.ID, out.User.ID)

	stored, err := fx.store.RefreshTokenRepo().FindRefreshTokenByHash(ctx, "hash:refresh-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
	assert.Equal(t, fx.now.Add(testRefreshTTL), stored.ExpiresAt)
}

func TestAuthService_Login_FailuresLookAlike(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	fx.addUser("ayse@example.com", "bcrypt-hash", true)
	fx.addUser("pasif@example.com", "bcrypt-hash", false)

	fx.hasher.EXPECT().Check("yanlis", "bcrypt-hash").Return(false)

	for name, input := range map[string]*usecase.LoginInput{
		"unknown email":  {Email: "yok@example.com", Password: "gizli123"},
		"disabled":       {Email: "pasif@example.com", Password: "gizli123"},
		"wrong password": {Email: "ayse@example.com", Password: "yanlis"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := fx.service.Login(ctx, input)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := fx.addUser("ayse@example.com", "bcrypt-hash", true)
	require.NoError(t, fx.store.RefreshTokenRepo().CreateRefreshToken(ctx, &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: "hash:refresh-old",
		ExpiresAt: fx.now.Add(time.Hour),
	}))

	fx.tokens.EXPECT().ValidateRefreshToken("refresh-old").Return(&service.Claims{UserID: user.ID}, nil)
	fx.tokens.EXPECT().HashToken("refresh-old").Return("hash:refresh-old")
	fx.expectSession(user, "access-2", "refresh-new")

	out, err := fx.service.Refresh(ctx, "refresh-old")
	require.NoError(t, err)
	assert.Equal(t, "refresh-new", out.RefreshToken)

	_, err = fx.store.RefreshTokenRepo().FindRefreshTokenByHash(ctx, "hash:refresh-old")
	require.Error(t, err, "old token must be consumed")
	_, err = fx.store.RefreshTokenRepo().FindRefreshTokenByHash(ctx, "hash:refresh-new")
	require.NoError(t, err)

	_, err = fx.service.Refresh(ctx, "refresh-old")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Refresh_RejectsExpiredAndForeignTokens(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	owner := fx.addUser("ayse@example.com", "bcrypt-hash", true)
	other := fx.addUser("mehmet@example.com", "bcrypt-hash", true)

	require.NoError(t, fx.store.RefreshTokenRepo().CreateRefreshToken(ctx, &entity.RefreshToken{
		UserID: owner.ID, TokenHash: "hash:expired", ExpiresAt: fx.now.Add(-time.Minute),
	}))
	require.NoError(t, fx.store.RefreshTokenRepo().CreateRefreshToken(ctx, &entity.RefreshToken{
		UserID: owner.ID, TokenHash: "hash:stolen", ExpiresAt: fx.now.Add(time.Hour),
	}))

	fx.tokens.EXPECT().ValidateRefreshToken("expired").Return(&service.Claims{UserID: owner.ID}, nil)
	fx.tokens.EXPECT().HashToken("expired").Return("hash:expired")
	fx.tokens.EXPECT().ValidateRefreshToken("stolen").Return(&service.Claims{UserID: other.ID}, nil)
	fx.tokens.EXPECT().HashToken("stolen").Return("hash:stolen")

	_, err := fx.service.Refresh(ctx, "expired")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)

	_, err = fx.service.Refresh(ctx, "stolen")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Refresh_BadSignature(t *testing.T) {
	fx := createTestAuthService(t)

	fx.tokens.EXPECT().ValidateRefreshToken("garbage").Return(nil, errors.New("token is malformed"))

	_, err := fx.service.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Logout_IsIdempotent(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := fx.addUser("ayse@example.com", "bcrypt-hash", true)
	require.NoError(t, fx.store.RefreshTokenRepo().CreateRefreshToken(ctx, &entity.RefreshToken{
		UserID: user.ID, TokenHash: "hash:refresh-1", ExpiresAt: fx.now.Add(time.Hour),
	}))

	fx.tokens.EXPECT().HashToken("refresh-1").Return("hash:refresh-1")

	require.NoError(t, fx.service.Logout(ctx, "refresh-1"))
	require.NoError(t, fx.service.Logout(ctx, "refresh-1"))

	_, err := fx.store.RefreshTokenRepo().FindRefreshTokenByHash(ctx, "hash:refresh-1")
	assert.Error(t, err)
}
