package handler

import (
	"net/http"
	"testing"

	"parlaseramik/internal/domain/entity"
	domainerrors "parlaseramik/internal/domain/errors"
	mockUsecase "parlaseramik/internal/mocks/usecase"
	"parlaseramik/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authHandlerFixtures struct {
	server *testServer
	authUC *mockUsecase.MockAuthUsecase
}

func createTestAuthHandler(t *testing.T) authHandlerFixtures {
	server := newTestServer(t)
	authUC := mockUsecase.NewMockAuthUsecase(t)

	h := NewAuthHandler(AuthHandlerParams{AuthUC: authUC, Logger: discardLogger()})
	server.echo.POST("/api/auth/login", h.Login)
	server.echo.POST("/api/auth/refresh", h.Refresh)
	server.echo.POST("/api/auth/logout", h.Logout)
	server.echo.POST("/api/auth/register", h.Register)

	return authHandlerFixtures{server: server, authUC: authUC}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	fx := createTestAuthHandler(t)
	user := &entity.User{ID: uuid.New(), Email: "ayse@example.com", PasswordHash: "bcrypt-hash", Role: entity.RoleUser, Enabled: true}

	fx.authUC.EXPECT().Login(mock.Anything, &usecase.LoginInput{Email: "ayse@example.com", Password: "gizli123"}).
		Return(&usecase.LoginOutput{AccessToken: "access", RefreshToken: "refresh", User: user}, nil)

	rec := fx.server.do(t, http.MethodPost, "/api/auth/login", `{"email":"ayse@example.com","password":"gizli123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	assert.Equal(t, "access", env.Data["token"])
	assert.Equal(t, "refresh", env.Data["refresh_token"])
	assert.NotContains(t, rec.Body.String(), "bcrypt-hash")
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	fx := createTestAuthHandler(t)

	fx.authUC.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidCredentials)

	rec := fx.server.do(t, http.MethodPost, "/api/auth/login", `{"email":"ayse@example.com","password":"yanlis"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decode(t, rec).Error.Code)
}

func TestAuthHandler_Login_InvalidEmail(t *testing.T) {
	fx := createTestAuthHandler(t)

	rec := fx.server.do(t, http.MethodPost, "/api/auth/login", `{"email":"ayse","password":"x"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, rec).Error.Code)
}

func TestAuthHandler_Login_MalformedBody(t *testing.T) {
	fx := createTestAuthHandler(t)

	rec := fx.server.do(t, http.MethodPost, "/api/auth/login", `{"email":`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, rec).Error.Code)
}

func TestAuthHandler_Refresh_Expired(t *testing.T) {
	fx := createTestAuthHandler(t)

	fx.authUC.EXPECT().Refresh(mock.Anything, "old").Return(nil, domainerrors.ErrRefreshTokenInvalid)

	rec := fx.server.do(t, http.MethodPost, "/api/auth/refresh", `{"refresh_token":"old"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	fx := createTestAuthHandler(t)

	fx.authUC.EXPECT().Logout(mock.Anything, "refresh").Return(nil)

	rec := fx.server.do(t, http.MethodPost, "/api/auth/logout", `{"refresh_token":"refresh"}`, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	fx := createTestAuthHandler(t)

	fx.authUC.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrUserAlreadyExists)

	body := `{"email":"ayse@example.com","password":"gizli123","first_name":"Ayşe","last_name":"Yılmaz"}`
	rec := fx.server.do(t, http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}
