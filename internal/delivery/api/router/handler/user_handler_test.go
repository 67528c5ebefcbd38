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

type userHandlerFixtures struct {
	server *testServer
	userUC *mockUsecase.MockUserUsecase
}

func createTestUserHandler(t *testing.T) userHandlerFixtures {
	server := newTestServer(t)
	userUC := mockUsecase.NewMockUserUsecase(t)

	h := NewUserHandler(UserHandlerParams{UserUC: userUC, Logger: discardLogger()})
	users := server.echo.Group("/api/users", server.auth.Authenticate)
	users.GET("/profile", h.GetProfile)
	users.PUT("/profile", h.UpdateProfile)
	users.PUT("/password", h.ChangePassword)

	return userHandlerFixtures{server: server, userUC: userUC}
}

func TestUserHandler_GetProfile(t *testing.T) {
	fx := createTestUserHandler(t)
	userID := uuid.New()

	fx.userUC.EXPECT().GetProfile(mock.Anything, userID).
		Return(&entity.User{ID: userID, Email: "ayse@example.com", FirstName: "Ayşe", Role: entity.RoleUser}, nil)

	rec := fx.server.do(t, http.MethodGet, "/api/users/profile", "", fx.server.bearer("t", userID, entity.RoleUser))
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	assert.Equal(t, "ayse@example.com", env.Data["email"])
	assert.Equal(t, "USER", env.Data["role"])
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	fx := createTestUserHandler(t)
	userID := uuid.New()

	fx.userUC.EXPECT().
		UpdateProfile(mock.Anything, userID, &usecase.UpdateProfileInput{FirstName: "Ayşe", LastName: "Kaya", Phone: "+905550000000"}).
		Return(&entity.User{ID: userID, FirstName: "Ayşe", LastName: "Kaya"}, nil)

	body := `{"first_name":"Ayşe","last_name":"Kaya","phone":"+905550000000"}`
	rec := fx.server.do(t, http.MethodPut, "/api/users/profile", body, fx.server.bearer("t", userID, entity.RoleUser))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Kaya", decode(t, rec).Data["last_name"])
}

func TestUserHandler_ChangePassword_Wrong(t *testing.T) {
	fx := createTestUserHandler(t)
	userID := uuid.New()

	fx.userUC.EXPECT().ChangePassword(mock.Anything, userID, mock.Anything).Return(domainerrors.ErrWrongCurrentPassword)

	body := `{"current_password":"tahmin","new_password":"yeni1234"}`
	rec := fx.server.do(t, http.MethodPut, "/api/users/password", body, fx.server.bearer("t", userID, entity.RoleUser))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "WRONG_CURRENT_PASSWORD", decode(t, rec).Error.Code)
}

func TestUserHandler_ChangePassword_TooShort(t *testing.T) {
	fx := createTestUserHandler(t)

	body := `{"current_password":"eski123","new_password":"kisa"}`
	rec := fx.server.do(t, http.MethodPut, "/api/users/password", body, fx.server.bearer("t", uuid.New(), entity.RoleUser))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, rec).Error.Code)
}
