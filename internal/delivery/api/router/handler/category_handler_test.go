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

type categoryHandlerFixtures struct {
	server     *testServer
	categoryUC *mockUsecase.MockCategoryUsecase
}

func createTestCategoryHandler(t *testing.T) categoryHandlerFixtures {
	server := newTestServer(t)
	categoryUC := mockUsecase.NewMockCategoryUsecase(t)

	h := NewCategoryHandler(CategoryHandlerParams{CategoryUC: categoryUC, Logger: discardLogger()})
	server.echo.GET("/api/categories", h.ListActive)
	server.echo.GET("/api/categories/:id", h.Get)

	admin := server.echo.Group("/api/admin/categories", server.auth.Authenticate, server.auth.RequireRole(entity.RoleAdmin))
	admin.GET("", h.ListAll)
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)

	return categoryHandlerFixtures{server: server, categoryUC: categoryUC}
}

func TestCategoryHandler_ListActive(t *testing.T) {
	fx := createTestCategoryHandler(t)

	fx.categoryUC.EXPECT().ListActive(mock.Anything).Return([]*entity.Category{
		{ID: uuid.New(), NameTr: "Kupalar", NameEn: "Mugs", Active: true},
		{ID: uuid.New(), NameTr: "Tabaklar", NameEn: "Plates", Active: true},
	}, nil)

	rec := fx.server.do(t, http.MethodGet, "/api/categories", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	list := decodeList(t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "Kupalar", list[0]["name_tr"])
	assert.Equal(t, "Plates", list[1]["name_en"])
}

func TestCategoryHandler_Create_Conflict(t *testing.T) {
	fx := createTestCategoryHandler(t)

	fx.categoryUC.EXPECT().
		Create(mock.Anything, &usecase.CategoryInput{NameTr: "Kupalar", NameEn: "Mugs"}).
		Return(nil, domainerrors.ErrCategoryAlreadyExists)

	rec := fx.server.do(t, http.MethodPost, "/api/admin/categories", `{"name_tr":"Kupalar","name_en":"Mugs"}`, fx.server.bearer("a", uuid.New(), entity.RoleAdmin))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CATEGORY_ALREADY_EXISTS", decode(t, rec).Error.Code)
}

func TestCategoryHandler_Create_MissingEnglishName(t *testing.T) {
	fx := createTestCategoryHandler(t)

	rec := fx.server.do(t, http.MethodPost, "/api/admin/categories", `{"name_tr":"Kupalar"}`, fx.server.bearer("a", uuid.New(), entity.RoleAdmin))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(decode(t, rec).Error.Details), `"field":"name_en"`)
}

func TestCategoryHandler_Delete_ForbiddenForCustomers(t *testing.T) {
	fx := createTestCategoryHandler(t)

	rec := fx.server.do(t, http.MethodDelete, "/api/admin/categories/"+uuid.NewString(), "", fx.server.bearer("u", uuid.New(), entity.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCategoryHandler_Delete(t *testing.T) {
	fx := createTestCategoryHandler(t)
	id := uuid.New()

	fx.categoryUC.EXPECT().Delete(mock.Anything, id).Return(nil)

	rec := fx.server.do(t, http.MethodDelete, "/api/admin/categories/"+id.String(), "", fx.server.bearer("a", uuid.New(), entity.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
