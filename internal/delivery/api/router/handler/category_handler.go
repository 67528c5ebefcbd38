package handler

import (
	"log/slog"
	"net/http"

	"parlaseramik/internal/delivery/api/response"
	"parlaseramik/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CategoryHandlerParams holds dependencies for CategoryHandler, injected by Fx.
type CategoryHandlerParams struct {
	fx.In

	CategoryUC usecase.CategoryUsecase
	Logger     *slog.Logger
}

// CategoryHandler serves the public category listing and its admin counterpart.
type CategoryHandler struct {
	categoryUC usecase.CategoryUsecase
	logger     *slog.Logger
}

// NewCategoryHandler is the constructor for CategoryHandler
func NewCategoryHandler(params CategoryHandlerParams) *CategoryHandler {
	return &CategoryHandler{
		categoryUC: params.CategoryUC,
		logger:     params.Logger,
	}
}

// CategoryRequest is the body of create and update requests
type CategoryRequest struct {
	NameTr        string `json:"name_tr" validate:"required,max=100"`
	NameEn        string `json:"name_en" validate:"required,max=100"`
	DescriptionTr string `json:"description_tr" validate:"max=1000"`
	DescriptionEn string `json:"description_en" validate:"max=1000"`
}

func (r *CategoryRequest) toInput() *usecase.CategoryInput {
	return &usecase.CategoryInput{
		NameTr:        r.NameTr,
		NameEn:        r.NameEn,
		DescriptionTr: r.DescriptionTr,
		DescriptionEn: r.DescriptionEn,
	}
}

// ListActive returns the categories shown in the storefront
func (h *CategoryHandler) ListActive(c echo.Context) error {
	categories, err := h.categoryUC.ListActive(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mapSlice(categories, newCategoryView))
}

// ListAll returns every category, inactive ones included
func (h *CategoryHandler) ListAll(c echo.Context) error {
	categories, err := h.categoryUC.ListAll(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mapSlice(categories, newCategoryView))
}

// Get returns a single category
func (h *CategoryHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz kategori kimliği")
	}

	category, err := h.categoryUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCategoryView(category))
}

// Create adds a category
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Geçersiz kategori bilgisi")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	category, err := h.categoryUC.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newCategoryView(category))
}

// Update replaces a category's names and descriptions
func (h *CategoryHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz kategori kimliği")
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Geçersiz kategori bilgisi")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	category, err := h.categoryUC.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCategoryView(category))
}

// Delete deactivates a category
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz kategori kimliği")
	}

	if err := h.categoryUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}
