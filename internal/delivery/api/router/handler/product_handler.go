package handler

import (
	"log/slog"
	"net/http"

	"parlaseramik/config"
	"parlaseramik/internal/delivery/api/response"
	"parlaseramik/internal/domain/entity"
	"parlaseramik/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Config    *config.Config
	Logger    *slog.Logger
}

// ProductHandler serves the catalog and the admin product screens.
type ProductHandler struct {
	productUC  usecase.ProductUsecase
	pagination config.PaginationConfig
	logger     *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC:  params.ProductUC,
		pagination: params.Config.Pagination,
		logger:     params.Logger,
	}
}

// ProductRequest is the body of create and update requests
type ProductRequest struct {
	NameTr        string          `json:"name_tr" validate:"required,max=200"`
	NameEn        string          `json:"name_en" validate:"required,max=200"`
	DescriptionTr string          `json:"description_tr" validate:"max=5000"`
	DescriptionEn string          `json:"description_en" validate:"max=5000"`
	Price         decimal.Decimal `json:"price" validate:"gt=0"`
	Stock         int             `json:"stock" validate:"min=0"`
	Images        []string        `json:"images" validate:"max=20,dive,url"`
	CategoryID    uuid.UUID       `json:"category_id" validate:"required"`
	Featured      *bool           `json:"featured"`
}

func (r *ProductRequest) toInput() *usecase.ProductInput {
	return &usecase.ProductInput{
		NameTr:        r.NameTr,
		NameEn:        r.NameEn,
		DescriptionTr: r.DescriptionTr,
		DescriptionEn: r.DescriptionEn,
		Price:         r.Price,
		Stock:         r.Stock,
		Images:        r.Images,
		CategoryID:    r.CategoryID,
		Featured:      r.Featured,
	}
}

// List returns a page of active products
func (h *ProductHandler) List(c echo.Context) error {
	page, ok, err := h.listingPage(c)
	if !ok {
		return err
	}

	products, err := h.productUC.List(c.Request().Context(), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, products, newProductView)
}

// Search matches the keyword against both product names
func (h *ProductHandler) Search(c echo.Context) error {
	page, ok, err := h.listingPage(c)
	if !ok {
		return err
	}

	products, err := h.productUC.Search(c.Request().Context(), c.QueryParam("keyword"), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, products, newProductView)
}

// Featured returns the featured products
func (h *ProductHandler) Featured(c echo.Context) error {
	products, err := h.productUC.Featured(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mapSlice(products, newProductView))
}

// ListByCategory returns a page of active products in a category
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz kategori kimliği")
	}

	page, ok, err := h.listingPage(c)
	if !ok {
		return err
	}

	products, err := h.productUC.ListByCategory(c.Request().Context(), categoryID, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, products, newProductView)
}

// Get returns an active product
func (h *ProductHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz ürün kimliği")
	}

	product, err := h.productUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductView(product))
}

// ListAll returns a page of products including inactive ones
func (h *ProductHandler) ListAll(c echo.Context) error {
	page, ok, err := h.listingPage(c)
	if !ok {
		return err
	}

	products, err := h.productUC.ListAll(c.Request().Context(), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, products, newProductView)
}

// AdminGet returns any product, inactive ones included
func (h *ProductHandler) AdminGet(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz ürün kimliği")
	}

	product, err := h.productUC.AdminGet(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductView(product))
}

// Create adds a product
func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Geçersiz ürün bilgisi")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	product, err := h.productUC.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newProductView(product))
}

// Update replaces a product's editable fields
func (h *ProductHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz ürün kimliği")
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Geçersiz ürün bilgisi")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	product, err := h.productUC.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductView(product))
}

// Delete deactivates a product
func (h *ProductHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz ürün kimliği")
	}

	if err := h.productUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

// listingPage reads pagination and ordering. When ok is false the error
// response has already been written and err is its result.
func (h *ProductHandler) listingPage(c echo.Context) (entity.PageRequest, bool, error) {
	page, err := pageRequest(c, h.pagination)
	if err != nil {
		return page, false, response.BadRequest(c, "INVALID_PAGINATION", "Geçersiz sayfa parametresi")
	}

	page.Sort, err = productSort(c)
	if err != nil {
		return page, false, response.BadRequest(c, "INVALID_SORT", "Geçersiz sıralama parametresi")
	}

	return page, true, nil
}
