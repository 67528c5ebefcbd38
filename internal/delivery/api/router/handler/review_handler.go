package handler

import (
	"log/slog"
	"net/http"

	"parlaseramik/config"
	"parlaseramik/internal/delivery/api/middleware"
	"parlaseramik/internal/delivery/api/response"
	"parlaseramik/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	Config   *config.Config
	Logger   *slog.Logger
}

// ReviewHandler serves review submission and moderation.
type ReviewHandler struct {
	reviewUC   usecase.ReviewUsecase
	pagination config.PaginationConfig
	logger     *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		reviewUC:   params.ReviewUC,
		pagination: params.Config.Pagination,
		logger:     params.Logger,
	}
}

// CreateReviewRequest represents the request body for a new review
type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Rating    int       `json:"rating" validate:"min=1,max=5"`
	Comment   string    `json:"comment" validate:"required,min=10,max=1000"`
}

// ReplyRequest carries the admin reply to a review
type ReplyRequest struct {
	Reply string `json:"reply" validate:"required,max=1000"`
}

// ListForProduct returns the approved reviews of a product
func (h *ReviewHandler) ListForProduct(c echo.Context) error {
	productID, ok := pathID(c, "productId")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz ürün kimliği")
	}

	reviews, err := h.reviewUC.ListApprovedByProduct(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mapSlice(reviews, newReviewView))
}

// Create submits a review that waits for approval
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Geçersiz oturum")
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Geçersiz yorum bilgisi")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	review, err := h.reviewUC.Create(c.Request().Context(), userID, &usecase.CreateReviewInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newReviewView(review))
}

// ListMine returns the caller's reviews
func (h *ReviewHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Geçersiz oturum")
	}

	reviews, err := h.reviewUC.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mapSlice(reviews, newReviewView))
}

// ListAll returns a page of every review
func (h *ReviewHandler) ListAll(c echo.Context) error {
	page, err := pageRequest(c, h.pagination)
	if err != nil {
		return response.BadRequest(c, "INVALID_PAGINATION", "Geçersiz sayfa parametresi")
	}

	reviews, err := h.reviewUC.List(c.Request().Context(), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, reviews, newReviewView)
}

// ListPending returns a page of reviews awaiting approval
func (h *ReviewHandler) ListPending(c echo.Context) error {
	page, err := pageRequest(c, h.pagination)
	if err != nil {
		return response.BadRequest(c, "INVALID_PAGINATION", "Geçersiz sayfa parametresi")
	}

	reviews, err := h.reviewUC.ListPending(c.Request().Context(), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, reviews, newReviewView)
}

// Approve publishes a review and refreshes the product rating
func (h *ReviewHandler) Approve(c echo.Context) error {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz yorum kimliği")
	}

	review, err := h.reviewUC.Approve(c.Request().Context(), reviewID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newReviewView(review))
}

// Reply sets the admin reply of a review
func (h *ReviewHandler) Reply(c echo.Context) error {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz yorum kimliği")
	}

	var req ReplyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Geçersiz yanıt")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	review, err := h.reviewUC.Reply(c.Request().Context(), reviewID, req.Reply)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newReviewView(review))
}

// Delete removes a review and refreshes the product rating
func (h *ReviewHandler) Delete(c echo.Context) error {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz yorum kimliği")
	}

	if err := h.reviewUC.Delete(c.Request().Context(), reviewID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}
