package handler

import (
	"time"

	"parlaseramik/internal/domain/entity"
	"parlaseramik/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Views are the JSON shapes returned to clients. Entities never leave the
// handler package unconverted, so the password hash cannot leak.

type userView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(u *entity.User) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role.String(),
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
	}
}

type loginView struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	User         userView `json:"user"`
}

func newLoginView(out *usecase.LoginOutput) loginView {
	return loginView{
		Token:        out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         newUserView(out.User),
	}
}

type categoryView struct {
	ID            uuid.UUID `json:"id"`
	NameTr        string    `json:"name_tr"`
	NameEn        string    `json:"name_en"`
	DescriptionTr string    `json:"description_tr,omitempty"`
	DescriptionEn string    `json:"description_en,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newCategoryView(c *entity.Category) categoryView {
	return categoryView{
		ID:            c.ID,
		NameTr:        c.NameTr,
		NameEn:        c.NameEn,
		DescriptionTr: c.DescriptionTr,
		DescriptionEn: c.DescriptionEn,
		Active:        c.Active,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type productView struct {
	ID             uuid.UUID       `json:"id"`
	NameTr         string          `json:"name_tr"`
	NameEn         string          `json:"name_en"`
	DescriptionTr  string          `json:"description_tr,omitempty"`
	DescriptionEn  string          `json:"description_en,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Images         []string        `json:"images"`
	CategoryID     uuid.UUID       `json:"category_id"`
	CategoryNameTr string          `json:"category_name_tr,omitempty"`
	CategoryNameEn string          `json:"category_name_en,omitempty"`
	Active         bool            `json:"active"`
	Featured       bool            `json:"featured"`
	AverageRating  float64         `json:"average_rating"`
	ReviewCount    int             `json:"review_count"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func newProductView(p *entity.Product) productView {
	v := productView{
		ID:            p.ID,
		NameTr:        p.NameTr,
		NameEn:        p.NameEn,
		DescriptionTr: p.DescriptionTr,
		DescriptionEn: p.DescriptionEn,
		Price:         p.Price,
		Stock:         p.Stock,
		Images:        p.Images,
		CategoryID:    p.CategoryID,
		Active:        p.Active,
		Featured:      p.Featured,
		AverageRating: p.AverageRating,
		ReviewCount:   p.ReviewCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if v.Images == nil {
		v.Images = []string{}
	}
	if p.Category != nil {
		v.CategoryNameTr = p.Category.NameTr
		v.CategoryNameEn = p.Category.NameEn
	}

	return v
}

type addressView struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title,omitempty"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state,omitempty"`
	PostalCode   string    `json:"postal_code,omitempty"`
	Country      string    `json:"country"`
}

func newAddressView(a *entity.Address) *addressView {
	if a == nil {
		return nil
	}

	return &addressView{
		ID:           a.ID,
		Title:        a.Title,
		FullName:     a.FullName,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
	}
}

type orderItemView struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image,omitempty"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type orderView struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"order_number"`
	UserID          uuid.UUID       `json:"user_id"`
	UserEmail       string          `json:"user_email,omitempty"`
	Items           []orderItemView `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentID       string          `json:"payment_id,omitempty"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	ShippingAddress *addressView    `json:"shipping_address,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func newOrderView(o *entity.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemView{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			Price:        item.Price,
			Subtotal:     item.Subtotal,
		})
	}

	return orderView{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		UserEmail:       o.UserEmail,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status.String(),
		PaymentStatus:   o.PaymentStatus.String(),
		PaymentID:       o.PaymentID,
		TrackingNumber:  o.TrackingNumber,
		Notes:           o.Notes,
		ShippingAddress: newAddressView(o.ShippingAddress),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

type reviewView struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	UserID      uuid.UUID `json:"user_id"`
	UserName    string    `json:"user_name,omitempty"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	AdminReply  string    `json:"admin_reply,omitempty"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newReviewView(r *entity.Review) reviewView {
	return reviewView{
		ID:          r.ID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		UserID:      r.UserID,
		UserName:    r.UserName,
		Rating:      r.Rating,
		Comment:     r.Comment,
		AdminReply:  r.AdminReply,
		Approved:    r.Approved,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}

	return out
}
