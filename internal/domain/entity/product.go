package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item.
type Product struct {
	ID            uuid.UUID
	NameTr        string
	NameEn        string
	DescriptionTr string
	DescriptionEn string
	Price         decimal.Decimal
	Stock         int      // never negative
	Images        []string // ordered, first one is the cover image
	CategoryID    uuid.UUID
	Category      *Category // loaded alongside the product when available
	Active        bool      // false means soft-deleted
	Featured      bool
	AverageRating float64 // derived from approved reviews only
	ReviewCount   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CoverImage returns the first image URL, or an empty string.
func (p *Product) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}

	return p.Images[0]
}

// HasStock reports whether quantity units can be taken from stock.
func (p *Product) HasStock(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}
