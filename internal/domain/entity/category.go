package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products in the catalog. Names are bilingual and each
// language's name is unique across all categories.
type Category struct {
	ID            uuid.UUID
	NameTr        string
	NameEn        string
	DescriptionTr string
	DescriptionEn string
	Active        bool // false means soft-deleted
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
