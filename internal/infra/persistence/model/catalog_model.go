package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NameTr        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	NameEn        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	DescriptionTr string    `gorm:"type:text"`
	DescriptionEn string    `gorm:"type:text"`
	Active        bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel mirrors the 'products' table. Stock carries a CHECK (stock >= 0).
type ProductModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NameTr        string          `gorm:"type:varchar(200);not null"`
	NameEn        string          `gorm:"type:varchar(200);not null"`
	DescriptionTr string          `gorm:"type:text"`
	DescriptionEn string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Stock         int             `gorm:"not null;default:0"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Active        bool            `gorm:"not null;default:true"`
	Featured      bool            `gorm:"not null;default:false"`
	AverageRating float64         `gorm:"not null;default:0"`
	ReviewCount   int             `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Category *CategoryModel      `gorm:"foreignKey:CategoryID"`
	Images   []ProductImageModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ProductImageModel mirrors the 'product_images' table. Position keeps the
// caller-supplied order; position 0 is the cover image.
type ProductImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"column:url;type:varchar(500);not null"`
	Position  int       `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (ProductImageModel) TableName() string {
	return "product_images"
}
