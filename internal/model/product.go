package model

import (
	"time"

	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	CategoryID   *string        `db:"category_id" json:"category_id"` // Nullable
	Name         string         `db:"name" json:"name"`
	Description  *string        `db:"description" json:"description"`
	BasePrice    float64        `db:"base_price" json:"base_price"`
	IsActive     bool           `db:"is_active" json:"is_active"`
	ImageURLs    pq.StringArray `db:"image_urls" json:"image_urls"`
	DatasheetURL *string        `db:"datasheet_url" json:"datasheet_url"`
	ProductURL   *string        `db:"product_url" json:"product_url"`
	DeletedAt    *time.Time     `db:"deleted_at" json:"-"`

	CategoryName *string `db:"category_name" json:"category_name,omitempty"` // Joined data
}

// CatalogProduct is a product as one dealer sees it.
type CatalogProduct struct {
	Product
	DiscountedPrice float64 `db:"-" json:"discounted_price"`
}
