package model

import "time"

type CartItem struct {
	BaseModel
	DealerID        string  `db:"dealer_id" json:"dealer_id"`
	ProductID       string  `db:"product_id" json:"product_id"`
	Quantity        int     `db:"quantity" json:"quantity"`
	PriceAtAddition float64 `db:"price_at_addition" json:"price_at_addition"`

	// Joined from products
	ProductName      string     `db:"product_name" json:"product_name"`
	BasePrice        float64    `db:"base_price" json:"base_price"`
	CategoryID       *string    `db:"category_id" json:"category_id"`
	ProductIsActive  bool       `db:"product_is_active" json:"-"`
	ProductDeletedAt *time.Time `db:"product_deleted_at" json:"-"`
}
