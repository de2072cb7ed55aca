package model

import "time"

type DealerHiddenCategory struct {
	ID           string    `db:"id" json:"id"`
	DealerID     string    `db:"dealer_id" json:"dealer_id"`
	CategoryID   string    `db:"category_id" json:"category_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	CategoryName *string   `db:"category_name" json:"category_name,omitempty"`
}

type DealerHiddenProduct struct {
	ID          string    `db:"id" json:"id"`
	DealerID    string    `db:"dealer_id" json:"dealer_id"`
	ProductID   string    `db:"product_id" json:"product_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	ProductName *string   `db:"product_name" json:"product_name,omitempty"`
}
