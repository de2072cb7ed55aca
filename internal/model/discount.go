package model

type DealerCategoryDiscount struct {
	BaseModel
	DealerID           string  `db:"dealer_id" json:"dealer_id"`
	CategoryID         string  `db:"category_id" json:"category_id"`
	DiscountPercentage float64 `db:"discount_percentage" json:"discount_percentage"`

	DealerName   *string `db:"dealer_name" json:"dealer_name,omitempty"`
	CompanyName  *string `db:"company_name" json:"company_name,omitempty"`
	CategoryName *string `db:"category_name" json:"category_name,omitempty"`
}
