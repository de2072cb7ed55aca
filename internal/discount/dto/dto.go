package dto

import "github.com/fekuna/omnipos-dealer-service/internal/model"

type AssignDiscountInput struct {
	DealerID           string   `json:"dealer_id"`
	CategoryID         string   `json:"category_id"`
	DiscountPercentage *float64 `json:"discount_percentage"`
}

type CategoryDiscountInput struct {
	CategoryID         string  `json:"category_id"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

type ReplaceDiscountsInput struct {
	DealerID  string                  `json:"-"`
	Discounts []CategoryDiscountInput `json:"discounts"`
}

type DiscountResponse struct {
	Success  bool                          `json:"success"`
	Discount *model.DealerCategoryDiscount `json:"discount"`
}

type DealerDiscountsResponse struct {
	DealerID  string                         `json:"dealer_id"`
	Discounts []model.DealerCategoryDiscount `json:"discounts"`
}
