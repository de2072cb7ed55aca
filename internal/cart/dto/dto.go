package dto

import (
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/internal/pricing"
)

type CartLine struct {
	model.CartItem
	CurrentDiscountedPrice float64 `json:"current_discounted_price"`
}

// CartView is the cart priced at the dealer's current discounts.
type CartView struct {
	CartItems []CartLine     `json:"cartItems"`
	Totals    pricing.Totals `json:"totals"`
}

type AddItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CartUpdate struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
	Remove    bool   `json:"remove"`
}

type UpdateCartInput struct {
	Updates []CartUpdate `json:"updates"`
}

type UpdateResult struct {
	Applied int      `json:"applied"`
	Skipped []string `json:"skipped"`
}
