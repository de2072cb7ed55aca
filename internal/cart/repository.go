package cart

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

type Repository interface {
	// FindByDealer returns the dealer's lines joined with their products, deleted products included.
	FindByDealer(ctx context.Context, dealerID string) ([]model.CartItem, error)
	// Upsert writes quantity and price for (dealer, product), replacing any existing line.
	Upsert(ctx context.Context, item *model.CartItem) error
	// UpdateLine changes an existing line and reports whether one was found.
	UpdateLine(ctx context.Context, dealerID, productID string, quantity int, price float64) (bool, error)
	Delete(ctx context.Context, dealerID, productID string) error
	Clear(ctx context.Context, dealerID string) error
}
