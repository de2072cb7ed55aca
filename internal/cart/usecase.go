package cart

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/cart/dto"
)

type UseCase interface {
	GetCart(ctx context.Context, dealerID string) (*dto.CartView, error)
	AddItem(ctx context.Context, dealerID string, input *dto.AddItemInput) error
	UpdateItems(ctx context.Context, dealerID string, input *dto.UpdateCartInput) (*dto.UpdateResult, error)
	RemoveItem(ctx context.Context, dealerID, productID string) error
}
