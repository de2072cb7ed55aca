package visibility

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

type Repository interface {
	HideCategory(ctx context.Context, h *model.DealerHiddenCategory) error
	UnhideCategory(ctx context.Context, dealerID, categoryID string) error
	HideProduct(ctx context.Context, h *model.DealerHiddenProduct) error
	UnhideProduct(ctx context.Context, dealerID, productID string) error

	IsCategoryHidden(ctx context.Context, dealerID, categoryID string) (bool, error)
	IsProductHidden(ctx context.Context, dealerID, productID string) (bool, error)

	FindHiddenCategories(ctx context.Context, dealerID string) ([]model.DealerHiddenCategory, error)
	FindHiddenProducts(ctx context.Context, dealerID string) ([]model.DealerHiddenProduct, error)

	// ReplaceForDealer swaps both hidden sets of a dealer in one transaction.
	ReplaceForDealer(ctx context.Context, dealerID string, categories []model.DealerHiddenCategory, products []model.DealerHiddenProduct) error
}
