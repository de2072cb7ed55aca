package visibility

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/visibility/dto"
)

type UseCase interface {
	HideCategory(ctx context.Context, input *dto.CategoryVisibilityInput) error
	UnhideCategory(ctx context.Context, input *dto.CategoryVisibilityInput) error
	HideProduct(ctx context.Context, input *dto.ProductVisibilityInput) error
	UnhideProduct(ctx context.Context, input *dto.ProductVisibilityInput) error
	GetDealerVisibility(ctx context.Context, dealerID string) (*dto.DealerVisibility, error)
	ReplaceDealerVisibility(ctx context.Context, input *dto.ReplaceVisibilityInput) (*dto.DealerVisibility, error)
}
