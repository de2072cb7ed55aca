package discount

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

type Repository interface {
	// Upsert inserts or updates the row for (dealer, category) and fills d.ID and d.CreatedAt.
	Upsert(ctx context.Context, d *model.DealerCategoryDiscount) error
	FindByID(ctx context.Context, id string) (*model.DealerCategoryDiscount, error)
	FindAll(ctx context.Context, params listquery.Params) (*listquery.Result[model.DealerCategoryDiscount], error)
	FindByDealer(ctx context.Context, dealerID string) ([]model.DealerCategoryDiscount, error)
	ReplaceForDealer(ctx context.Context, dealerID string, discounts []model.DealerCategoryDiscount) error
	Delete(ctx context.Context, id string) error

	FindPercentage(ctx context.Context, dealerID, categoryID string) (float64, bool, error)
	FindPercentagesByDealer(ctx context.Context, dealerID string) (map[string]float64, error)
}
