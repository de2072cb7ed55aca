package category

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	// FindByID never returns soft-deleted categories.
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context, params listquery.Params) (*listquery.Result[model.Category], error)
	// FindVisible lists active categories the dealer has not been hidden from.
	FindVisible(ctx context.Context, dealerID string) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	SoftDelete(ctx context.Context, id string) error
}
