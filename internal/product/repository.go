package product

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	// FindByID never returns soft-deleted products.
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	FindAll(ctx context.Context, params listquery.Params) (*listquery.Result[model.Product], error)
	// FindCatalog lists active products visible to the dealer.
	FindCatalog(ctx context.Context, dealerID string, params listquery.Params) (*listquery.Result[model.Product], error)
	Search(ctx context.Context, term string, limit int) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	SoftDelete(ctx context.Context, id string) error
}
