package product

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.ProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, params listquery.Params) (*listquery.Result[model.Product], error)
	UpdateProduct(ctx context.Context, input *dto.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)

	// Dealer catalog
	ListCatalog(ctx context.Context, dealerID string, params listquery.Params) (*listquery.Result[model.CatalogProduct], error)
	GetCatalogProduct(ctx context.Context, dealerID, id string) (*model.CatalogProduct, error)
}
