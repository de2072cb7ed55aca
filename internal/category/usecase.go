package category

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/category/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	ListCategories(ctx context.Context, params listquery.Params) (*listquery.Result[model.Category], error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListDealerCategories(ctx context.Context, dealerID string) ([]model.Category, error)
}
