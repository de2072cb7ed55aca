package discount

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/discount/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

type UseCase interface {
	AssignDiscount(ctx context.Context, input *dto.AssignDiscountInput) (*model.DealerCategoryDiscount, error)
	ListDiscounts(ctx context.Context, params listquery.Params) (*listquery.Result[model.DealerCategoryDiscount], error)
	GetDealerDiscounts(ctx context.Context, dealerID string) ([]model.DealerCategoryDiscount, error)
	ReplaceDealerDiscounts(ctx context.Context, input *dto.ReplaceDiscountsInput) ([]model.DealerCategoryDiscount, error)
	DeleteDiscount(ctx context.Context, id string) error
}
