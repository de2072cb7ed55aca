package dealer

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/dealer/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

type UseCase interface {
	CreateDealer(ctx context.Context, input *dto.CreateDealerInput) (*model.Dealer, error)
	GetDealer(ctx context.Context, id string) (*model.Dealer, error)
	ListDealers(ctx context.Context, params listquery.Params) (*listquery.Result[model.Dealer], error)
	UpdateDealer(ctx context.Context, input *dto.UpdateDealerInput) (*model.Dealer, error)
	DeleteDealer(ctx context.Context, id string) error
}
