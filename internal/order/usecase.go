package order

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/internal/order/dto"
)

type UseCase interface {
	PlaceOrder(ctx context.Context, dealerID string) (*dto.PlaceOrderResult, error)
	ListDealerOrders(ctx context.Context, dealerID string, params listquery.Params) (*listquery.Result[model.Order], error)
	GetDealerOrder(ctx context.Context, dealerID, id string) (*model.Order, error)

	ListOrders(ctx context.Context, params listquery.Params) (*listquery.Result[model.Order], error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	UpdateStatus(ctx context.Context, input *dto.UpdateStatusInput) (*model.Order, error)
}
