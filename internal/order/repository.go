package order

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

type Repository interface {
	// CreateWithItems inserts the order and all of its items in one transaction.
	CreateWithItems(ctx context.Context, o *model.Order, items []model.OrderItem) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error)
	FindByDealer(ctx context.Context, dealerID string, params listquery.Params) (*listquery.Result[model.Order], error)
	FindAll(ctx context.Context, params listquery.Params) (*listquery.Result[model.Order], error)
	// UpdateStatus moves the order from one status to another and reports
	// false when the order was no longer in the from status.
	UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (bool, error)
}
