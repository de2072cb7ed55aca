package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/internal/order"
	"github.com/fekuna/omnipos-dealer-service/internal/order/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/pricing"
	"github.com/fekuna/omnipos-dealer-service/internal/visibility"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type CartStore interface {
	FindByDealer(ctx context.Context, dealerID string) ([]model.CartItem, error)
	Clear(ctx context.Context, dealerID string) error
}

type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

type PriceResolver interface {
	ResolvePrice(ctx context.Context, p pricing.ProductPrice, dealerID string) (float64, error)
}

type VisibilityChecker interface {
	IsVisible(ctx context.Context, dealerID string, item visibility.Item) (bool, error)
}

// publishTimeout bounds how long a request waits on the broker after commit.
const publishTimeout = 2 * time.Second

// EventPublisher is implemented by *broker.KafkaProducer.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type Deps struct {
	Repo       order.Repository
	Carts      CartStore
	Products   ProductFinder
	Prices     PriceResolver
	Visibility VisibilityChecker
	Events     EventPublisher // nil disables events
}

type orderUseCase struct {
	repo       order.Repository
	carts      CartStore
	products   ProductFinder
	prices     PriceResolver
	visibility VisibilityChecker
	events     EventPublisher
	logger     logger.ZapLogger
	now        func() time.Time
}

func NewOrderUseCase(deps Deps, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:       deps.Repo,
		carts:      deps.Carts,
		products:   deps.Products,
		prices:     deps.Prices,
		visibility: deps.Visibility,
		events:     deps.Events,
		logger:     log,
		now:        time.Now,
	}
}

// PlaceOrder turns the dealer's cart into an order. Every line is checked
// against the live product and repriced before anything is written; one bad
// line aborts the placement.
func (uc *orderUseCase) PlaceOrder(ctx context.Context, dealerID string) (*dto.PlaceOrderResult, error) {
	cartItems, err := uc.carts.FindByDealer(ctx, dealerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(cartItems) == 0 {
		return nil, apperror.Validation("cart is empty")
	}

	now := uc.now()
	o := &model.Order{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		DealerID:    dealerID,
		OrderStatus: model.OrderStatusPending,
	}

	items := make([]model.OrderItem, 0, len(cartItems))
	lines := make([]pricing.Line, 0, len(cartItems))
	for _, ci := range cartItems {
		item, err := uc.orderLine(ctx, dealerID, o.ID, ci, now)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
		lines = append(lines, pricing.Line{UnitPrice: item.PriceAtOrder, Quantity: item.Quantity})
	}

	totals := pricing.ComputeTotals(lines)
	o.Subtotal = totals.Subtotal
	o.GSTAmount = totals.GSTAmount
	o.TotalAmount = totals.TotalAmount

	if err := uc.repo.CreateWithItems(ctx, o, items); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uc.carts.Clear(ctx, dealerID); err != nil {
		uc.logger.Warn("order placed but cart was not cleared",
			zap.String("order_id", o.ID), zap.String("dealer_id", dealerID), zap.Error(err))
	}

	o.Items = items
	uc.publish(ctx, EventFor(order.EventOrderPlaced, o, ""))

	uc.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("dealer_id", dealerID),
		zap.Int("items", len(items)),
		zap.Float64("total_amount", o.TotalAmount),
	)
	return &dto.PlaceOrderResult{
		Success:     true,
		OrderID:     o.ID,
		Subtotal:    o.Subtotal,
		GSTAmount:   o.GSTAmount,
		TotalAmount: o.TotalAmount,
	}, nil
}

func (uc *orderUseCase) orderLine(ctx context.Context, dealerID, orderID string, ci model.CartItem, now time.Time) (*model.OrderItem, error) {
	p, err := uc.products.FindByID(ctx, ci.ProductID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if p == nil {
		return nil, apperror.Validation(fmt.Sprintf("product %s is no longer available", ci.ProductID))
	}
	if !p.IsActive {
		return nil, apperror.Validation(fmt.Sprintf("product %s is inactive", p.Name))
	}
	if ci.Quantity <= 0 {
		return nil, apperror.Validation(fmt.Sprintf("invalid quantity for product %s", p.Name))
	}

	visible, err := uc.visibility.IsVisible(ctx, dealerID, visibility.Item{ProductID: p.ID, CategoryID: p.CategoryID})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !visible {
		return nil, apperror.Forbidden(fmt.Sprintf("product %s is not available to this dealer", p.Name))
	}

	price, err := uc.prices.ResolvePrice(ctx, pricing.ProductPrice{ID: p.ID, BasePrice: p.BasePrice, CategoryID: p.CategoryID}, dealerID)
	if err != nil {
		return nil, apperror.From(err)
	}

	return &model.OrderItem{
		ID:           uuid.New().String(),
		OrderID:      orderID,
		ProductID:    p.ID,
		ProductName:  p.Name,
		Quantity:     ci.Quantity,
		PriceAtOrder: price,
		CreatedAt:    now,
	}, nil
}

func (uc *orderUseCase) ListDealerOrders(ctx context.Context, dealerID string, params listquery.Params) (*listquery.Result[model.Order], error) {
	res, err := uc.repo.FindByDealer(ctx, dealerID, params)
	if err != nil {
		return nil, apperror.From(err)
	}
	return res, nil
}

// GetDealerOrder hides other dealers' orders behind NotFound.
func (uc *orderUseCase) GetDealerOrder(ctx context.Context, dealerID, id string) (*model.Order, error) {
	o, err := uc.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.DealerID != dealerID {
		return nil, apperror.NotFound("order not found")
	}
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, params listquery.Params) (*listquery.Result[model.Order], error) {
	res, err := uc.repo.FindAll(ctx, params)
	if err != nil {
		return nil, apperror.From(err)
	}
	return res, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if o == nil {
		return nil, apperror.NotFound("order not found")
	}
	items, err := uc.repo.FindItems(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	o.Items = items
	return o, nil
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, input *dto.UpdateStatusInput) (*model.Order, error) {
	if !input.OrderStatus.IsValid() {
		return nil, apperror.Validation("invalid order_status")
	}

	o, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if o == nil {
		return nil, apperror.NotFound("order not found")
	}

	previous := o.OrderStatus
	if !previous.CanTransitionTo(input.OrderStatus) {
		return nil, apperror.Validation(fmt.Sprintf("cannot change order status from %s to %s", previous, input.OrderStatus))
	}

	updated, err := uc.repo.UpdateStatus(ctx, o.ID, previous, input.OrderStatus)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !updated {
		return nil, apperror.Conflict("order status was changed by another request")
	}

	o.OrderStatus = input.OrderStatus
	o.UpdatedAt = uc.now()
	uc.publish(ctx, EventFor(order.EventOrderStatusChanged, o, previous))

	uc.logger.Info("order status updated",
		zap.String("order_id", o.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(o.OrderStatus)),
	)
	return o, nil
}

// EventFor builds the broker message for o.
func EventFor(eventType string, o *model.Order, previous model.OrderStatus) order.Event {
	payload := order.EventPayload{
		OrderID:        o.ID,
		DealerID:       o.DealerID,
		OrderStatus:    o.OrderStatus,
		PreviousStatus: previous,
		Subtotal:       o.Subtotal,
		GSTAmount:      o.GSTAmount,
		TotalAmount:    o.TotalAmount,
	}
	for _, it := range o.Items {
		payload.Items = append(payload.Items, order.EventItem{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			PriceAtOrder: it.PriceAtOrder,
		})
	}
	return order.Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// publish is best effort; the order is already committed.
func (uc *orderUseCase) publish(ctx context.Context, event order.Event) {
	if uc.events == nil {
		return
	}
	value, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("failed to marshal order event", zap.String("order_id", event.Payload.OrderID), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := uc.events.Publish(ctx, event.Payload.OrderID, value); err != nil {
		uc.logger.Error("failed to publish order event",
			zap.String("order_id", event.Payload.OrderID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
	}
}
