package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/internal/order"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
	"github.com/fekuna/omnipos-dealer-service/pkg/mailer"
)

// MessageReader is implemented by *broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type DealerFinder interface {
	FindByID(ctx context.Context, id string) (*model.Dealer, error)
}

// OrderListener emails dealers when their orders are placed or change status.
type OrderListener struct {
	consumer MessageReader
	dealers  DealerFinder
	mail     mailer.EmailClient
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewOrderListener(consumer MessageReader, dealers DealerFinder, mail mailer.EmailClient, log logger.ZapLogger) *OrderListener {
	return &OrderListener{
		consumer: consumer,
		dealers:  dealers,
		mail:     mail,
		logger:   log,
		backoff:  time.Second,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("Starting order notification listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping order notification listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(l.backoff)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) {
	var event order.Event
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	subject, body, ok := render(event)
	if !ok {
		return
	}

	dealer, err := l.dealers.FindByID(ctx, event.Payload.DealerID)
	if err != nil {
		l.logger.Error("Failed to load dealer for notification",
			zap.String("order_id", event.Payload.OrderID), zap.Error(err))
		return
	}
	if dealer == nil || dealer.Email == nil || *dealer.Email == "" {
		l.logger.Warn("Dealer has no email, skipping notification",
			zap.String("order_id", event.Payload.OrderID),
			zap.String("dealer_id", event.Payload.DealerID))
		return
	}

	if err := l.mail.Send(ctx, *dealer.Email, subject, "Hello "+dealer.Name+",\n\n"+body); err != nil {
		l.logger.Error("Failed to send order notification",
			zap.String("order_id", event.Payload.OrderID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return
	}
	l.logger.Info("Order notification sent",
		zap.String("order_id", event.Payload.OrderID),
		zap.String("event_type", event.EventType))
}

func render(event order.Event) (subject, body string, ok bool) {
	p := event.Payload
	ref := shortID(p.OrderID)
	switch event.EventType {
	case order.EventOrderPlaced:
		var b strings.Builder
		fmt.Fprintf(&b, "We received your order %s.\n\n", ref)
		for _, it := range p.Items {
			fmt.Fprintf(&b, "  %d x %s @ %.2f\n", it.Quantity, it.ProductName, it.PriceAtOrder)
		}
		fmt.Fprintf(&b, "\nSubtotal: %.2f\nGST: %.2f\nTotal: %.2f\n", p.Subtotal, p.GSTAmount, p.TotalAmount)
		return "Order " + ref + " received", b.String(), true
	case order.EventOrderStatusChanged:
		body = fmt.Sprintf("Your order %s is now %s (was %s).\n\nTotal: %.2f\n", ref, p.OrderStatus, p.PreviousStatus, p.TotalAmount)
		return "Order " + ref + " " + string(p.OrderStatus), body, true
	}
	return "", "", false
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}
