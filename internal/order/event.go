package order

import (
	"time"

	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

// Event is the message published to the orders topic, keyed by order id.
type Event struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   EventPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type EventPayload struct {
	OrderID        string            `json:"order_id"`
	DealerID       string            `json:"dealer_id"`
	OrderStatus    model.OrderStatus `json:"order_status"`
	PreviousStatus model.OrderStatus `json:"previous_status,omitempty"`
	Subtotal       float64           `json:"subtotal"`
	GSTAmount      float64           `json:"gst_amount"`
	TotalAmount    float64           `json:"total_amount"`
	Items          []EventItem       `json:"items,omitempty"`
}

type EventItem struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	PriceAtOrder float64 `json:"price_at_order"`
}
