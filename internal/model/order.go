package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:  {OrderStatusApproved, OrderStatusRejected},
	OrderStatusApproved: {OrderStatusShipped},
	OrderStatusShipped:  {OrderStatusDelivered},
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusRejected, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusRejected || s == OrderStatusDelivered
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	BaseModel
	DealerID    string      `db:"dealer_id" json:"dealer_id"`
	Subtotal    float64     `db:"subtotal" json:"subtotal"`
	GSTAmount   float64     `db:"gst_amount" json:"gst_amount"`
	TotalAmount float64     `db:"total_amount" json:"total_amount"`
	OrderStatus OrderStatus `db:"order_status" json:"order_status"`
	Items       []OrderItem `db:"-" json:"items,omitempty"`

	DealerName  *string `db:"dealer_name" json:"dealer_name,omitempty"`
	CompanyName *string `db:"company_name" json:"company_name,omitempty"`
}

type OrderItem struct {
	ID           string    `db:"id" json:"id"`
	OrderID      string    `db:"order_id" json:"order_id"`
	ProductID    string    `db:"product_id" json:"product_id"`
	ProductName  string    `db:"product_name" json:"product_name"`
	Quantity     int       `db:"quantity" json:"quantity"`
	PriceAtOrder float64   `db:"price_at_order" json:"price_at_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
