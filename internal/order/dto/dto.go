package dto

import "github.com/fekuna/omnipos-dealer-service/internal/model"

type PlaceOrderResult struct {
	Success     bool    `json:"success"`
	OrderID     string  `json:"orderId"`
	Subtotal    float64 `json:"subtotal"`
	GSTAmount   float64 `json:"gst_amount"`
	TotalAmount float64 `json:"total_amount"`
}

type UpdateStatusInput struct {
	ID          string            `json:"-"`
	OrderStatus model.OrderStatus `json:"order_status"`
}

type OrderResponse struct {
	Success bool         `json:"success"`
	Order   *model.Order `json:"order"`
}
