package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is one (product, quantity) pair of a checkout request.
type OrderLine struct {
	ProductID int64
	Quantity  int
}

type PlaceOrderRequest struct {
	ShippingAddress string             `json:"shippingAddress"`
	Items           []OrderLineRequest `json:"items"`
}

type OrderLineRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type UpdateOrderRequest struct {
	Status          *string `json:"status"`
	ShippingAddress *string `json:"shippingAddress"`
}

type OrderItemDTO struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderDTO struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress string          `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Items           []OrderItemDTO  `json:"items"`
}

type OrderPageResponse struct {
	Count    int        `json:"count"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	Results  []OrderDTO `json:"results"`
}
