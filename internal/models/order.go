package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusAccepted   = "accepted"
	OrderStatusPreparing  = "preparing"
	OrderStatusReady      = "ready"
	OrderStatusDelivering = "delivering"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

const (
	DeliveryTypeSelf     = "self"
	DeliveryTypePlatform = "platform"
)

type OrderItem struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	Total       float64   `json:"total"`
}

type Order struct {
	ID                uuid.UUID   `json:"id"`
	UserID            uuid.UUID   `json:"user_id"`
	VendorID          uuid.UUID   `json:"vendor_id"`
	Items             []OrderItem `json:"items"`
	Subtotal          float64     `json:"subtotal"`
	CouponCode        string      `json:"coupon_code,omitempty"`
	CouponDiscount    float64     `json:"coupon_discount"`
	DeliveryFee       float64     `json:"delivery_fee"`
	GiftWrapID        string      `json:"gift_wrap_id,omitempty"`
	GiftWrapFee       float64     `json:"gift_wrap_fee"`
	Total             float64     `json:"total"`
	DeliveryAddress   string      `json:"delivery_address"`
	DeliveryLatitude  float64     `json:"delivery_latitude"`
	DeliveryLongitude float64     `json:"delivery_longitude"`
	Phone             string      `json:"phone"`
	Status            string      `json:"status"`
	DeliveryType      string      `json:"delivery_type"`
	Notes             string      `json:"notes,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

type CreateOrderRequest struct {
	VendorID          uuid.UUID `json:"vendor_id" validate:"required"`
	CouponCode        string    `json:"coupon_code,omitempty"`
	GiftWrapID        string    `json:"gift_wrap_id,omitempty"`
	DeliveryAddress   string    `json:"delivery_address" validate:"required"`
	DeliveryLatitude  float64   `json:"delivery_latitude"`
	DeliveryLongitude float64   `json:"delivery_longitude"`
	Phone             string    `json:"phone" validate:"required"`
	DeliveryType      string    `json:"delivery_type" validate:"required,oneof=self platform"`
	Notes             string    `json:"notes,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted preparing ready delivering completed cancelled"`
}

// validTransitions encodes the order lifecycle. Cancellation is allowed
// from any non-terminal state.
var validTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusAccepted, OrderStatusCancelled},
	OrderStatusAccepted:   {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:  {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusDelivering, OrderStatusCancelled},
	OrderStatusDelivering: {OrderStatusCompleted, OrderStatusCancelled},
}

func CanTransitionOrder(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}
