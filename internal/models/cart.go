package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one product entry in the cart. UnitPrice is snapshotted at
// add time and never silently refreshed. Quantity stays >= 1; an update
// that would drop it below removes the line instead.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}

func (l CartLine) LineTotal() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

type Cart struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Items     []CartLine `json:"items"`
	Total     float64    `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Recalculate restores the cart total invariant: total is always the sum
// of quantity times snapshotted unit price over all lines.
func (c *Cart) Recalculate() {
	var total float64
	for _, line := range c.Items {
		total += line.LineTotal()
	}

	c.Total = total
}

func (c *Cart) FindLine(productID uuid.UUID) (int, bool) {
	for i, line := range c.Items {
		if line.ProductID == productID {
			return i, true
		}
	}

	return -1, false
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity"`
}

type RemoveFromCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}
