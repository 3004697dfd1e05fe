package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationStatusPending            = "pending"
	ApplicationStatusApproved           = "approved"
	ApplicationStatusRejected           = "rejected"
	ApplicationStatusDocumentsRequested = "documents_requested"
)

type VendorProfile struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	StoreName    string    `json:"store_name"`
	Description  string    `json:"description"`
	Address      string    `json:"address"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Rating       float64   `json:"rating"`
	DeliveryTime string    `json:"delivery_time"`
	MinOrder     float64   `json:"min_order"`
	IsApproved   bool      `json:"is_approved"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Distance is only populated by the nearby query, in km.
	Distance float64 `json:"distance,omitempty"`
}

type VendorApplication struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	StoreName   string    `json:"store_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	ReviewNotes string    `json:"review_notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateVendorApplicationRequest struct {
	StoreName   string  `json:"store_name" validate:"required,min=2,max=120"`
	Address     string  `json:"address" validate:"required"`
	Description string  `json:"description,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type ReviewApplicationRequest struct {
	Notes string `json:"notes,omitempty"`
}

type UpdateVendorStatusRequest struct {
	Approved bool `json:"approved"`
	Active   bool `json:"active"`
}

type VendorDashboard struct {
	TotalOrdersToday  int     `json:"total_orders_today"`
	RevenueToday      float64 `json:"total_revenue_today"`
	PendingOrders     int     `json:"pending_orders"`
	TotalProducts     int     `json:"total_products"`
	ActiveProducts    int     `json:"active_products"`
	LowStockProducts  int     `json:"low_stock_products"`
	TotalOrdersWeek   int     `json:"total_orders_week"`
	RevenueWeek       float64 `json:"total_revenue_week"`
	TotalOrdersMonth  int     `json:"total_orders_month"`
	RevenueMonth      float64 `json:"total_revenue_month"`
	RecentOrders      []Order `json:"recent_orders"`
}

type PlatformStatistics struct {
	Users struct {
		Total     int `json:"total"`
		Customers int `json:"customers"`
		Vendors   int `json:"vendors"`
		Admins    int `json:"admins"`
	} `json:"users"`
	Orders struct {
		Total     int `json:"total"`
		Pending   int `json:"pending"`
		Completed int `json:"completed"`
	} `json:"orders"`
	Revenue struct {
		Total    float64 `json:"total"`
		Currency string  `json:"currency"`
	} `json:"revenue"`
	Products struct {
		Total  int `json:"total"`
		Active int `json:"active"`
	} `json:"products"`
}
