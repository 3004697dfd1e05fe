package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type Product struct {
	ID                 uuid.UUID `json:"id"`
	VendorID           uuid.UUID `json:"vendor_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	Price              float64   `json:"price"`
	Unit               string    `json:"unit"`
	Stock              int       `json:"stock"`
	DiscountPercentage float64   `json:"discount_percentage"`
	IsAvailable        bool      `json:"is_available"`
	QualityGrade       string    `json:"quality_grade"`
	Images             []string  `json:"images"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProductSnapshot is the last-known state of a product as seen by the
// checkout path. Snapshots come out of the read-through cache and may lag
// server truth by at most the configured TTL.
type ProductSnapshot struct {
	ProductID          uuid.UUID `json:"product_id"`
	Name               string    `json:"name"`
	Price              float64   `json:"price"`
	Unit               string    `json:"unit"`
	Stock              int       `json:"stock"`
	DiscountPercentage float64   `json:"discount_percentage"`
	IsAvailable        bool      `json:"is_available"`
	FetchedAt          time.Time `json:"fetched_at"`
}

func (p *Product) Snapshot() *ProductSnapshot {
	return &ProductSnapshot{
		ProductID:          p.ID,
		Name:               p.Name,
		Price:              p.Price,
		Unit:               p.Unit,
		Stock:              p.Stock,
		DiscountPercentage: p.DiscountPercentage,
		IsAvailable:        p.IsAvailable,
		FetchedAt:          time.Now(),
	}
}

type CreateProductRequest struct {
	Name               string   `json:"name" validate:"required,min=2,max=200"`
	Description        string   `json:"description,omitempty"`
	Category           string   `json:"category" validate:"required"`
	Price              float64  `json:"price" validate:"required,gt=0"`
	Unit               string   `json:"unit" validate:"required,oneof=kg piece package"`
	Stock              int      `json:"stock" validate:"required,gte=0"`
	DiscountPercentage float64  `json:"discount_percentage" validate:"gte=0,lt=100"`
	IsAvailable        bool     `json:"is_available"`
	QualityGrade       string   `json:"quality_grade" validate:"omitempty,oneof=A B C"`
	Images             []string `json:"images,omitempty"`
}

type UpdateProductRequest struct {
	Name               *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description        *string  `json:"description,omitempty"`
	Category           *string  `json:"category,omitempty"`
	Price              *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Unit               *string  `json:"unit,omitempty" validate:"omitempty,oneof=kg piece package"`
	Stock              *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty" validate:"omitempty,gte=0,lt=100"`
	IsAvailable        *bool    `json:"is_available,omitempty"`
	QualityGrade       *string  `json:"quality_grade,omitempty" validate:"omitempty,oneof=A B C"`
	Images             []string `json:"images,omitempty"`
}

type ProductFilter struct {
	Category string
	Search   string
	Page     int
	PageSize int
}
