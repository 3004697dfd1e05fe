package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/tazecep/grocery-marketplace/internal/models"
	"github.com/tazecep/grocery-marketplace/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id, vendorID uuid.UUID) error
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.Product, error)
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	CountForStats(ctx context.Context) (total, active int, err error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, vendor_id, name, description, category, price, unit, stock,
		discount_percentage, is_available, quality_grade, images, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	product := &models.Product{}

	err := row.Scan(
		&product.ID, &product.VendorID, &product.Name, &product.Description,
		&product.Category, &product.Price, &product.Unit, &product.Stock,
		&product.DiscountPercentage, &product.IsAvailable, &product.QualityGrade,
		pq.Array(&product.Images), &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (id, vendor_id, name, description, category, price, unit, stock,
			discount_percentage, is_available, quality_grade, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.ID, product.VendorID, product.Name, product.Description, product.Category,
		product.Price, product.Unit, product.Stock, product.DiscountPercentage,
		product.IsAvailable, product.QualityGrade, pq.Array(product.Images),
	).Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying product: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET name = $1, description = $2, category = $3, price = $4, unit = $5, stock = $6,
			discount_percentage = $7, is_available = $8, quality_grade = $9, images = $10,
			updated_at = NOW()
		WHERE id = $11
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		product.Name, product.Description, product.Category, product.Price, product.Unit,
		product.Stock, product.DiscountPercentage, product.IsAvailable, product.QualityGrade,
		pq.Array(product.Images), product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id, vendorID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`DELETE FROM products WHERE id = $1 AND vendor_id = $2`, id, vendorID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ListProducts serves the public storefront: only available products,
// optional category and name filters, offset pagination.
func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	offset := (filter.Page - 1) * filter.PageSize

	query := `SELECT ` + productColumns + `, COUNT(*) OVER() AS total_count
		FROM products
		WHERE is_available = TRUE
			AND ($1 = '' OR category = $1)
			AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.DB.QueryContext(dbCtx, query, filter.Category, filter.Search, filter.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product

	var total int

	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(
			&product.ID, &product.VendorID, &product.Name, &product.Description,
			&product.Category, &product.Price, &product.Unit, &product.Stock,
			&product.DiscountPercentage, &product.IsAvailable, &product.QualityGrade,
			pq.Array(&product.Images), &product.CreatedAt, &product.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scanning product row: %w", err)
		}

		products = append(products, product)
	}

	return products, total, rows.Err()
}

func (r *productRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE vendor_id = $1 ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("querying vendor products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(
			&product.ID, &product.VendorID, &product.Name, &product.Description,
			&product.Category, &product.Price, &product.Unit, &product.Stock,
			&product.DiscountPercentage, &product.IsAvailable, &product.QualityGrade,
			pq.Array(&product.Images), &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}

		products = append(products, product)
	}

	return products, rows.Err()
}

// DecrementStock is guarded so an order can never take stock below zero.
func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1`,
		quantity, id)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *productRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`UPDATE products SET stock = stock + $1, updated_at = NOW() WHERE id = $2`,
		quantity, id)
	if err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *productRepository) CountForStats(ctx context.Context) (int, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total, active int

	err := r.DB.QueryRowContext(dbCtx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_available) FROM products`).
		Scan(&total, &active)
	if err != nil {
		return 0, 0, fmt.Errorf("counting products: %w", err)
	}

	return total, active, nil
}
