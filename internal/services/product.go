package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/tazecep/grocery-marketplace/internal/api/middleware"
	"github.com/tazecep/grocery-marketplace/internal/cache"
	"github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/models"
	repository "github.com/tazecep/grocery-marketplace/internal/repositories"
)

type ProductService interface {
	CreateProduct(ctx context.Context, vendorID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetSnapshot(ctx context.Context, id uuid.UUID) (*models.ProductSnapshot, error)
	UpdateProduct(ctx context.Context, id, vendorID uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id, vendorID uuid.UUID) error
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.Product, error)
	ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error
	ReleaseStock(ctx context.Context, id uuid.UUID, quantity int) error
}

type productService struct {
	repo        repository.ProductRepository
	cache       cache.Cache
	snapshotTTL time.Duration
	sanitizer   *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, productCache cache.Cache, snapshotTTL time.Duration) ProductService {
	return &productService{
		repo:        repo,
		cache:       productCache,
		snapshotTTL: snapshotTTL,
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

func (s *productService) CreateProduct(ctx context.Context, vendorID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		ID:                 uuid.New(),
		VendorID:           vendorID,
		Name:               s.sanitizer.Sanitize(req.Name),
		Description:        s.sanitizer.Sanitize(req.Description),
		Category:           req.Category,
		Price:              req.Price,
		Unit:               req.Unit,
		Stock:              req.Stock,
		DiscountPercentage: req.DiscountPercentage,
		IsAvailable:        req.IsAvailable,
		QualityGrade:       req.QualityGrade,
		Images:             req.Images,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	return product, nil
}

// GetSnapshot is the read-through path used by checkout. A cached snapshot
// is served as-is until its TTL lapses; a miss refreshes from the database.
func (s *productService) GetSnapshot(ctx context.Context, id uuid.UUID) (*models.ProductSnapshot, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.SnapshotKeyPrefix, id.String())

	snapshot := &models.ProductSnapshot{}

	found, err := s.cache.Get(ctx, key, snapshot)
	if err != nil {
		logger.Warn("Snapshot cache read failed, falling back to database",
			slog.String("key", key), slog.Any("error", err))
	}

	if found && err == nil {
		return snapshot, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	snapshot = product.Snapshot()

	if err := s.cache.Set(ctx, key, snapshot, s.snapshotTTL); err != nil {
		logger.Warn("Snapshot cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return snapshot, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id, vendorID uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if product.VendorID != vendorID {
		return nil, errors.ForbiddenError("Product belongs to another vendor")
	}

	if req.Name != nil {
		product.Name = s.sanitizer.Sanitize(*req.Name)
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.Category != nil {
		product.Category = *req.Category
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.Unit != nil {
		product.Unit = *req.Unit
	}

	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if req.DiscountPercentage != nil {
		product.DiscountPercentage = *req.DiscountPercentage
	}

	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if req.QualityGrade != nil {
		product.QualityGrade = *req.QualityGrade
	}

	if req.Images != nil {
		product.Images = req.Images
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	// Drop the stale snapshot so checkout picks up the new price promptly.
	if err := s.cache.Delete(ctx, cache.Key(cache.SnapshotKeyPrefix, id.String())); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Snapshot cache invalidation failed",
			slog.String("productId", id.String()), slog.Any("error", err))
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id, vendorID uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id, vendorID); err != nil {
		return errors.NotFoundError("Product not found").WithError(err)
	}

	if err := s.cache.Delete(ctx, cache.Key(cache.SnapshotKeyPrefix, id.String())); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Snapshot cache invalidation failed",
			slog.String("productId", id.String()), slog.Any("error", err))
	}

	return nil
}

// ReserveStock decrements stock for an order line. The repository guard
// refuses to go below zero, which surfaces here as an out-of-stock error.
func (s *productService) ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if err := s.repo.DecrementStock(ctx, id, quantity); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.OutOfStockError("Not enough stock for requested quantity")
		}

		return errors.DatabaseError("Failed to reserve stock").WithError(err)
	}

	if err := s.cache.Delete(ctx, cache.Key(cache.SnapshotKeyPrefix, id.String())); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Snapshot cache invalidation failed",
			slog.String("productId", id.String()), slog.Any("error", err))
	}

	return nil
}

// ReleaseStock gives a reservation back, compensating a partially
// reserved order that could not complete.
func (s *productService) ReleaseStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if err := s.repo.IncrementStock(ctx, id, quantity); err != nil {
		return errors.DatabaseError("Failed to release stock").WithError(err)
	}

	if err := s.cache.Delete(ctx, cache.Key(cache.SnapshotKeyPrefix, id.String())); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Snapshot cache invalidation failed",
			slog.String("productId", id.String()), slog.Any("error", err))
	}

	return nil
}

func (s *productService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	products, total, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

func (s *productService) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.Product, error) {
	products, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch vendor products").WithError(err)
	}

	return products, nil
}
