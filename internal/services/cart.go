package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/models"
	repository "github.com/tazecep/grocery-marketplace/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddToCartRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateCartItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, req *models.RemoveFromCartRequest) (*models.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
}

type cartService struct {
	repo     repository.CartRepository
	products ProductService
}

func NewCartService(repo repository.CartRepository, products ProductService) CartService {
	return &cartService{repo: repo, products: products}
}

// GetCart returns the user's cart, creating an empty one on first use.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	cart = &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  []models.CartLine{},
	}

	if err := s.repo.CreateCart(ctx, cart); err != nil {
		return nil, apperrors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

// AddItem snapshots the current unit price into the line. Adding a product
// already in the cart merges quantities and keeps the original price.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddToCartRequest) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.products.GetSnapshot(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if !snapshot.IsAvailable {
		return nil, apperrors.UnavailableError("Product is not available")
	}

	idx, exists := cart.FindLine(req.ProductID)

	requested := req.Quantity
	if exists {
		requested += cart.Items[idx].Quantity
	}

	if snapshot.Stock < requested {
		return nil, apperrors.OutOfStockError("Not enough stock for requested quantity")
	}

	if exists {
		cart.Items[idx].Quantity = requested
	} else {
		cart.Items = append(cart.Items, models.CartLine{
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			UnitPrice: snapshot.Price,
		})
	}

	cart.Recalculate()

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, apperrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// UpdateQuantity sets an absolute quantity. Zero or negative removes the
// line rather than leaving an empty entry.
func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateCartItemRequest) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx, exists := cart.FindLine(req.ProductID)
	if !exists {
		return nil, apperrors.BadRequestError("Item not found in the cart")
	}

	if req.Quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		snapshot, err := s.products.GetSnapshot(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}

		if snapshot.Stock < req.Quantity {
			return nil, apperrors.OutOfStockError("Not enough stock for requested quantity")
		}

		cart.Items[idx].Quantity = req.Quantity
	}

	cart.Recalculate()

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, apperrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, req *models.RemoveFromCartRequest) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx, exists := cart.FindLine(req.ProductID)
	if !exists {
		return nil, apperrors.BadRequestError("Item not found in the cart")
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	cart.Recalculate()

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, apperrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Items = []models.CartLine{}
	cart.Recalculate()

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, apperrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}
