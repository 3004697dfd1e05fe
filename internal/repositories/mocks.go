package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tazecep/grocery-marketplace/internal/models"
)

// Hand-rolled testify mocks for the repository interfaces, used by the
// service tests.

type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, role string) ([]*models.User, error) {
	args := m.Called(ctx, role)
	if users, ok := args.Get(0).([]*models.User); ok {
		return users, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)

	return args.Error(0)
}

func (m *MockUserRepository) CountByRole(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if counts, ok := args.Get(0).(map[string]int); ok {
		return counts, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, id, vendorID uuid.UUID) error {
	args := m.Called(ctx, id, vendorID)

	return args.Error(0)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	args := m.Called(ctx, filter)
	if products, ok := args.Get(0).([]*models.Product); ok {
		return products, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *MockProductRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.Product, error) {
	args := m.Called(ctx, vendorID)
	if products, ok := args.Get(0).([]*models.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)

	return args.Error(0)
}

func (m *MockProductRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)

	return args.Error(0)
}

func (m *MockProductRepository) CountForStats(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Int(1), args.Error(2)
}

type MockCartRepository struct {
	mock.Mock
}

func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{}
}

func (m *MockCartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	args := m.Called(ctx, cart)

	return args.Error(0)
}

func (m *MockCartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	args := m.Called(ctx, cart)

	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{}
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	args := m.Called(ctx, userID)
	if orders, ok := args.Get(0).([]*models.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, status string) ([]*models.Order, error) {
	args := m.Called(ctx, vendorID, status)
	if orders, ok := args.Get(0).([]*models.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)

	return args.Error(0)
}

func (m *MockOrderRepository) CountForStats(ctx context.Context) (int, int, int, float64, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Int(1), args.Int(2), args.Get(3).(float64), args.Error(4)
}

func (m *MockOrderRepository) VendorCounters(ctx context.Context, vendorID uuid.UUID, since time.Time) (int, float64, error) {
	args := m.Called(ctx, vendorID, since)

	return args.Int(0), args.Get(1).(float64), args.Error(2)
}

func (m *MockOrderRepository) CountPendingByVendor(ctx context.Context, vendorID uuid.UUID) (int, error) {
	args := m.Called(ctx, vendorID)

	return args.Int(0), args.Error(1)
}

type MockVendorRepository struct {
	mock.Mock
}

func NewMockVendorRepository() *MockVendorRepository {
	return &MockVendorRepository{}
}

func (m *MockVendorRepository) CreateProfile(ctx context.Context, profile *models.VendorProfile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}

func (m *MockVendorRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (*models.VendorProfile, error) {
	args := m.Called(ctx, id)
	if profile, ok := args.Get(0).(*models.VendorProfile); ok {
		return profile, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error) {
	args := m.Called(ctx, userID)
	if profile, ok := args.Get(0).(*models.VendorProfile); ok {
		return profile, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorRepository) ListApproved(ctx context.Context) ([]*models.VendorProfile, error) {
	args := m.Called(ctx)
	if profiles, ok := args.Get(0).([]*models.VendorProfile); ok {
		return profiles, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorRepository) ListProfiles(ctx context.Context) ([]*models.VendorProfile, error) {
	args := m.Called(ctx)
	if profiles, ok := args.Get(0).([]*models.VendorProfile); ok {
		return profiles, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorRepository) SetProfileStatus(ctx context.Context, id uuid.UUID, approved, active bool) error {
	args := m.Called(ctx, id, approved, active)

	return args.Error(0)
}

func (m *MockVendorRepository) CreateApplication(ctx context.Context, app *models.VendorApplication) error {
	args := m.Called(ctx, app)

	return args.Error(0)
}

func (m *MockVendorRepository) GetApplicationByID(ctx context.Context, id uuid.UUID) (*models.VendorApplication, error) {
	args := m.Called(ctx, id)
	if app, ok := args.Get(0).(*models.VendorApplication); ok {
		return app, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorRepository) ListApplications(ctx context.Context, status string, page, pageSize int) ([]*models.VendorApplication, int, error) {
	args := m.Called(ctx, status, page, pageSize)
	if apps, ok := args.Get(0).([]*models.VendorApplication); ok {
		return apps, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *MockVendorRepository) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status, notes string) error {
	args := m.Called(ctx, id, status, notes)

	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{}
}

func (m *MockPaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)

	return args.Error(0)
}

func (m *MockPaymentRepository) GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if payment, ok := args.Get(0).(*models.Payment); ok {
		return payment, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPaymentRepository) GetPaymentByIntentID(ctx context.Context, intentID string) (*models.Payment, error) {
	args := m.Called(ctx, intentID)
	if payment, ok := args.Get(0).(*models.Payment); ok {
		return payment, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Payment, error) {
	args := m.Called(ctx, userID)
	if payments, ok := args.Get(0).([]*models.Payment); ok {
		return payments, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status, failureReason string) error {
	args := m.Called(ctx, id, status, failureReason)

	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)

	return args.Error(0)
}

func (m *MockNotificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)

	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if notifications, ok := args.Get(0).([]*models.Notification); ok {
		return notifications, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockRateLimitRepository struct {
	mock.Mock
}

func NewMockRateLimitRepository() *MockRateLimitRepository {
	return &MockRateLimitRepository{}
}

func (m *MockRateLimitRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}
