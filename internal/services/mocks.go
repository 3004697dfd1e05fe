package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tazecep/grocery-marketplace/internal/models"
)

// Testify mocks of the service interfaces, used by the handler tests.

type MockUserService struct {
	mock.Mock
}

func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.LoginResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, role string) ([]*models.User, error) {
	args := m.Called(ctx, role)
	if users, ok := args.Get(0).([]*models.User); ok {
		return users, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func NewMockProductService() *MockProductService {
	return &MockProductService{}
}

func (m *MockProductService) CreateProduct(ctx context.Context, vendorID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, vendorID, req)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductService) GetSnapshot(ctx context.Context, id uuid.UUID) (*models.ProductSnapshot, error) {
	args := m.Called(ctx, id)
	if snapshot, ok := args.Get(0).(*models.ProductSnapshot); ok {
		return snapshot, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id, vendorID uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, vendorID, req)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, id, vendorID uuid.UUID) error {
	args := m.Called(ctx, id, vendorID)

	return args.Error(0)
}

func (m *MockProductService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	args := m.Called(ctx, filter)
	if products, ok := args.Get(0).([]*models.Product); ok {
		return products, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *MockProductService) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.Product, error) {
	args := m.Called(ctx, vendorID)
	if products, ok := args.Get(0).([]*models.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductService) ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)

	return args.Error(0)
}

func (m *MockProductService) ReleaseStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)

	return args.Error(0)
}

type MockCartService struct {
	mock.Mock
}

func NewMockCartService() *MockCartService {
	return &MockCartService{}
}

func (m *MockCartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddToCartRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateCartItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID uuid.UUID, req *models.RemoveFromCartRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartService) ClearCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockCheckoutService struct {
	mock.Mock
}

func NewMockCheckoutService() *MockCheckoutService {
	return &MockCheckoutService{}
}

func (m *MockCheckoutService) Quote(ctx context.Context, userID uuid.UUID, couponCode, giftWrapID string) (*models.CheckoutQuote, error) {
	args := m.Called(ctx, userID, couponCode, giftWrapID)
	if quote, ok := args.Get(0).(*models.CheckoutQuote); ok {
		return quote, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func NewMockOrderService() *MockOrderService {
	return &MockOrderService{}
}

func (m *MockOrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, userID, req)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	args := m.Called(ctx, userID)
	if orders, ok := args.Get(0).([]*models.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderService) ListByVendor(ctx context.Context, vendorID uuid.UUID, status string) ([]*models.Order, error) {
	args := m.Called(ctx, vendorID, status)
	if orders, ok := args.Get(0).([]*models.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID, vendorID uuid.UUID, newStatus string) (*models.Order, error) {
	args := m.Called(ctx, orderID, vendorID, newStatus)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderService) Cancel(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, orderID, userID)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockVendorService struct {
	mock.Mock
}

func NewMockVendorService() *MockVendorService {
	return &MockVendorService{}
}

func (m *MockVendorService) ListApproved(ctx context.Context) ([]*models.VendorProfile, error) {
	args := m.Called(ctx)
	if profiles, ok := args.Get(0).([]*models.VendorProfile); ok {
		return profiles, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorService) ListNearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]*models.VendorProfile, error) {
	args := m.Called(ctx, latitude, longitude, radiusKm)
	if profiles, ok := args.Get(0).([]*models.VendorProfile); ok {
		return profiles, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorService) GetVendor(ctx context.Context, id uuid.UUID) (*models.VendorProfile, error) {
	args := m.Called(ctx, id)
	if profile, ok := args.Get(0).(*models.VendorProfile); ok {
		return profile, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorService) GetVendorByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error) {
	args := m.Called(ctx, userID)
	if profile, ok := args.Get(0).(*models.VendorProfile); ok {
		return profile, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorService) Dashboard(ctx context.Context, vendorID uuid.UUID) (*models.VendorDashboard, error) {
	args := m.Called(ctx, vendorID)
	if dashboard, ok := args.Get(0).(*models.VendorDashboard); ok {
		return dashboard, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorService) Apply(ctx context.Context, userID uuid.UUID, email, phone string, req *models.CreateVendorApplicationRequest) (*models.VendorApplication, error) {
	args := m.Called(ctx, userID, email, phone, req)
	if application, ok := args.Get(0).(*models.VendorApplication); ok {
		return application, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorService) ListApplications(ctx context.Context, status string, page, pageSize int) ([]*models.VendorApplication, int, error) {
	args := m.Called(ctx, status, page, pageSize)
	if applications, ok := args.Get(0).([]*models.VendorApplication); ok {
		return applications, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *MockVendorService) GetApplication(ctx context.Context, applicationID uuid.UUID) (*models.VendorApplication, error) {
	args := m.Called(ctx, applicationID)
	if app, ok := args.Get(0).(*models.VendorApplication); ok {
		return app, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorService) ApproveApplication(ctx context.Context, applicationID uuid.UUID, notes string) (*models.VendorApplication, error) {
	args := m.Called(ctx, applicationID, notes)
	if application, ok := args.Get(0).(*models.VendorApplication); ok {
		return application, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorService) RejectApplication(ctx context.Context, applicationID uuid.UUID, notes string) (*models.VendorApplication, error) {
	args := m.Called(ctx, applicationID, notes)
	if application, ok := args.Get(0).(*models.VendorApplication); ok {
		return application, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorService) RequestDocuments(ctx context.Context, applicationID uuid.UUID, notes string) (*models.VendorApplication, error) {
	args := m.Called(ctx, applicationID, notes)
	if application, ok := args.Get(0).(*models.VendorApplication); ok {
		return application, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorService) ListAllVendors(ctx context.Context) ([]*models.VendorProfile, error) {
	args := m.Called(ctx)
	if profiles, ok := args.Get(0).([]*models.VendorProfile); ok {
		return profiles, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorService) SetVendorStatus(ctx context.Context, id uuid.UUID, approved, active bool) (*models.VendorProfile, error) {
	args := m.Called(ctx, id, approved, active)
	if profile, ok := args.Get(0).(*models.VendorProfile); ok {
		return profile, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorService) PlatformStatistics(ctx context.Context) (*models.PlatformStatistics, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).(*models.PlatformStatistics); ok {
		return stats, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func NewMockPaymentService() *MockPaymentService {
	return &MockPaymentService{}
}

func (m *MockPaymentService) CreatePayment(ctx context.Context, userID uuid.UUID, req *models.CreatePaymentRequest) (*models.Payment, error) {
	args := m.Called(ctx, userID, req)
	if payment, ok := args.Get(0).(*models.Payment); ok {
		return payment, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if payment, ok := args.Get(0).(*models.Payment); ok {
		return payment, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPaymentService) ListPayments(ctx context.Context, userID uuid.UUID) ([]*models.Payment, error) {
	args := m.Called(ctx, userID)
	if payments, ok := args.Get(0).([]*models.Payment); ok {
		return payments, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	args := m.Called(ctx, payload, signature)

	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) NotifyOrderStatus(ctx context.Context, userID uuid.UUID, orderID uuid.UUID, status string) error {
	args := m.Called(ctx, userID, orderID, status)

	return args.Error(0)
}

func (m *MockNotificationService) NotifyApplicationStatus(ctx context.Context, userID uuid.UUID, status, notes string) error {
	args := m.Called(ctx, userID, status, notes)

	return args.Error(0)
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if notifications, ok := args.Get(0).([]*models.Notification); ok {
		return notifications, args.Error(1)
	}

	return nil, args.Error(1)
}
