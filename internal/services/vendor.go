package service

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/tazecep/grocery-marketplace/internal/api/middleware"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/models"
	"github.com/tazecep/grocery-marketplace/internal/pricing"
	repository "github.com/tazecep/grocery-marketplace/internal/repositories"
)

// kmPerDegree is the flat-earth approximation used for nearby-vendor
// distances. Good enough at city scale; not a geodesic.
const kmPerDegree = 111.0

type VendorService interface {
	ListApproved(ctx context.Context) ([]*models.VendorProfile, error)
	ListNearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]*models.VendorProfile, error)
	GetVendor(ctx context.Context, id uuid.UUID) (*models.VendorProfile, error)
	GetVendorByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error)
	Dashboard(ctx context.Context, vendorID uuid.UUID) (*models.VendorDashboard, error)

	Apply(ctx context.Context, userID uuid.UUID, email, phone string, req *models.CreateVendorApplicationRequest) (*models.VendorApplication, error)
	ListApplications(ctx context.Context, status string, page, pageSize int) ([]*models.VendorApplication, int, error)
	GetApplication(ctx context.Context, applicationID uuid.UUID) (*models.VendorApplication, error)
	ApproveApplication(ctx context.Context, applicationID uuid.UUID, notes string) (*models.VendorApplication, error)
	RejectApplication(ctx context.Context, applicationID uuid.UUID, notes string) (*models.VendorApplication, error)
	RequestDocuments(ctx context.Context, applicationID uuid.UUID, notes string) (*models.VendorApplication, error)

	ListAllVendors(ctx context.Context) ([]*models.VendorProfile, error)
	SetVendorStatus(ctx context.Context, id uuid.UUID, approved, active bool) (*models.VendorProfile, error)
	PlatformStatistics(ctx context.Context) (*models.PlatformStatistics, error)
}

type vendorService struct {
	repo          repository.VendorRepository
	users         repository.UserRepository
	orders        repository.OrderRepository
	products      repository.ProductRepository
	notifications NotificationService
	sanitizer     *bluemonday.Policy
}

func NewVendorService(repo repository.VendorRepository, users repository.UserRepository, orders repository.OrderRepository, products repository.ProductRepository, notifications NotificationService) VendorService {
	return &vendorService{
		repo:          repo,
		users:         users,
		orders:        orders,
		products:      products,
		notifications: notifications,
		sanitizer:     bluemonday.StrictPolicy(),
	}
}

func (s *vendorService) ListApproved(ctx context.Context) ([]*models.VendorProfile, error) {
	profiles, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch vendors").WithError(err)
	}

	return profiles, nil
}

// ListNearby filters the approved vendors by straight-line distance from
// the given point and sorts nearest first. Each returned profile carries
// its distance in km.
func (s *vendorService) ListNearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]*models.VendorProfile, error) {
	profiles, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch vendors").WithError(err)
	}

	var nearby []*models.VendorProfile

	for _, profile := range profiles {
		dLat := (profile.Latitude - latitude) * kmPerDegree
		dLon := (profile.Longitude - longitude) * kmPerDegree
		distance := math.Sqrt(dLat*dLat + dLon*dLon)

		if radiusKm > 0 && distance > radiusKm {
			continue
		}

		profile.Distance = distance
		nearby = append(nearby, profile)
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].Distance < nearby[j].Distance
	})

	return nearby, nil
}

func (s *vendorService) GetVendor(ctx context.Context, id uuid.UUID) (*models.VendorProfile, error) {
	profile, err := s.repo.GetProfileByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundError("Vendor not found").WithError(err)
	}

	return profile, nil
}

func (s *vendorService) GetVendorByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error) {
	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFoundError("Vendor profile not found").WithError(err)
	}

	return profile, nil
}

const lowStockThreshold = 5

func (s *vendorService) Dashboard(ctx context.Context, vendorID uuid.UUID) (*models.VendorDashboard, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	dashboard := &models.VendorDashboard{}

	ordersToday, revenueToday, err := s.orders.VendorCounters(ctx, vendorID, startOfDay)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch vendor counters").WithError(err)
	}

	dashboard.TotalOrdersToday = ordersToday
	dashboard.RevenueToday = revenueToday

	ordersWeek, revenueWeek, err := s.orders.VendorCounters(ctx, vendorID, startOfDay.AddDate(0, 0, -7))
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch vendor counters").WithError(err)
	}

	dashboard.TotalOrdersWeek = ordersWeek
	dashboard.RevenueWeek = revenueWeek

	ordersMonth, revenueMonth, err := s.orders.VendorCounters(ctx, vendorID, startOfDay.AddDate(0, -1, 0))
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch vendor counters").WithError(err)
	}

	dashboard.TotalOrdersMonth = ordersMonth
	dashboard.RevenueMonth = revenueMonth

	pending, err := s.orders.CountPendingByVendor(ctx, vendorID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to count pending orders").WithError(err)
	}

	dashboard.PendingOrders = pending

	products, err := s.products.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch vendor products").WithError(err)
	}

	dashboard.TotalProducts = len(products)

	for _, product := range products {
		if product.IsAvailable {
			dashboard.ActiveProducts++
		}

		if product.Stock < lowStockThreshold {
			dashboard.LowStockProducts++
		}
	}

	recent, err := s.orders.ListByVendor(ctx, vendorID, "")
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch recent orders").WithError(err)
	}

	if len(recent) > 5 {
		recent = recent[:5]
	}

	dashboard.RecentOrders = make([]models.Order, 0, len(recent))
	for _, order := range recent {
		dashboard.RecentOrders = append(dashboard.RecentOrders, *order)
	}

	return dashboard, nil
}

func (s *vendorService) Apply(ctx context.Context, userID uuid.UUID, email, phone string, req *models.CreateVendorApplicationRequest) (*models.VendorApplication, error) {
	application := &models.VendorApplication{
		ID:          uuid.New(),
		UserID:      userID,
		StoreName:   s.sanitizer.Sanitize(req.StoreName),
		Email:       email,
		Phone:       phone,
		Address:     s.sanitizer.Sanitize(req.Address),
		Description: s.sanitizer.Sanitize(req.Description),
		Status:      models.ApplicationStatusPending,
	}

	if err := s.repo.CreateApplication(ctx, application); err != nil {
		return nil, apperrors.DatabaseError("Failed to create vendor application").WithError(err)
	}

	return application, nil
}

func (s *vendorService) ListApplications(ctx context.Context, status string, page, pageSize int) ([]*models.VendorApplication, int, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	applications, total, err := s.repo.ListApplications(ctx, status, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.DatabaseError("Failed to fetch vendor applications").WithError(err)
	}

	return applications, total, nil
}

func (s *vendorService) GetApplication(ctx context.Context, applicationID uuid.UUID) (*models.VendorApplication, error) {
	application, err := s.repo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, apperrors.NotFoundError("Application not found").WithError(err)
	}

	return application, nil
}

// ApproveApplication moves a pending application to approved and opens the
// store: the vendor profile is created from the application fields.
func (s *vendorService) ApproveApplication(ctx context.Context, applicationID uuid.UUID, notes string) (*models.VendorApplication, error) {
	application, err := s.reviewApplication(ctx, applicationID, models.ApplicationStatusApproved, notes)
	if err != nil {
		return nil, err
	}

	profile := &models.VendorProfile{
		ID:          uuid.New(),
		UserID:      application.UserID,
		StoreName:   application.StoreName,
		Description: application.Description,
		Address:     application.Address,
		IsApproved:  true,
		IsActive:    true,
	}

	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		return nil, apperrors.DatabaseError("Application approved but profile creation failed").WithError(err)
	}

	return application, nil
}

func (s *vendorService) RejectApplication(ctx context.Context, applicationID uuid.UUID, notes string) (*models.VendorApplication, error) {
	return s.reviewApplication(ctx, applicationID, models.ApplicationStatusRejected, notes)
}

func (s *vendorService) RequestDocuments(ctx context.Context, applicationID uuid.UUID, notes string) (*models.VendorApplication, error) {
	return s.reviewApplication(ctx, applicationID, models.ApplicationStatusDocumentsRequested, notes)
}

func (s *vendorService) reviewApplication(ctx context.Context, applicationID uuid.UUID, status, notes string) (*models.VendorApplication, error) {
	application, err := s.repo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, apperrors.NotFoundError("Application not found").WithError(err)
	}

	// Only pending or documents-requested applications can still be acted on.
	if application.Status == models.ApplicationStatusApproved || application.Status == models.ApplicationStatusRejected {
		return nil, apperrors.BadRequestError("Application has already been reviewed")
	}

	notes = s.sanitizer.Sanitize(notes)

	if err := s.repo.UpdateApplicationStatus(ctx, applicationID, status, notes); err != nil {
		return nil, apperrors.DatabaseError("Failed to update application").WithError(err)
	}

	application.Status = status
	application.ReviewNotes = notes

	if err := s.notifications.NotifyApplicationStatus(ctx, application.UserID, status, notes); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Application status notification failed",
			slog.String("applicationId", applicationID.String()), slog.Any("error", err))
	}

	return application, nil
}

// ListAllVendors includes unapproved and deactivated profiles, for the
// back office.
func (s *vendorService) ListAllVendors(ctx context.Context) ([]*models.VendorProfile, error) {
	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch vendors").WithError(err)
	}

	return profiles, nil
}

func (s *vendorService) SetVendorStatus(ctx context.Context, id uuid.UUID, approved, active bool) (*models.VendorProfile, error) {
	profile, err := s.repo.GetProfileByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundError("Vendor not found").WithError(err)
	}

	if err := s.repo.SetProfileStatus(ctx, id, approved, active); err != nil {
		return nil, apperrors.DatabaseError("Failed to update vendor status").WithError(err)
	}

	profile.IsApproved = approved
	profile.IsActive = active

	return profile, nil
}

func (s *vendorService) PlatformStatistics(ctx context.Context) (*models.PlatformStatistics, error) {
	stats := &models.PlatformStatistics{}

	roleCounts, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to count users").WithError(err)
	}

	stats.Users.Customers = roleCounts[models.RoleCustomer]
	stats.Users.Vendors = roleCounts[models.RoleVendor]
	stats.Users.Admins = roleCounts[models.RoleAdmin]
	stats.Users.Total = stats.Users.Customers + stats.Users.Vendors + stats.Users.Admins

	totalOrders, pendingOrders, completedOrders, revenue, err := s.orders.CountForStats(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to count orders").WithError(err)
	}

	stats.Orders.Total = totalOrders
	stats.Orders.Pending = pendingOrders
	stats.Orders.Completed = completedOrders
	stats.Revenue.Total = revenue
	stats.Revenue.Currency = "TRY"

	totalProducts, activeProducts, err := s.products.CountForStats(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to count products").WithError(err)
	}

	stats.Products.Total = totalProducts
	stats.Products.Active = activeProducts

	return stats, nil
}

// DeliveryEstimate is exposed alongside nearby results so the storefront
// can show the distance-based fee on each vendor card.
func DeliveryEstimate(profile *models.VendorProfile) float64 {
	return pricing.VendorDeliveryFee(profile.Distance)
}
