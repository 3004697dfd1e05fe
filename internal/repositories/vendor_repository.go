package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/tazecep/grocery-marketplace/internal/models"
	"github.com/tazecep/grocery-marketplace/internal/utils"
)

type VendorRepository interface {
	CreateProfile(ctx context.Context, profile *models.VendorProfile) error
	GetProfileByID(ctx context.Context, id uuid.UUID) (*models.VendorProfile, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error)
	ListApproved(ctx context.Context) ([]*models.VendorProfile, error)
	ListProfiles(ctx context.Context) ([]*models.VendorProfile, error)
	SetProfileStatus(ctx context.Context, id uuid.UUID, approved, active bool) error

	CreateApplication(ctx context.Context, app *models.VendorApplication) error
	GetApplicationByID(ctx context.Context, id uuid.UUID) (*models.VendorApplication, error)
	ListApplications(ctx context.Context, status string, page, pageSize int) ([]*models.VendorApplication, int, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status, notes string) error
}

type vendorRepository struct {
	DB *sql.DB
}

func NewVendorRepo(db *sql.DB) VendorRepository {
	return &vendorRepository{DB: db}
}

const profileColumns = `id, user_id, store_name, description, address, latitude, longitude,
		rating, delivery_time, min_order, is_approved, is_active, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*models.VendorProfile, error) {
	profile := &models.VendorProfile{}

	err := row.Scan(
		&profile.ID, &profile.UserID, &profile.StoreName, &profile.Description,
		&profile.Address, &profile.Latitude, &profile.Longitude, &profile.Rating,
		&profile.DeliveryTime, &profile.MinOrder, &profile.IsApproved, &profile.IsActive,
		&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *vendorRepository) CreateProfile(ctx context.Context, profile *models.VendorProfile) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO vendor_profiles (id, user_id, store_name, description, address, latitude,
			longitude, rating, delivery_time, min_order, is_approved, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		profile.ID, profile.UserID, profile.StoreName, profile.Description, profile.Address,
		profile.Latitude, profile.Longitude, profile.Rating, profile.DeliveryTime,
		profile.MinOrder, profile.IsApproved, profile.IsActive,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *vendorRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (*models.VendorProfile, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + profileColumns + ` FROM vendor_profiles WHERE id = $1`

	profile, err := scanProfile(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying vendor profile: %w", err)
	}

	return profile, nil
}

func (r *vendorRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + profileColumns + ` FROM vendor_profiles WHERE user_id = $1`

	profile, err := scanProfile(r.DB.QueryRowContext(dbCtx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying vendor profile by user: %w", err)
	}

	return profile, nil
}

func (r *vendorRepository) ListApproved(ctx context.Context) ([]*models.VendorProfile, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + profileColumns + ` FROM vendor_profiles
		WHERE is_approved = TRUE AND is_active = TRUE
		ORDER BY rating DESC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying approved vendors: %w", err)
	}
	defer rows.Close()

	var profiles []*models.VendorProfile

	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vendor profile row: %w", err)
		}

		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// ListProfiles returns every vendor profile regardless of approval,
// for the back office.
func (r *vendorRepository) ListProfiles(ctx context.Context) ([]*models.VendorProfile, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + profileColumns + ` FROM vendor_profiles ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying vendors: %w", err)
	}
	defer rows.Close()

	var profiles []*models.VendorProfile

	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vendor profile row: %w", err)
		}

		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

func (r *vendorRepository) SetProfileStatus(ctx context.Context, id uuid.UUID, approved, active bool) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`UPDATE vendor_profiles SET is_approved = $1, is_active = $2, updated_at = NOW() WHERE id = $3`,
		approved, active, id)
	if err != nil {
		return fmt.Errorf("failed to update vendor profile status: %w", err)
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

const applicationColumns = `id, user_id, store_name, email, phone, address, description,
		status, review_notes, created_at, updated_at`

func scanApplication(row interface{ Scan(...any) error }) (*models.VendorApplication, error) {
	app := &models.VendorApplication{}

	err := row.Scan(
		&app.ID, &app.UserID, &app.StoreName, &app.Email, &app.Phone, &app.Address,
		&app.Description, &app.Status, &app.ReviewNotes, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return app, nil
}

func (r *vendorRepository) CreateApplication(ctx context.Context, app *models.VendorApplication) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO vendor_applications (id, user_id, store_name, email, phone, address,
			description, status, review_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		app.ID, app.UserID, app.StoreName, app.Email, app.Phone, app.Address,
		app.Description, app.Status, app.ReviewNotes,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
}

func (r *vendorRepository) GetApplicationByID(ctx context.Context, id uuid.UUID) (*models.VendorApplication, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + applicationColumns + ` FROM vendor_applications WHERE id = $1`

	app, err := scanApplication(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying vendor application: %w", err)
	}

	return app, nil
}

func (r *vendorRepository) ListApplications(ctx context.Context, status string, page, pageSize int) ([]*models.VendorApplication, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	offset := (page - 1) * pageSize

	query := `SELECT ` + applicationColumns + `, COUNT(*) OVER() AS total_count
		FROM vendor_applications
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(dbCtx, query, status, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying vendor applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.VendorApplication

	var total int

	for rows.Next() {
		app := &models.VendorApplication{}
		if err := rows.Scan(
			&app.ID, &app.UserID, &app.StoreName, &app.Email, &app.Phone, &app.Address,
			&app.Description, &app.Status, &app.ReviewNotes, &app.CreatedAt, &app.UpdatedAt,
			&total); err != nil {
			return nil, 0, fmt.Errorf("scanning vendor application row: %w", err)
		}

		apps = append(apps, app)
	}

	return apps, total, rows.Err()
}

func (r *vendorRepository) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status, notes string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`UPDATE vendor_applications SET status = $1, review_notes = $2, updated_at = NOW() WHERE id = $3`,
		status, notes, id)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
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
