package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
)

// PostgresProfileRepository implements ProfileRepository using PostgreSQL
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

const profileColumns = `id, tenant_id, full_name, email, COALESCE(phone, '') as phone,
	role, is_active, created_at, updated_at, deleted_at`

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	profile := &domain.Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.TenantID,
		&profile.FullName,
		&profile.Email,
		&profile.Phone,
		&profile.Role,
		&profile.IsActive,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&profile.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// Create creates a new profile
func (r *PostgresProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, tenant_id, full_name, email, phone, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.TenantID,
		profile.FullName,
		profile.Email,
		nullStringOrValue(profile.Phone),
		profile.Role,
		profile.IsActive,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

// GetByID retrieves a profile by ID
func (r *PostgresProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE id = $1 AND deleted_at IS NULL`, profileColumns)
	return scanProfile(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a profile by email within a tenant
func (r *PostgresProfileRepository) GetByEmail(ctx context.Context, tenantID, email string) (*domain.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE tenant_id = $1 AND email = $2 AND deleted_at IS NULL`, profileColumns)
	return scanProfile(r.pool.QueryRow(ctx, query, tenantID, email))
}

// ListByTenant retrieves all active profiles of a tenant
func (r *PostgresProfileRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM profiles
		WHERE tenant_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`, profileColumns)

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]*domain.Profile, 0)
	for rows.Next() {
		profile := &domain.Profile{}
		err := rows.Scan(
			&profile.ID,
			&profile.TenantID,
			&profile.FullName,
			&profile.Email,
			&profile.Phone,
			&profile.Role,
			&profile.IsActive,
			&profile.CreatedAt,
			&profile.UpdatedAt,
			&profile.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// Update updates a profile
func (r *PostgresProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $2, phone = $3, role = $4, is_active = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
	`
	profile.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.FullName,
		nullStringOrValue(profile.Phone),
		profile.Role,
		profile.IsActive,
		profile.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found or already deleted")
	}

	return nil
}

// SoftDelete soft deletes a profile
func (r *PostgresProfileRepository) SoftDelete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE profiles SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found or already deleted")
	}
	return nil
}
