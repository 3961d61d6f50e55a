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

// PostgresLeadRepository implements LeadRepository using PostgreSQL
type PostgresLeadRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLeadRepository creates a new PostgresLeadRepository
func NewPostgresLeadRepository(pool *pgxpool.Pool) *PostgresLeadRepository {
	return &PostgresLeadRepository{pool: pool}
}

const leadColumns = `id, tenant_id, assigned_profile_id, name,
	COALESCE(email, '') as email, COALESCE(phone, '') as phone, source,
	COALESCE(interest, '') as interest, budget, stage, score,
	COALESCE(metadata, '{}'::jsonb) as metadata, created_at, updated_at, deleted_at`

func scanLead(row pgx.Row) (*domain.Lead, error) {
	lead := &domain.Lead{}
	err := row.Scan(
		&lead.ID,
		&lead.TenantID,
		&lead.AssignedProfileID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Source,
		&lead.Interest,
		&lead.Budget,
		&lead.Stage,
		&lead.Score,
		&lead.Metadata,
		&lead.CreatedAt,
		&lead.UpdatedAt,
		&lead.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return lead, nil
}

// Create creates a new lead
func (r *PostgresLeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	query := `
		INSERT INTO leads (id, tenant_id, assigned_profile_id, name, email, phone, source,
			interest, budget, stage, score, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.pool.Exec(ctx, query,
		lead.ID,
		lead.TenantID,
		lead.AssignedProfileID,
		lead.Name,
		nullStringOrValue(lead.Email),
		nullStringOrValue(lead.Phone),
		lead.Source,
		nullStringOrValue(lead.Interest),
		lead.Budget,
		lead.Stage,
		lead.Score,
		lead.Metadata,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	return err
}

// GetByID retrieves a lead by ID within a tenant
func (r *PostgresLeadRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`, leadColumns)
	return scanLead(r.pool.QueryRow(ctx, query, tenantID, id))
}

// GetByPhone retrieves a lead by phone within a tenant
func (r *PostgresLeadRepository) GetByPhone(ctx context.Context, tenantID, phone string) (*domain.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE tenant_id = $1 AND phone = $2 AND deleted_at IS NULL`, leadColumns)
	return scanLead(r.pool.QueryRow(ctx, query, tenantID, phone))
}

// List retrieves leads with pagination and filters
func (r *PostgresLeadRepository) List(ctx context.Context, tenantID string, filter LeadFilter) ([]*domain.Lead, int, error) {
	whereClause := "WHERE tenant_id = $1 AND deleted_at IS NULL"
	args := []interface{}{tenantID}
	argIndex := 2

	if filter.Stage != "" {
		whereClause += fmt.Sprintf(" AND stage = $%d", argIndex)
		args = append(args, filter.Stage)
		argIndex++
	}

	if filter.AssignedProfileID != "" {
		whereClause += fmt.Sprintf(" AND assigned_profile_id = $%d", argIndex)
		args = append(args, filter.AssignedProfileID)
		argIndex++
	}

	if filter.Source != "" {
		whereClause += fmt.Sprintf(" AND source = $%d", argIndex)
		args = append(args, filter.Source)
		argIndex++
	}

	if filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM leads %s", whereClause)
	var totalCount int
	err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount)
	if err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM leads
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, leadColumns, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := make([]*domain.Lead, 0)
	for rows.Next() {
		lead := &domain.Lead{}
		err := rows.Scan(
			&lead.ID,
			&lead.TenantID,
			&lead.AssignedProfileID,
			&lead.Name,
			&lead.Email,
			&lead.Phone,
			&lead.Source,
			&lead.Interest,
			&lead.Budget,
			&lead.Stage,
			&lead.Score,
			&lead.Metadata,
			&lead.CreatedAt,
			&lead.UpdatedAt,
			&lead.DeletedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}

	return leads, totalCount, nil
}

// Update updates a lead
func (r *PostgresLeadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	query := `
		UPDATE leads
		SET assigned_profile_id = $3, name = $4, email = $5, phone = $6,
			interest = $7, budget = $8, stage = $9, score = $10, metadata = $11, updated_at = $12
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	lead.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		lead.TenantID,
		lead.ID,
		lead.AssignedProfileID,
		lead.Name,
		nullStringOrValue(lead.Email),
		nullStringOrValue(lead.Phone),
		nullStringOrValue(lead.Interest),
		lead.Budget,
		lead.Stage,
		lead.Score,
		lead.Metadata,
		lead.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lead not found or already deleted")
	}

	return nil
}

// UpdateStage moves a lead to a new pipeline stage
func (r *PostgresLeadRepository) UpdateStage(ctx context.Context, tenantID, id, stage string) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE leads SET stage = $3, updated_at = $4 WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`,
		tenantID, id, stage, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("lead not found or already deleted")
	}
	return nil
}

// UpdateScore stores a new score for a lead
func (r *PostgresLeadRepository) UpdateScore(ctx context.Context, tenantID, id string, score int) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE leads SET score = $3, updated_at = $4 WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`,
		tenantID, id, score, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("lead not found or already deleted")
	}
	return nil
}

// SoftDelete soft deletes a lead
func (r *PostgresLeadRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE leads SET deleted_at = $3 WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`,
		tenantID, id, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("lead not found or already deleted")
	}
	return nil
}
