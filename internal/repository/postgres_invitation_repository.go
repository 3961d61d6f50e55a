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

// PostgresInvitationRepository implements InvitationRepository using PostgreSQL
type PostgresInvitationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresInvitationRepository creates a new PostgresInvitationRepository
func NewPostgresInvitationRepository(pool *pgxpool.Pool) *PostgresInvitationRepository {
	return &PostgresInvitationRepository{pool: pool}
}

const invitationColumns = `id, tenant_id, email, role, token, status, invited_by,
	expires_at, accepted_at, created_at, updated_at`

// Create creates a new invitation
func (r *PostgresInvitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (id, tenant_id, email, role, token, status, invited_by, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		inv.ID,
		inv.TenantID,
		inv.Email,
		inv.Role,
		inv.Token,
		inv.Status,
		inv.InvitedBy,
		inv.ExpiresAt,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	return err
}

// GetByID retrieves an invitation by ID
func (r *PostgresInvitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := fmt.Sprintf(`SELECT %s FROM invitations WHERE id = $1`, invitationColumns)
	inv := &domain.Invitation{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&inv.ID,
		&inv.TenantID,
		&inv.Email,
		&inv.Role,
		&inv.Token,
		&inv.Status,
		&inv.InvitedBy,
		&inv.ExpiresAt,
		&inv.AcceptedAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

// ListPending retrieves pending invitations for a tenant
func (r *PostgresInvitationRepository) ListPending(ctx context.Context, tenantID string) ([]*domain.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM invitations
		WHERE tenant_id = $1 AND status = $2
		ORDER BY created_at DESC
	`, invitationColumns)

	rows, err := r.pool.Query(ctx, query, tenantID, domain.InvitationStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv := &domain.Invitation{}
		err := rows.Scan(
			&inv.ID,
			&inv.TenantID,
			&inv.Email,
			&inv.Role,
			&inv.Token,
			&inv.Status,
			&inv.InvitedBy,
			&inv.ExpiresAt,
			&inv.AcceptedAt,
			&inv.CreatedAt,
			&inv.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}

	return invitations, rows.Err()
}

// UpdateStatus transitions an invitation to a new status
func (r *PostgresInvitationRepository) UpdateStatus(ctx context.Context, id, status string, acceptedAt *time.Time) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE invitations SET status = $2, accepted_at = $3, updated_at = $4 WHERE id = $1`,
		id, status, acceptedAt, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("invitation not found")
	}
	return nil
}

// ExistsPendingByEmail checks if a pending invitation already exists for an email
func (r *PostgresInvitationRepository) ExistsPendingByEmail(ctx context.Context, tenantID, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM invitations WHERE tenant_id = $1 AND email = $2 AND status = $3)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, tenantID, email, domain.InvitationStatusPending).Scan(&exists)
	return exists, err
}
