package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
)

// PostgresNotificationRepository implements NotificationRepository using PostgreSQL
type PostgresNotificationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(pool *pgxpool.Pool) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{pool: pool}
}

// Create creates a new notification
func (r *PostgresNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, tenant_id, profile_id, kind, title, body, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		n.ID,
		n.TenantID,
		n.ProfileID,
		n.Kind,
		n.Title,
		n.Body,
		n.IsRead,
		n.CreatedAt,
	)
	return err
}

// ListByProfile retrieves notifications for a profile, newest first
func (r *PostgresNotificationRepository) ListByProfile(ctx context.Context, tenantID, profileID string, unreadOnly bool) ([]*domain.Notification, error) {
	query := `
		SELECT id, tenant_id, profile_id, kind, title, body, is_read, created_at
		FROM notifications
		WHERE tenant_id = $1 AND profile_id = $2
	`
	if unreadOnly {
		query += " AND is_read = false"
	}
	query += " ORDER BY created_at DESC LIMIT 100"

	rows, err := r.pool.Query(ctx, query, tenantID, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		err := rows.Scan(
			&n.ID,
			&n.TenantID,
			&n.ProfileID,
			&n.Kind,
			&n.Title,
			&n.Body,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkRead marks a notification as read
func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, tenantID, id string) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

// PostgresMessageRepository implements MessageRepository using PostgreSQL
type PostgresMessageRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(pool *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{pool: pool}
}

// Create stores a WhatsApp message
func (r *PostgresMessageRepository) Create(ctx context.Context, m *domain.WhatsAppMessage) error {
	query := `
		INSERT INTO whatsapp_messages (id, tenant_id, lead_id, instance_id, phone, direction, body, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.TenantID,
		m.LeadID,
		m.InstanceID,
		m.Phone,
		m.Direction,
		m.Body,
		m.SentAt,
		m.CreatedAt,
	)
	return err
}

// ListByLead retrieves the message history of a lead, oldest first
func (r *PostgresMessageRepository) ListByLead(ctx context.Context, tenantID, leadID string) ([]*domain.WhatsAppMessage, error) {
	query := `
		SELECT id, tenant_id, lead_id, instance_id, phone, direction, body, sent_at, created_at
		FROM whatsapp_messages
		WHERE tenant_id = $1 AND lead_id = $2
		ORDER BY sent_at ASC
	`
	rows, err := r.pool.Query(ctx, query, tenantID, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]*domain.WhatsAppMessage, 0)
	for rows.Next() {
		m := &domain.WhatsAppMessage{}
		err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.LeadID,
			&m.InstanceID,
			&m.Phone,
			&m.Direction,
			&m.Body,
			&m.SentAt,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
