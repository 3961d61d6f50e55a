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

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

const eventColumns = `id, tenant_id, profile_id, lead_id, asset_id, title,
	COALESCE(description, '') as description, start_time, end_time, event_type,
	reminder_sent, COALESCE(metadata, '{}'::jsonb) as metadata, created_at, updated_at`

func scanEvent(row pgx.Row) (*domain.CalendarEvent, error) {
	event := &domain.CalendarEvent{}
	err := row.Scan(
		&event.ID,
		&event.TenantID,
		&event.ProfileID,
		&event.LeadID,
		&event.AssetID,
		&event.Title,
		&event.Description,
		&event.StartTime,
		&event.EndTime,
		&event.EventType,
		&event.ReminderSent,
		&event.Metadata,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// Create creates a new calendar event
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (id, tenant_id, profile_id, lead_id, asset_id, title, description,
			start_time, end_time, event_type, reminder_sent, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.TenantID,
		event.ProfileID,
		event.LeadID,
		event.AssetID,
		event.Title,
		nullStringOrValue(event.Description),
		event.StartTime,
		event.EndTime,
		event.EventType,
		event.ReminderSent,
		event.Metadata,
		event.CreatedAt,
		event.UpdatedAt,
	)
	return err
}

// GetByID retrieves an event by ID within a tenant
func (r *PostgresEventRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.CalendarEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM calendar_events WHERE tenant_id = $1 AND id = $2`, eventColumns)
	return scanEvent(r.pool.QueryRow(ctx, query, tenantID, id))
}

// ListByRange retrieves events overlapping [from, to), optionally for one profile
func (r *PostgresEventRepository) ListByRange(ctx context.Context, tenantID, profileID string, from, to time.Time) ([]*domain.CalendarEvent, error) {
	args := []interface{}{tenantID, from, to}
	query := fmt.Sprintf(`
		SELECT %s FROM calendar_events
		WHERE tenant_id = $1 AND start_time >= $2 AND start_time < $3
	`, eventColumns)

	if profileID != "" {
		query += " AND profile_id = $4"
		args = append(args, profileID)
	}
	query += " ORDER BY start_time ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

// Update updates an event. Rescheduling start_time resets reminder_sent so the
// moved event is re-evaluated by the reminder sweep.
func (r *PostgresEventRepository) Update(ctx context.Context, event *domain.CalendarEvent) error {
	query := `
		UPDATE calendar_events
		SET title = $3, description = $4, lead_id = $5, asset_id = $6,
			start_time = $7, end_time = $8, event_type = $9,
			reminder_sent = $10, metadata = $11, updated_at = $12
		WHERE tenant_id = $1 AND id = $2
	`
	event.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		event.TenantID,
		event.ID,
		event.Title,
		nullStringOrValue(event.Description),
		event.LeadID,
		event.AssetID,
		event.StartTime,
		event.EndTime,
		event.EventType,
		event.ReminderSent,
		event.Metadata,
		event.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event not found")
	}

	return nil
}

// Delete removes an event
func (r *PostgresEventRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM calendar_events WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("event not found")
	}
	return nil
}

// DueForReminder selects events whose start_time is strictly in the future and
// no later than now+window, and whose reminder has not been sent.
// The lower bound is strict and the upper bound inclusive.
func (r *PostgresEventRepository) DueForReminder(ctx context.Context, now time.Time, window time.Duration) ([]*domain.CalendarEvent, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM calendar_events
		WHERE reminder_sent = false
		  AND start_time > $1
		  AND start_time <= $2
		ORDER BY start_time ASC
	`, eventColumns)

	rows, err := r.pool.Query(ctx, query, now, now.Add(window))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ClaimReminder atomically flips reminder_sent false->true for one event.
// The row count tells whether this caller won the claim; a concurrent sweep
// that raced on the same event loses and must skip it.
func (r *PostgresEventRepository) ClaimReminder(ctx context.Context, id string) (bool, error) {
	result, err := r.pool.Exec(ctx,
		`UPDATE calendar_events SET reminder_sent = true, updated_at = $2 WHERE id = $1 AND reminder_sent = false`,
		id, time.Now(),
	)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

// ReleaseReminder reverts a claim after a failed notification
func (r *PostgresEventRepository) ReleaseReminder(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE calendar_events SET reminder_sent = false, updated_at = $2 WHERE id = $1`,
		id, time.Now(),
	)
	return err
}

func collectEvents(rows pgx.Rows) ([]*domain.CalendarEvent, error) {
	events := make([]*domain.CalendarEvent, 0)
	for rows.Next() {
		event := &domain.CalendarEvent{}
		err := rows.Scan(
			&event.ID,
			&event.TenantID,
			&event.ProfileID,
			&event.LeadID,
			&event.AssetID,
			&event.Title,
			&event.Description,
			&event.StartTime,
			&event.EndTime,
			&event.EventType,
			&event.ReminderSent,
			&event.Metadata,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
