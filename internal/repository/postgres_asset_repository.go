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

// PostgresAssetRepository implements AssetRepository using PostgreSQL
type PostgresAssetRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAssetRepository creates a new PostgresAssetRepository
func NewPostgresAssetRepository(pool *pgxpool.Pool) *PostgresAssetRepository {
	return &PostgresAssetRepository{pool: pool}
}

const assetColumns = `id, tenant_id, title, COALESCE(description, '') as description,
	kind, price, COALESCE(city, '') as city, status,
	COALESCE(image_urls, '{}') as image_urls, is_published,
	COALESCE(metadata, '{}'::jsonb) as metadata, created_at, updated_at, deleted_at`

func scanAsset(row pgx.Row) (*domain.Asset, error) {
	asset := &domain.Asset{}
	err := row.Scan(
		&asset.ID,
		&asset.TenantID,
		&asset.Title,
		&asset.Description,
		&asset.Kind,
		&asset.Price,
		&asset.City,
		&asset.Status,
		&asset.ImageURLs,
		&asset.IsPublished,
		&asset.Metadata,
		&asset.CreatedAt,
		&asset.UpdatedAt,
		&asset.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return asset, nil
}

// Create creates a new asset
func (r *PostgresAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	query := `
		INSERT INTO assets (id, tenant_id, title, description, kind, price, city, status,
			image_urls, is_published, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		asset.ID,
		asset.TenantID,
		asset.Title,
		nullStringOrValue(asset.Description),
		asset.Kind,
		asset.Price,
		nullStringOrValue(asset.City),
		asset.Status,
		asset.ImageURLs,
		asset.IsPublished,
		asset.Metadata,
		asset.CreatedAt,
		asset.UpdatedAt,
	)
	return err
}

// GetByID retrieves an asset by ID within a tenant
func (r *PostgresAssetRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Asset, error) {
	query := fmt.Sprintf(`SELECT %s FROM assets WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`, assetColumns)
	return scanAsset(r.pool.QueryRow(ctx, query, tenantID, id))
}

// List retrieves assets with pagination and filters
func (r *PostgresAssetRepository) List(ctx context.Context, tenantID string, filter AssetFilter) ([]*domain.Asset, int, error) {
	whereClause := "WHERE tenant_id = $1 AND deleted_at IS NULL"
	args := []interface{}{tenantID}
	argIndex := 2

	if filter.Kind != "" {
		whereClause += fmt.Sprintf(" AND kind = $%d", argIndex)
		args = append(args, filter.Kind)
		argIndex++
	}

	if filter.Status != "" {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.City != "" {
		whereClause += fmt.Sprintf(" AND city ILIKE $%d", argIndex)
		args = append(args, filter.City)
		argIndex++
	}

	if filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	if filter.OnlyPublic {
		whereClause += " AND is_published = true AND status = 'available'"
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM assets %s", whereClause)
	var totalCount int
	err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount)
	if err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM assets
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, assetColumns, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	assets := make([]*domain.Asset, 0)
	for rows.Next() {
		asset := &domain.Asset{}
		err := rows.Scan(
			&asset.ID,
			&asset.TenantID,
			&asset.Title,
			&asset.Description,
			&asset.Kind,
			&asset.Price,
			&asset.City,
			&asset.Status,
			&asset.ImageURLs,
			&asset.IsPublished,
			&asset.Metadata,
			&asset.CreatedAt,
			&asset.UpdatedAt,
			&asset.DeletedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		assets = append(assets, asset)
	}

	return assets, totalCount, nil
}

// Update updates an asset
func (r *PostgresAssetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	query := `
		UPDATE assets
		SET title = $3, description = $4, kind = $5, price = $6, city = $7, status = $8,
			image_urls = $9, is_published = $10, metadata = $11, updated_at = $12
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	asset.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		asset.TenantID,
		asset.ID,
		asset.Title,
		nullStringOrValue(asset.Description),
		asset.Kind,
		asset.Price,
		nullStringOrValue(asset.City),
		asset.Status,
		asset.ImageURLs,
		asset.IsPublished,
		asset.Metadata,
		asset.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("asset not found or already deleted")
	}

	return nil
}

// SoftDelete soft deletes an asset
func (r *PostgresAssetRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE assets SET deleted_at = $3 WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`,
		tenantID, id, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("asset not found or already deleted")
	}
	return nil
}
