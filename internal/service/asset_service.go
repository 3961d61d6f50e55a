package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
	"github.com/laxautomacoes/crmLAX-sub001/internal/dto"
	"github.com/laxautomacoes/crmLAX-sub001/internal/repository"
)

var ErrAssetNotFound = errors.New("asset not found")

// AssetService defines the interface for storefront asset operations
type AssetService interface {
	// Create adds a listing to the tenant's inventory
	Create(ctx context.Context, tenantID string, req *dto.CreateAssetRequest) (*dto.AssetResponse, error)
	// GetByID retrieves an asset by ID
	GetByID(ctx context.Context, tenantID, id string) (*dto.AssetResponse, error)
	// List retrieves assets with pagination and filters
	List(ctx context.Context, tenantID string, query *dto.ListAssetsQuery) (*dto.ListAssetsResponse, error)
	// Update updates an asset
	Update(ctx context.Context, tenantID, id string, req *dto.UpdateAssetRequest) (*dto.AssetResponse, error)
	// Delete soft deletes an asset
	Delete(ctx context.Context, tenantID, id string) error
	// Storefront builds the public view for a tenant: branding plus
	// published, available listings only
	Storefront(ctx context.Context, tenant *domain.Tenant, query *dto.ListAssetsQuery) (*dto.StorefrontResponse, error)
	// PublicGetByID retrieves a single asset for the storefront; assets
	// that are unpublished or no longer available read as not found
	PublicGetByID(ctx context.Context, tenantID, id string) (*dto.AssetResponse, error)
}

// assetService implements AssetService
type assetService struct {
	assetRepo repository.AssetRepository
}

// NewAssetService creates a new AssetService
func NewAssetService(assetRepo repository.AssetRepository) AssetService {
	return &assetService{assetRepo: assetRepo}
}

// Create adds a listing to the tenant's inventory
func (s *assetService) Create(ctx context.Context, tenantID string, req *dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	now := time.Now()
	asset := &domain.Asset{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
		Kind:        req.Kind,
		Price:       req.Price,
		City:        req.City,
		Status:      domain.AssetStatusAvailable,
		ImageURLs:   req.ImageURLs,
		IsPublished: req.IsPublished,
		Metadata:    req.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}
	return s.toAssetResponse(asset), nil
}

// GetByID retrieves an asset by ID
func (s *assetService) GetByID(ctx context.Context, tenantID, id string) (*dto.AssetResponse, error) {
	asset, err := s.assetRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrAssetNotFound
	}
	return s.toAssetResponse(asset), nil
}

// List retrieves assets with pagination and filters
func (s *assetService) List(ctx context.Context, tenantID string, query *dto.ListAssetsQuery) (*dto.ListAssetsResponse, error) {
	query.SetDefaults()

	assets, totalCount, err := s.assetRepo.List(ctx, tenantID, repository.AssetFilter{
		Kind:   query.Kind,
		Status: query.Status,
		City:   query.City,
		Search: query.Search,
		Page:   query.Page,
		Limit:  query.Limit,
	})
	if err != nil {
		return nil, err
	}

	return s.toListResponse(assets, totalCount, query), nil
}

// Update updates an asset
func (s *assetService) Update(ctx context.Context, tenantID, id string, req *dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	if valid, errMsg := req.Validate(); !valid {
		return nil, errors.New(errMsg)
	}

	asset, err := s.assetRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrAssetNotFound
	}

	if req.Title != nil {
		asset.Title = *req.Title
	}
	if req.Description != nil {
		asset.Description = *req.Description
	}
	if req.Price != nil {
		asset.Price = *req.Price
	}
	if req.City != nil {
		asset.City = *req.City
	}
	if req.Status != nil {
		asset.Status = *req.Status
	}
	if req.ImageURLs != nil {
		asset.ImageURLs = *req.ImageURLs
	}
	if req.IsPublished != nil {
		asset.IsPublished = *req.IsPublished
	}
	if req.Metadata != nil {
		asset.Metadata = *req.Metadata
	}

	asset.UpdatedAt = time.Now()
	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}
	return s.toAssetResponse(asset), nil
}

// Delete soft deletes an asset
func (s *assetService) Delete(ctx context.Context, tenantID, id string) error {
	asset, err := s.assetRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if asset == nil {
		return ErrAssetNotFound
	}
	return s.assetRepo.SoftDelete(ctx, tenantID, id)
}

// Storefront builds the public view for a tenant
func (s *assetService) Storefront(ctx context.Context, tenant *domain.Tenant, query *dto.ListAssetsQuery) (*dto.StorefrontResponse, error) {
	query.SetDefaults()

	assets, totalCount, err := s.assetRepo.List(ctx, tenant.ID, repository.AssetFilter{
		Kind:       query.Kind,
		City:       query.City,
		Search:     query.Search,
		OnlyPublic: true,
		Page:       query.Page,
		Limit:      query.Limit,
	})
	if err != nil {
		return nil, err
	}

	assetResponses := make([]dto.AssetResponse, 0, len(assets))
	for _, asset := range assets {
		assetResponses = append(assetResponses, *s.toAssetResponse(asset))
	}

	return &dto.StorefrontResponse{
		TenantName: tenant.Name,
		LogoURL:    tenant.LogoURL,
		Branding:   tenant.Branding,
		Assets:     assetResponses,
		TotalCount: totalCount,
	}, nil
}

// PublicGetByID retrieves a single asset for the storefront
func (s *assetService) PublicGetByID(ctx context.Context, tenantID, id string) (*dto.AssetResponse, error) {
	asset, err := s.assetRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if asset == nil || !asset.IsPubliclyVisible() {
		return nil, ErrAssetNotFound
	}
	return s.toAssetResponse(asset), nil
}

func (s *assetService) toListResponse(assets []*domain.Asset, totalCount int, query *dto.ListAssetsQuery) *dto.ListAssetsResponse {
	assetResponses := make([]dto.AssetResponse, 0, len(assets))
	for _, asset := range assets {
		assetResponses = append(assetResponses, *s.toAssetResponse(asset))
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &dto.ListAssetsResponse{
		Assets:     assetResponses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}
}

// toAssetResponse converts domain.Asset to dto.AssetResponse
func (s *assetService) toAssetResponse(asset *domain.Asset) *dto.AssetResponse {
	return &dto.AssetResponse{
		ID:          asset.ID,
		TenantID:    asset.TenantID,
		Title:       asset.Title,
		Description: asset.Description,
		Kind:        asset.Kind,
		Price:       asset.Price,
		City:        asset.City,
		Status:      asset.Status,
		ImageURLs:   asset.ImageURLs,
		IsPublished: asset.IsPublished,
		Metadata:    asset.Metadata,
		CreatedAt:   asset.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   asset.UpdatedAt.Format(time.RFC3339),
	}
}
