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

var (
	ErrTenantAlreadyExists = errors.New("tenant with this slug already exists")
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrDomainTaken         = errors.New("custom domain already in use by another tenant")
	ErrReservedSlug        = errors.New("slug is reserved by the platform")
)

// TenantService defines the interface for tenant management operations
type TenantService interface {
	// Create creates a new tenant (agency)
	Create(ctx context.Context, req *dto.CreateTenantRequest) (*dto.TenantResponse, error)
	// GetByID retrieves a tenant by ID
	GetByID(ctx context.Context, id string) (*dto.TenantResponse, error)
	// GetBySlug retrieves a tenant by slug
	GetBySlug(ctx context.Context, slug string) (*dto.TenantResponse, error)
	// List retrieves tenants with pagination and filters
	List(ctx context.Context, query *dto.ListTenantsQuery) (*dto.ListTenantsResponse, error)
	// Update updates a tenant
	Update(ctx context.Context, id string, req *dto.UpdateTenantRequest) (*dto.TenantResponse, error)
	// Delete soft deletes a tenant
	Delete(ctx context.Context, id string) error
}

// tenantService implements TenantService
type tenantService struct {
	tenantRepo repository.TenantRepository
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo repository.TenantRepository) TenantService {
	return &tenantService{
		tenantRepo: tenantRepo,
	}
}

// Create creates a new tenant (agency)
func (s *tenantService) Create(ctx context.Context, req *dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	// Validate slug format
	if valid, errMsg := req.ValidateSlug(); !valid {
		return nil, errors.New(errMsg)
	}

	// Reserved labels would shadow platform hosts in subdomain resolution
	if domain.IsReservedLabel(req.Slug) {
		return nil, ErrReservedSlug
	}

	// Check if tenant with this slug already exists
	exists, err := s.tenantRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTenantAlreadyExists
	}

	// Custom domains must be unique across tenants
	if req.CustomDomain != "" {
		taken, err := s.tenantRepo.ExistsByCustomDomain(ctx, req.CustomDomain, "")
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDomainTaken
		}
	}

	now := time.Now()
	tenant := &domain.Tenant{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Slug:         req.Slug,
		CustomDomain: req.CustomDomain,
		LogoURL:      req.LogoURL,
		Branding:     req.Branding,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if tenant.Branding == nil {
		tenant.Branding = make(map[string]interface{})
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	return s.toTenantResponse(tenant), nil
}

// GetByID retrieves a tenant by ID
func (s *tenantService) GetByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	return s.toTenantResponse(tenant), nil
}

// GetBySlug retrieves a tenant by slug
func (s *tenantService) GetBySlug(ctx context.Context, slug string) (*dto.TenantResponse, error) {
	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	return s.toTenantResponse(tenant), nil
}

// List retrieves tenants with pagination and filters
func (s *tenantService) List(ctx context.Context, query *dto.ListTenantsQuery) (*dto.ListTenantsResponse, error) {
	query.SetDefaults()

	tenants, totalCount, err := s.tenantRepo.List(ctx, query.Page, query.Limit, query.IsActive, query.Search)
	if err != nil {
		return nil, err
	}

	tenantResponses := make([]dto.TenantResponse, 0, len(tenants))
	for _, tenant := range tenants {
		tenantResponses = append(tenantResponses, *s.toTenantResponse(tenant))
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &dto.ListTenantsResponse{
		Tenants:    tenantResponses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

// Update updates a tenant
func (s *tenantService) Update(ctx context.Context, id string, req *dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	if valid, errMsg := req.Validate(); !valid {
		return nil, errors.New(errMsg)
	}

	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.CustomDomain != nil {
		if *req.CustomDomain != "" {
			taken, err := s.tenantRepo.ExistsByCustomDomain(ctx, *req.CustomDomain, tenant.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrDomainTaken
			}
		}
		tenant.CustomDomain = *req.CustomDomain
	}
	if req.LogoURL != nil {
		tenant.LogoURL = *req.LogoURL
	}
	if req.Branding != nil {
		tenant.Branding = *req.Branding
	}
	if req.IsActive != nil {
		tenant.IsActive = *req.IsActive
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	return s.toTenantResponse(tenant), nil
}

// Delete soft deletes a tenant
func (s *tenantService) Delete(ctx context.Context, id string) error {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant == nil {
		return ErrTenantNotFound
	}

	return s.tenantRepo.SoftDelete(ctx, id)
}

// toTenantResponse converts domain.Tenant to dto.TenantResponse
func (s *tenantService) toTenantResponse(tenant *domain.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:           tenant.ID,
		Name:         tenant.Name,
		Slug:         tenant.Slug,
		CustomDomain: tenant.CustomDomain,
		LogoURL:      tenant.LogoURL,
		Branding:     tenant.Branding,
		IsActive:     tenant.IsActive,
		CreatedAt:    tenant.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    tenant.UpdatedAt.Format(time.RFC3339),
	}
}
