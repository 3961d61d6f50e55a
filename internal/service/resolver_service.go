package service

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
	"github.com/laxautomacoes/crmLAX-sub001/internal/repository"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/logger"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/redis"
)

const tenantCacheKeyPrefix = "tenant:host:"

// ResolverService maps an incoming request host to the tenant it belongs to.
//
// Resolution order:
//  1. Exact match against a tenant's custom domain.
//  2. Subdomain match: the first label is treated as a tenant slug when the
//     remaining labels equal the configured root domain and the label is not
//     reserved (www, app).
//
// A host that matches neither rule resolves to (nil, nil): not found is a
// routing outcome, not an error.
type ResolverService interface {
	// ResolveHost resolves a request host (optionally with port) to a tenant.
	ResolveHost(ctx context.Context, host string) (*domain.Tenant, error)
	// InvalidateHost drops any cached resolution for the given host.
	InvalidateHost(ctx context.Context, host string) error
}

type resolverService struct {
	tenantRepo repository.TenantRepository
	cache      *redis.Client
	rootDomain string
	cacheTTL   time.Duration
}

// NewResolverService creates a new ResolverService. The cache client is
// optional; pass nil to resolve against the database on every request.
func NewResolverService(tenantRepo repository.TenantRepository, cache *redis.Client, rootDomain string, cacheTTL time.Duration) ResolverService {
	return &resolverService{
		tenantRepo: tenantRepo,
		cache:      cache,
		rootDomain: strings.ToLower(strings.TrimSuffix(rootDomain, ".")),
		cacheTTL:   cacheTTL,
	}
}

// ResolveHost resolves a request host (optionally with port) to a tenant
func (s *resolverService) ResolveHost(ctx context.Context, host string) (*domain.Tenant, error) {
	normalized := normalizeHost(host)
	if normalized == "" {
		return nil, nil
	}

	if tenant, ok := s.cacheGet(ctx, normalized); ok {
		return tenant, nil
	}

	tenant, err := s.resolve(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if tenant != nil {
		s.cacheSet(ctx, normalized, tenant)
	}
	return tenant, nil
}

func (s *resolverService) resolve(ctx context.Context, host string) (*domain.Tenant, error) {
	// Custom domains take precedence over subdomain resolution, so an
	// agency can point its own domain at the platform without the root
	// domain being involved at all.
	tenant, err := s.tenantRepo.GetByCustomDomain(ctx, host)
	if err != nil {
		return nil, err
	}
	if tenant != nil {
		return tenant, nil
	}

	label, remainder, ok := splitFirstLabel(host)
	if !ok {
		return nil, nil
	}
	if remainder != s.rootDomain {
		return nil, nil
	}
	if domain.IsReservedLabel(label) {
		return nil, nil
	}

	return s.tenantRepo.GetBySlug(ctx, label)
}

// InvalidateHost drops any cached resolution for the given host
func (s *resolverService) InvalidateHost(ctx context.Context, host string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, tenantCacheKeyPrefix+normalizeHost(host))
}

func (s *resolverService) cacheGet(ctx context.Context, host string) (*domain.Tenant, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil, false
	}

	raw, found, err := s.cache.GetString(ctx, tenantCacheKeyPrefix+host)
	if err != nil {
		logger.WarnCtx(ctx, "tenant cache read failed", zap.String("host", host), zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	var tenant domain.Tenant
	if err := json.Unmarshal([]byte(raw), &tenant); err != nil {
		logger.WarnCtx(ctx, "tenant cache entry corrupted", zap.String("host", host), zap.Error(err))
		return nil, false
	}
	return &tenant, true
}

func (s *resolverService) cacheSet(ctx context.Context, host string, tenant *domain.Tenant) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(tenant)
	if err != nil {
		return
	}
	if err := s.cache.SetString(ctx, tenantCacheKeyPrefix+host, string(raw), s.cacheTTL); err != nil {
		logger.WarnCtx(ctx, "tenant cache write failed", zap.String("host", host), zap.Error(err))
	}
}

// normalizeHost lowercases the host and strips an optional port suffix.
func normalizeHost(host string) string {
	host = strings.TrimSpace(strings.ToLower(host))
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(host, ".")
}

// splitFirstLabel splits "slug.example.com" into ("slug", "example.com").
// Returns ok=false when the host has no subdomain label.
func splitFirstLabel(host string) (label, remainder string, ok bool) {
	idx := strings.Index(host, ".")
	if idx <= 0 || idx == len(host)-1 {
		return "", "", false
	}
	return host[:idx], host[idx+1:], true
}
