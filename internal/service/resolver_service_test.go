package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
)

// fakeTenantRepo is an in-memory TenantRepository for resolver tests
type fakeTenantRepo struct {
	bySlug         map[string]*domain.Tenant
	byCustomDomain map[string]*domain.Tenant
	err            error

	slugCalls   int
	domainCalls int
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{
		bySlug:         make(map[string]*domain.Tenant),
		byCustomDomain: make(map[string]*domain.Tenant),
	}
}

func (f *fakeTenantRepo) add(t *domain.Tenant) {
	f.bySlug[t.Slug] = t
	if t.CustomDomain != "" {
		f.byCustomDomain[t.CustomDomain] = t
	}
}

func (f *fakeTenantRepo) Create(ctx context.Context, t *domain.Tenant) error { return nil }

func (f *fakeTenantRepo) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	for _, t := range f.bySlug {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTenantRepo) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	f.slugCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.bySlug[slug], nil
}

func (f *fakeTenantRepo) GetByCustomDomain(ctx context.Context, domainName string) (*domain.Tenant, error) {
	f.domainCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byCustomDomain[domainName], nil
}

func (f *fakeTenantRepo) List(ctx context.Context, page, limit int, isActive *bool, search string) ([]*domain.Tenant, int, error) {
	return nil, 0, nil
}

func (f *fakeTenantRepo) Update(ctx context.Context, t *domain.Tenant) error { return nil }

func (f *fakeTenantRepo) SoftDelete(ctx context.Context, id string) error { return nil }

func (f *fakeTenantRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	_, ok := f.bySlug[slug]
	return ok, nil
}

func (f *fakeTenantRepo) ExistsByCustomDomain(ctx context.Context, domainName, excludeID string) (bool, error) {
	t, ok := f.byCustomDomain[domainName]
	if !ok || t.ID == excludeID {
		return false, nil
	}
	return true, nil
}

func TestResolverService_ResolveHost(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.add(&domain.Tenant{ID: "t1", Name: "Acme Imoveis", Slug: "acme", IsActive: true})
	repo.add(&domain.Tenant{ID: "t2", Name: "Beta Motors", Slug: "beta", CustomDomain: "betamotors.com.br", IsActive: true})

	resolver := NewResolverService(repo, nil, "crmlax.local", 0)
	ctx := context.Background()

	tests := []struct {
		name   string
		host   string
		wantID string
	}{
		{"custom domain", "betamotors.com.br", "t2"},
		{"subdomain of root domain", "acme.crmlax.local", "t1"},
		{"subdomain with port", "acme.crmlax.local:8080", "t1"},
		{"uppercase host", "ACME.CRMLAX.LOCAL", "t1"},
		{"trailing dot", "acme.crmlax.local.", "t1"},
		{"unknown subdomain", "ghost.crmlax.local", ""},
		{"wrong root domain", "acme.other.local", ""},
		{"bare root domain", "crmlax.local", ""},
		{"reserved www", "www.crmlax.local", ""},
		{"reserved app", "app.crmlax.local", ""},
		{"unknown custom domain", "nobody.example.com", ""},
		{"empty host", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenant, err := resolver.ResolveHost(ctx, tt.host)
			if err != nil {
				t.Fatalf("ResolveHost(%q) returned error: %v", tt.host, err)
			}
			if tt.wantID == "" {
				if tenant != nil {
					t.Errorf("ResolveHost(%q) = %v, want nil", tt.host, tenant)
				}
				return
			}
			if tenant == nil {
				t.Fatalf("ResolveHost(%q) = nil, want tenant %s", tt.host, tt.wantID)
			}
			if tenant.ID != tt.wantID {
				t.Errorf("ResolveHost(%q) = %s, want %s", tt.host, tenant.ID, tt.wantID)
			}
		})
	}
}

func TestResolverService_CustomDomainTakesPrecedence(t *testing.T) {
	// A custom domain that happens to look like a subdomain of the root
	// domain resolves by custom domain, not by slug.
	repo := newFakeTenantRepo()
	repo.add(&domain.Tenant{ID: "t1", Slug: "acme", IsActive: true})
	repo.add(&domain.Tenant{ID: "t2", Slug: "other", CustomDomain: "acme.crmlax.local", IsActive: true})

	resolver := NewResolverService(repo, nil, "crmlax.local", 0)

	tenant, err := resolver.ResolveHost(context.Background(), "acme.crmlax.local")
	if err != nil {
		t.Fatalf("ResolveHost returned error: %v", err)
	}
	if tenant == nil || tenant.ID != "t2" {
		t.Errorf("expected custom domain owner t2, got %+v", tenant)
	}
}

func TestResolverService_NotFoundIsNotAnError(t *testing.T) {
	resolver := NewResolverService(newFakeTenantRepo(), nil, "crmlax.local", 0)

	tenant, err := resolver.ResolveHost(context.Background(), "unknown.crmlax.local")
	if err != nil {
		t.Fatalf("expected nil error for unresolved host, got %v", err)
	}
	if tenant != nil {
		t.Errorf("expected nil tenant, got %+v", tenant)
	}
}

func TestResolverService_RepositoryError(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.err = errors.New("connection refused")

	resolver := NewResolverService(repo, nil, "crmlax.local", 0)

	_, err := resolver.ResolveHost(context.Background(), "acme.crmlax.local")
	if err == nil {
		t.Error("expected repository error to propagate")
	}
}

func TestResolverService_SkipsSlugLookupForCustomDomain(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.add(&domain.Tenant{ID: "t2", Slug: "beta", CustomDomain: "betamotors.com.br", IsActive: true})

	resolver := NewResolverService(repo, nil, "crmlax.local", 30*time.Second)

	if _, err := resolver.ResolveHost(context.Background(), "betamotors.com.br"); err != nil {
		t.Fatalf("ResolveHost returned error: %v", err)
	}
	if repo.slugCalls != 0 {
		t.Errorf("expected no slug lookup for a custom domain hit, got %d", repo.slugCalls)
	}
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Example.COM", "example.com"},
		{"example.com:8080", "example.com"},
		{"  example.com ", "example.com"},
		{"example.com.", "example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeHost(tt.input); got != tt.expected {
			t.Errorf("normalizeHost(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSplitFirstLabel(t *testing.T) {
	tests := []struct {
		host      string
		label     string
		remainder string
		ok        bool
	}{
		{"acme.crmlax.local", "acme", "crmlax.local", true},
		{"a.b", "a", "b", true},
		{"nodots", "", "", false},
		{".leading", "", "", false},
		{"trailing.", "", "", false},
	}

	for _, tt := range tests {
		label, remainder, ok := splitFirstLabel(tt.host)
		if label != tt.label || remainder != tt.remainder || ok != tt.ok {
			t.Errorf("splitFirstLabel(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.host, label, remainder, ok, tt.label, tt.remainder, tt.ok)
		}
	}
}
