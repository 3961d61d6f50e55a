package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
	"github.com/laxautomacoes/crmLAX-sub001/internal/dto"
	"github.com/laxautomacoes/crmLAX-sub001/internal/service"
)

// stubTenantService serves a single canned tenant
type stubTenantService struct {
	tenant *dto.TenantResponse
}

func (s *stubTenantService) Create(ctx context.Context, req *dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	return s.tenant, nil
}

func (s *stubTenantService) GetByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	if s.tenant == nil || s.tenant.ID != id {
		return nil, service.ErrTenantNotFound
	}
	cp := *s.tenant
	return &cp, nil
}

func (s *stubTenantService) GetBySlug(ctx context.Context, slug string) (*dto.TenantResponse, error) {
	return s.tenant, nil
}

func (s *stubTenantService) List(ctx context.Context, query *dto.ListTenantsQuery) (*dto.ListTenantsResponse, error) {
	return &dto.ListTenantsResponse{}, nil
}

func (s *stubTenantService) Update(ctx context.Context, id string, req *dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	if req.CustomDomain != nil {
		s.tenant.CustomDomain = *req.CustomDomain
	}
	return s.tenant, nil
}

func (s *stubTenantService) Delete(ctx context.Context, id string) error {
	return nil
}

// spyResolver records which hosts were invalidated
type spyResolver struct {
	invalidated []string
}

func (s *spyResolver) ResolveHost(ctx context.Context, host string) (*domain.Tenant, error) {
	return nil, nil
}

func (s *spyResolver) InvalidateHost(ctx context.Context, host string) error {
	s.invalidated = append(s.invalidated, host)
	return nil
}

func (s *spyResolver) sawHost(host string) bool {
	for _, h := range s.invalidated {
		if h == host {
			return true
		}
	}
	return false
}

func setupTenantRouter(svc service.TenantService, resolver service.ResolverService) *gin.Engine {
	router := gin.New()
	h := NewTenantHandler(svc, resolver, "crmlax.com.br")
	router.PUT("/api/v1/tenants/:id", h.Update)
	router.DELETE("/api/v1/tenants/:id", h.Delete)
	return router
}

func TestTenantHandler_Update_InvalidatesResolverCache(t *testing.T) {
	svc := &stubTenantService{tenant: &dto.TenantResponse{
		ID: "tenant-1", Slug: "acme", CustomDomain: "imoveis.acme.com.br",
	}}
	resolver := &spyResolver{}
	router := setupTenantRouter(svc, resolver)

	body := `{"custom_domain": "portal.acme.com.br"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/tenants/tenant-1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	for _, host := range []string{"imoveis.acme.com.br", "portal.acme.com.br", "acme.crmlax.com.br"} {
		if !resolver.sawHost(host) {
			t.Errorf("host %s was not invalidated, got %v", host, resolver.invalidated)
		}
	}
}

func TestTenantHandler_Delete_InvalidatesResolverCache(t *testing.T) {
	svc := &stubTenantService{tenant: &dto.TenantResponse{
		ID: "tenant-1", Slug: "acme", CustomDomain: "imoveis.acme.com.br",
	}}
	resolver := &spyResolver{}
	router := setupTenantRouter(svc, resolver)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/tenants/tenant-1", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	for _, host := range []string{"imoveis.acme.com.br", "acme.crmlax.com.br"} {
		if !resolver.sawHost(host) {
			t.Errorf("host %s was not invalidated, got %v", host, resolver.invalidated)
		}
	}
}
