package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
	"github.com/laxautomacoes/crmLAX-sub001/internal/service"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/logger"
	pkgmiddleware "github.com/laxautomacoes/crmLAX-sub001/pkg/middleware"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/response"
)

// Context keys set by tenant resolution
const (
	ContextKeyTenant     = "tenant"
	ContextKeyTenantID   = "tenant_id"
	ContextKeyTenantSlug = "tenant_slug"
)

// Response headers exposing the resolved tenant
const (
	HeaderTenantID   = "x-tenant-id"
	HeaderTenantSlug = "x-tenant-slug"
)

// TenantResolver resolves the request host to a tenant and stores it in the
// gin context. Requests whose host maps to no tenant are rejected with 404;
// inactive tenants get 403.
func TenantResolver(resolver service.ResolverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, err := resolver.ResolveHost(c.Request.Context(), c.Request.Host)
		if err != nil {
			logger.ErrorCtx(c.Request.Context(), "tenant resolution failed",
				zap.String("host", c.Request.Host), zap.Error(err))
			c.JSON(http.StatusInternalServerError, response.InternalError("Failed to resolve tenant"))
			c.Abort()
			return
		}
		if tenant == nil {
			c.JSON(http.StatusNotFound, response.NotFound("No agency is registered for this address"))
			c.Abort()
			return
		}
		if !tenant.IsActive {
			c.JSON(http.StatusForbidden, response.Forbidden("This agency is deactivated"))
			c.Abort()
			return
		}

		c.Set(ContextKeyTenant, tenant)
		c.Set(ContextKeyTenantID, tenant.ID)
		c.Set(ContextKeyTenantSlug, tenant.Slug)
		c.Header(HeaderTenantID, tenant.ID)
		c.Header(HeaderTenantSlug, tenant.Slug)

		c.Next()
	}
}

// RequireTenantMatch rejects authenticated requests whose access token was
// issued for a different tenant than the one resolved from the host. Runs
// after TenantResolver and the JWT middleware.
func RequireTenantMatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		resolved, ok := GetTenantID(c)
		if !ok {
			c.JSON(http.StatusNotFound, response.NotFound("No agency is registered for this address"))
			c.Abort()
			return
		}

		claimed, ok := pkgmiddleware.GetAuthTenantID(c)
		if !ok || claimed != resolved {
			c.JSON(http.StatusForbidden, response.Forbidden("Token was not issued for this agency"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetTenant extracts the resolved tenant from gin context
func GetTenant(c *gin.Context) (*domain.Tenant, bool) {
	value, exists := c.Get(ContextKeyTenant)
	if !exists {
		return nil, false
	}
	tenant, ok := value.(*domain.Tenant)
	return tenant, ok
}

// GetTenantID extracts the resolved tenant ID from gin context
func GetTenantID(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextKeyTenantID)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}
