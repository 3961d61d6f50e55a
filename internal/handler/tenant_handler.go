package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laxautomacoes/crmLAX-sub001/internal/dto"
	"github.com/laxautomacoes/crmLAX-sub001/internal/service"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/response"
)

// TenantHandler handles tenant management HTTP requests
type TenantHandler struct {
	tenantService service.TenantService
	resolver      service.ResolverService
	rootDomain    string
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService service.TenantService, resolver service.ResolverService, rootDomain string) *TenantHandler {
	return &TenantHandler{tenantService: tenantService, resolver: resolver, rootDomain: rootDomain}
}

// invalidateHosts drops resolver cache entries for every host a tenant can
// be reached on: its subdomain under the root domain and its custom domain.
func (h *TenantHandler) invalidateHosts(c *gin.Context, slug, customDomain string) {
	if slug != "" && h.rootDomain != "" {
		_ = h.resolver.InvalidateHost(c.Request.Context(), slug+"."+h.rootDomain)
	}
	if customDomain != "" {
		_ = h.resolver.InvalidateHost(c.Request.Context(), customDomain)
	}
}

// Create handles tenant creation
// POST /api/v1/tenants
func (h *TenantHandler) Create(c *gin.Context) {
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.ValidateSlug(); !valid {
		c.JSON(http.StatusBadRequest, response.Error("INVALID_SLUG", msg))
		return
	}

	result, err := h.tenantService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTenantAlreadyExists):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeTenantExists, "Tenant with this slug already exists"))
		case errors.Is(err, service.ErrDomainTaken):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeDomainTaken, "Custom domain is already in use"))
		case errors.Is(err, service.ErrReservedSlug):
			c.JSON(http.StatusBadRequest, response.Error("INVALID_SLUG", "This slug is reserved"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// GetByID handles retrieving a tenant by ID
// GET /api/v1/tenants/:id
func (h *TenantHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Tenant ID is required"))
		return
	}

	result, err := h.tenantService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Tenant not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// GetBySlug handles retrieving a tenant by slug
// GET /api/v1/tenants/slug/:slug
func (h *TenantHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Slug is required"))
		return
	}

	result, err := h.tenantService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Tenant not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// List handles retrieving all tenants with pagination
// GET /api/v1/tenants
func (h *TenantHandler) List(c *gin.Context) {
	var query dto.ListTenantsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.tenantService.List(c.Request.Context(), &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Update handles tenant update
// PUT /api/v1/tenants/:id
func (h *TenantHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Tenant ID is required"))
		return
	}

	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error("INVALID_UPDATE", msg))
		return
	}

	// Resolve the current state so stale cache entries for the old domain
	// or subdomain can be dropped after a successful update.
	current, err := h.tenantService.GetByID(c.Request.Context(), id)
	if err != nil && !errors.Is(err, service.ErrTenantNotFound) {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	result, err := h.tenantService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTenantNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Tenant not found"))
		case errors.Is(err, service.ErrDomainTaken):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeDomainTaken, "Custom domain is already in use"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	if current != nil && current.CustomDomain != "" && current.CustomDomain != result.CustomDomain {
		_ = h.resolver.InvalidateHost(c.Request.Context(), current.CustomDomain)
	}
	h.invalidateHosts(c, result.Slug, result.CustomDomain)

	c.JSON(http.StatusOK, response.Success(result))
}

// Delete handles tenant soft deletion
// DELETE /api/v1/tenants/:id
func (h *TenantHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Tenant ID is required"))
		return
	}

	// Resolve before deleting: afterwards the tenant no longer reads back,
	// and its hosts must stop resolving immediately.
	current, err := h.tenantService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Tenant not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	if err := h.tenantService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Tenant not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	h.invalidateHosts(c, current.Slug, current.CustomDomain)

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Tenant deleted successfully"}))
}
