package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laxautomacoes/crmLAX-sub001/internal/dto"
	"github.com/laxautomacoes/crmLAX-sub001/internal/middleware"
	"github.com/laxautomacoes/crmLAX-sub001/internal/service"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/response"
)

// AssetHandler handles inventory management HTTP requests
type AssetHandler struct {
	assetService service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// Create handles asset creation
// POST /api/v1/assets
func (h *AssetHandler) Create(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.assetService.Create(c.Request.Context(), tenantID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// GetByID handles retrieving an asset by ID
// GET /api/v1/assets/:id
func (h *AssetHandler) GetByID(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	result, err := h.assetService.GetByID(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Asset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// List handles retrieving assets with pagination and filters
// GET /api/v1/assets
func (h *AssetHandler) List(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	var query dto.ListAssetsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.assetService.List(c.Request.Context(), tenantID, &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Update handles asset update
// PUT /api/v1/assets/:id
func (h *AssetHandler) Update(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error("INVALID_UPDATE", msg))
		return
	}

	result, err := h.assetService.Update(c.Request.Context(), tenantID, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Asset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Delete handles asset soft deletion
// DELETE /api/v1/assets/:id
func (h *AssetHandler) Delete(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	if err := h.assetService.Delete(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Asset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Asset deleted successfully"}))
}
