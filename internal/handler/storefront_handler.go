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

// StorefrontHandler serves the public listing pages for a resolved tenant.
// No authentication: the host alone selects what is visible.
type StorefrontHandler struct {
	assetService service.AssetService
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(assetService service.AssetService) *StorefrontHandler {
	return &StorefrontHandler{assetService: assetService}
}

// Show handles the public storefront view
// GET /api/v1/storefront
func (h *StorefrontHandler) Show(c *gin.Context) {
	tenant, ok := middleware.GetTenant(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	var query dto.ListAssetsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.assetService.Storefront(c.Request.Context(), tenant, &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// ShowAsset handles the public detail view for a single listing
// GET /api/v1/store/assets/:id
func (h *StorefrontHandler) ShowAsset(c *gin.Context) {
	tenant, ok := middleware.GetTenant(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	result, err := h.assetService.PublicGetByID(c.Request.Context(), tenant.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Listing not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}
