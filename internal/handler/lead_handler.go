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

// LeadHandler handles lead pipeline HTTP requests
type LeadHandler struct {
	leadService service.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Create handles lead creation
// POST /api/v1/leads
func (h *LeadHandler) Create(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.leadService.Create(c.Request.Context(), tenantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSource):
			c.JSON(http.StatusBadRequest, response.Error("INVALID_SOURCE", "Unknown lead source"))
		case errors.Is(err, service.ErrProfileNotFound), errors.Is(err, service.ErrProfileForbidden):
			c.JSON(http.StatusBadRequest, response.BadRequest("Assigned profile does not belong to this tenant"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// GetByID handles retrieving a lead by ID
// GET /api/v1/leads/:id
func (h *LeadHandler) GetByID(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	result, err := h.leadService.GetByID(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Lead not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// List handles retrieving leads with pagination and filters
// GET /api/v1/leads
func (h *LeadHandler) List(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	var query dto.ListLeadsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.leadService.List(c.Request.Context(), tenantID, &query)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStage) {
			c.JSON(http.StatusBadRequest, response.Error("INVALID_STAGE", "Unknown pipeline stage"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Update handles lead update
// PUT /api/v1/leads/:id
func (h *LeadHandler) Update(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	var req dto.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error("INVALID_UPDATE", msg))
		return
	}

	result, err := h.leadService.Update(c.Request.Context(), tenantID, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Lead not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Rescore handles recomputing a lead's score on demand
// POST /api/v1/leads/:id/score
func (h *LeadHandler) Rescore(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	result, err := h.leadService.Rescore(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Lead not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// MoveStage handles moving a lead through the pipeline
// POST /api/v1/leads/:id/stage
func (h *LeadHandler) MoveStage(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	var req dto.MoveStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.leadService.MoveStage(c.Request.Context(), tenantID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeadNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Lead not found"))
		case errors.Is(err, service.ErrInvalidStage):
			c.JSON(http.StatusBadRequest, response.Error("INVALID_STAGE", "Unknown pipeline stage"))
		case errors.Is(err, service.ErrStageLocked):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeStageLocked, "A closed lead can only be reopened to the new stage"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Assign handles assigning a lead to a profile
// POST /api/v1/leads/:id/assign
func (h *LeadHandler) Assign(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	var req dto.AssignLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.leadService.Assign(c.Request.Context(), tenantID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeadNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Lead not found"))
		case errors.Is(err, service.ErrProfileNotFound), errors.Is(err, service.ErrProfileForbidden):
			c.JSON(http.StatusBadRequest, response.BadRequest("Profile does not belong to this tenant"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Delete handles lead soft deletion
// DELETE /api/v1/leads/:id
func (h *LeadHandler) Delete(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	if err := h.leadService.Delete(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Lead not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Lead deleted successfully"}))
}
