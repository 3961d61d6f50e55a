package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laxautomacoes/crmLAX-sub001/internal/dto"
	"github.com/laxautomacoes/crmLAX-sub001/internal/middleware"
	"github.com/laxautomacoes/crmLAX-sub001/internal/service"
	pkgmiddleware "github.com/laxautomacoes/crmLAX-sub001/pkg/middleware"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/response"
)

// InvitationHandler handles team invitation HTTP requests
type InvitationHandler struct {
	invitationService service.InvitationService
}

// NewInvitationHandler creates a new InvitationHandler
func NewInvitationHandler(invitationService service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// Create handles inviting a team member
// POST /api/v1/invitations
func (h *InvitationHandler) Create(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	invitedBy, ok := pkgmiddleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, token, err := h.invitationService.Invite(c.Request.Context(), tenantID, invitedBy, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyMember):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeDuplicateEntry, "A profile with this email already exists"))
		case errors.Is(err, service.ErrInvitationPending):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeDuplicateEntry, "A pending invitation already exists for this email"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(gin.H{
		"invitation": result,
		"token":      token,
	}))
}

// Accept handles redeeming an invitation token
// POST /api/v1/invitations/accept
func (h *InvitationHandler) Accept(c *gin.Context) {
	var req dto.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.invitationService.Accept(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationToken):
			c.JSON(http.StatusBadRequest, response.Error("INVALID_TOKEN", "Invitation token is invalid"))
		case errors.Is(err, service.ErrInvitationNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Invitation not found"))
		case errors.Is(err, service.ErrInvitationExpired):
			c.JSON(http.StatusGone, response.Error(response.ErrCodeInvitationExpired, "Invitation has expired"))
		case errors.Is(err, service.ErrInvitationRevoked):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeInvitationRevoked, "Invitation is no longer acceptable"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// Revoke handles cancelling a pending invitation
// DELETE /api/v1/invitations/:id
func (h *InvitationHandler) Revoke(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	err := h.invitationService.Revoke(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Invitation not found"))
		case errors.Is(err, service.ErrInvitationNotPending):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeConflict, "Only pending invitations can be revoked"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Invitation revoked"}))
}

// ListPending handles listing pending invitations
// GET /api/v1/invitations
func (h *InvitationHandler) ListPending(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	result, err := h.invitationService.ListPending(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}
