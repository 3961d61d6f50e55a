package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laxautomacoes/crmLAX-sub001/internal/dto"
	"github.com/laxautomacoes/crmLAX-sub001/internal/gateway"
	"github.com/laxautomacoes/crmLAX-sub001/internal/middleware"
	"github.com/laxautomacoes/crmLAX-sub001/internal/service"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/response"
)

// WebhookTokenHeader carries the shared secret the gateway sends with
// every delivery
const WebhookTokenHeader = "X-Webhook-Token"

// WhatsAppHandler handles WhatsApp gateway HTTP requests
type WhatsAppHandler struct {
	whatsappService service.WhatsAppService
	webhookToken    string
}

// NewWhatsAppHandler creates a new WhatsAppHandler
func NewWhatsAppHandler(whatsappService service.WhatsAppService, webhookToken string) *WhatsAppHandler {
	return &WhatsAppHandler{whatsappService: whatsappService, webhookToken: webhookToken}
}

// Webhook handles inbound message deliveries from the gateway
// POST /api/v1/whatsapp/webhook
func (h *WhatsAppHandler) Webhook(c *gin.Context) {
	if !h.verifyToken(c) {
		c.JSON(http.StatusUnauthorized, response.Unauthorized("Invalid webhook token"))
		return
	}

	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	var req dto.WebhookMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.whatsappService.IngestWebhook(c.Request.Context(), tenantID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Send handles sending an outbound message to a lead
// POST /api/v1/leads/:id/messages
func (h *WhatsAppHandler) Send(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.whatsappService.SendToLead(c.Request.Context(), tenantID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeadNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Lead not found"))
		case errors.Is(err, service.ErrLeadHasNoPhone):
			c.JSON(http.StatusBadRequest, response.Error("LEAD_HAS_NO_PHONE", "Lead has no phone number on file"))
		case errors.Is(err, gateway.ErrGatewayDisabled), errors.Is(err, service.ErrGatewaySend):
			c.JSON(http.StatusBadGateway, response.Error(response.ErrCodeGatewayUnavailable, "WhatsApp gateway is unavailable"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// History handles listing the conversation for a lead
// GET /api/v1/leads/:id/messages
func (h *WhatsAppHandler) History(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	result, err := h.whatsappService.History(c.Request.Context(), tenantID, c.Param("id"))
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

// verifyToken checks the shared webhook secret. An empty configured token
// rejects every delivery.
func (h *WhatsAppHandler) verifyToken(c *gin.Context) bool {
	if h.webhookToken == "" {
		return false
	}
	sent := c.GetHeader(WebhookTokenHeader)
	return subtle.ConstantTimeCompare([]byte(sent), []byte(h.webhookToken)) == 1
}
