package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laxautomacoes/crmLAX-sub001/internal/calendar"
	"github.com/laxautomacoes/crmLAX-sub001/internal/dto"
	"github.com/laxautomacoes/crmLAX-sub001/internal/middleware"
	"github.com/laxautomacoes/crmLAX-sub001/internal/service"
	pkgmiddleware "github.com/laxautomacoes/crmLAX-sub001/pkg/middleware"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/response"
)

// AgendaHandler handles calendar event HTTP requests
type AgendaHandler struct {
	agendaService service.AgendaService
}

// NewAgendaHandler creates a new AgendaHandler
func NewAgendaHandler(agendaService service.AgendaService) *AgendaHandler {
	return &AgendaHandler{agendaService: agendaService}
}

// Create handles event creation on the authenticated profile's agenda
// POST /api/v1/agenda
func (h *AgendaHandler) Create(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	profileID, ok := pkgmiddleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.agendaService.Create(c.Request.Context(), tenantID, profileID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEventType):
			c.JSON(http.StatusBadRequest, response.Error("INVALID_EVENT_TYPE", "Unknown event type"))
		case errors.Is(err, service.ErrInvalidTimeRange):
			c.JSON(http.StatusBadRequest, response.Error("INVALID_TIME_RANGE", "end_time must be after start_time"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// GetByID handles retrieving an event by ID
// GET /api/v1/agenda/:id
func (h *AgendaHandler) GetByID(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	result, err := h.agendaService.GetByID(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Event not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// List handles retrieving events within a time range
// GET /api/v1/agenda
func (h *AgendaHandler) List(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	var query dto.ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.agendaService.List(c.Request.Context(), tenantID, &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Update handles event update
// PUT /api/v1/agenda/:id
func (h *AgendaHandler) Update(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.agendaService.Update(c.Request.Context(), tenantID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Event not found"))
		case errors.Is(err, service.ErrInvalidEventType):
			c.JSON(http.StatusBadRequest, response.Error("INVALID_EVENT_TYPE", "Unknown event type"))
		case errors.Is(err, service.ErrInvalidTimeRange):
			c.JSON(http.StatusBadRequest, response.Error("INVALID_TIME_RANGE", "end_time must be after start_time"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Delete handles event removal
// DELETE /api/v1/agenda/:id
func (h *AgendaHandler) Delete(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	if err := h.agendaService.Delete(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Event not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Event deleted successfully"}))
}

// Feed serves the authenticated profile's agenda as an iCalendar stream
// GET /api/v1/agenda/feed.ics
func (h *AgendaHandler) Feed(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	profileID, ok := pkgmiddleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var query dto.ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	events, err := h.agendaService.ListDomain(c.Request.Context(), tenantID, profileID, query.From, query.To)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	slug, _ := c.Get(middleware.ContextKeyTenantSlug)
	name, _ := slug.(string)

	// Encode into memory first so an encoding failure can still produce
	// an error response instead of committed headers and a broken body.
	var buf bytes.Buffer
	if err := calendar.WriteFeed(&buf, name, events); err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+calendar.FeedFilename(name))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
