package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/laxautomacoes/crmLAX-sub001/internal/dto"
	"github.com/laxautomacoes/crmLAX-sub001/internal/service"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/logger"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/response"
)

// CronHandler exposes scheduled maintenance endpoints for an external cron
// caller. Callers authenticate with a shared bearer secret.
type CronHandler struct {
	reminderService service.ReminderService
	secret          string
}

// NewCronHandler creates a new CronHandler
func NewCronHandler(reminderService service.ReminderService, secret string) *CronHandler {
	return &CronHandler{reminderService: reminderService, secret: secret}
}

// Reminders runs one reminder sweep
// GET /api/v1/cron/reminders
func (h *CronHandler) Reminders(c *gin.Context) {
	if !h.authorized(c) {
		c.JSON(http.StatusUnauthorized, response.Unauthorized("Invalid cron secret"))
		return
	}

	result, err := h.reminderService.Sweep(c.Request.Context(), time.Now())
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "reminder sweep failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.InternalError("Reminder sweep failed"))
		return
	}

	c.JSON(http.StatusOK, response.Success(dto.SweepResponse{
		Message:   "Reminder sweep completed",
		Processed: result.Processed,
		EventIDs:  result.EventIDs,
	}))
}

// authorized checks the bearer secret. An empty configured secret skips the
// check entirely.
func (h *CronHandler) authorized(c *gin.Context) bool {
	if h.secret == "" {
		return true
	}

	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) == 1
}
