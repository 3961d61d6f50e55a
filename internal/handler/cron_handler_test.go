package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/laxautomacoes/crmLAX-sub001/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubReminderService returns a fixed sweep result or error
type stubReminderService struct {
	result *service.SweepResult
	err    error
	calls  int
}

func (s *stubReminderService) Sweep(ctx context.Context, now time.Time) (*service.SweepResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func setupCronRouter(svc service.ReminderService, secret string) *gin.Engine {
	router := gin.New()
	h := NewCronHandler(svc, secret)
	router.GET("/api/v1/cron/reminders", h.Reminders)
	return router
}

func TestCronHandler_Reminders_ValidSecret(t *testing.T) {
	svc := &stubReminderService{result: &service.SweepResult{
		Processed: 2,
		EventIDs:  []string{"ev-1", "ev-2"},
	}}
	router := setupCronRouter(svc, "sweep-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cron/reminders", nil)
	req.Header.Set("Authorization", "Bearer sweep-secret")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Message   string   `json:"message"`
			Processed int      `json:"processed"`
			EventIDs  []string `json:"event_ids"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !body.Success {
		t.Error("expected success=true")
	}
	if body.Data.Processed != 2 {
		t.Errorf("processed = %d, want 2", body.Data.Processed)
	}
	if len(body.Data.EventIDs) != 2 {
		t.Errorf("event_ids = %v, want 2 entries", body.Data.EventIDs)
	}
}

func TestCronHandler_Reminders_WrongSecret(t *testing.T) {
	svc := &stubReminderService{result: &service.SweepResult{EventIDs: []string{}}}
	router := setupCronRouter(svc, "sweep-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cron/reminders", nil)
	req.Header.Set("Authorization", "Bearer wrong-secret")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	if svc.calls != 0 {
		t.Error("sweep should not run for an unauthorized caller")
	}
}

func TestCronHandler_Reminders_MissingHeader(t *testing.T) {
	svc := &stubReminderService{result: &service.SweepResult{EventIDs: []string{}}}
	router := setupCronRouter(svc, "sweep-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cron/reminders", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestCronHandler_Reminders_MalformedHeader(t *testing.T) {
	svc := &stubReminderService{result: &service.SweepResult{EventIDs: []string{}}}
	router := setupCronRouter(svc, "sweep-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cron/reminders", nil)
	req.Header.Set("Authorization", "sweep-secret") // no Bearer prefix
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestCronHandler_Reminders_NoSecretConfigured(t *testing.T) {
	// With no secret configured the auth check is skipped entirely.
	svc := &stubReminderService{result: &service.SweepResult{EventIDs: []string{}}}
	router := setupCronRouter(svc, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cron/reminders", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if svc.calls != 1 {
		t.Errorf("sweep calls = %d, want 1", svc.calls)
	}
}

func TestCronHandler_Reminders_SweepFailure(t *testing.T) {
	svc := &stubReminderService{err: errors.New("connection refused")}
	router := setupCronRouter(svc, "sweep-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cron/reminders", nil)
	req.Header.Set("Authorization", "Bearer sweep-secret")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}
