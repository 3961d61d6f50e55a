package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
	"github.com/laxautomacoes/crmLAX-sub001/internal/repository"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/logger"
)

// DefaultReminderWindow is how far ahead the sweep looks when no window
// is configured.
const DefaultReminderWindow = time.Hour

// SweepResult summarizes one reminder sweep pass
type SweepResult struct {
	Processed int
	EventIDs  []string
}

// ReminderService sweeps the agenda for upcoming events and notifies the
// owning profile once per event.
//
// Each due event is claimed before the notification is sent: the claim is an
// atomic flip of reminder_sent, so two sweeps racing over the same window
// cannot both notify. A claim is released when the notification fails, which
// puts the event back in the pool for the next sweep.
type ReminderService interface {
	// Sweep notifies profiles about events starting within the window.
	Sweep(ctx context.Context, now time.Time) (*SweepResult, error)
}

type reminderService struct {
	eventRepo    repository.EventRepository
	notification NotificationService
	window       time.Duration
}

// NewReminderService creates a new ReminderService
func NewReminderService(eventRepo repository.EventRepository, notification NotificationService, window time.Duration) ReminderService {
	if window <= 0 {
		window = DefaultReminderWindow
	}
	return &reminderService{
		eventRepo:    eventRepo,
		notification: notification,
		window:       window,
	}
}

// Sweep notifies profiles about events starting within the window
func (s *reminderService) Sweep(ctx context.Context, now time.Time) (*SweepResult, error) {
	due, err := s.eventRepo.DueForReminder(ctx, now, s.window)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{EventIDs: []string{}}
	for _, event := range due {
		claimed, err := s.eventRepo.ClaimReminder(ctx, event.ID)
		if err != nil {
			logger.ErrorCtx(ctx, "reminder claim failed",
				zap.String("event_id", event.ID), zap.Error(err))
			continue
		}
		if !claimed {
			// Another sweep got here first.
			continue
		}

		if err := s.notify(ctx, event); err != nil {
			logger.ErrorCtx(ctx, "reminder notification failed",
				zap.String("event_id", event.ID),
				zap.String("profile_id", event.ProfileID),
				zap.Error(err))
			if relErr := s.eventRepo.ReleaseReminder(ctx, event.ID); relErr != nil {
				logger.ErrorCtx(ctx, "reminder release failed",
					zap.String("event_id", event.ID), zap.Error(relErr))
			}
			continue
		}

		result.Processed++
		result.EventIDs = append(result.EventIDs, event.ID)
	}

	logger.InfoCtx(ctx, "reminder sweep completed",
		zap.Int("due", len(due)),
		zap.Int("processed", result.Processed))
	return result, nil
}

func (s *reminderService) notify(ctx context.Context, event *domain.CalendarEvent) error {
	body := fmt.Sprintf("%s starts at %s", event.Title, event.StartTime.Format("15:04"))
	return s.notification.Notify(ctx, event.TenantID, event.ProfileID,
		domain.NotificationKindReminder, "Upcoming appointment", body)
}
