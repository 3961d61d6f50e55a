package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
	"github.com/laxautomacoes/crmLAX-sub001/internal/gateway"
	"github.com/laxautomacoes/crmLAX-sub001/internal/repository"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/logger"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService delivers in-app notifications to profiles, optionally
// relaying them over WhatsApp when the profile has a phone on file.
type NotificationService interface {
	// Notify records a notification for a profile. Delivery of the in-app
	// row is the contract; WhatsApp relay is best effort.
	Notify(ctx context.Context, tenantID, profileID, kind, title, body string) error
	// ListByProfile lists notifications for a profile, newest first
	ListByProfile(ctx context.Context, tenantID, profileID string, unreadOnly bool) ([]*domain.Notification, error)
	// MarkRead marks a notification as read
	MarkRead(ctx context.Context, tenantID, id string) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	profileRepo      repository.ProfileRepository
	sender           gateway.WhatsAppSender
	relayWhatsApp    bool
}

// NewNotificationService creates a new NotificationService. The sender is
// optional; pass nil to disable WhatsApp relay entirely.
func NewNotificationService(notificationRepo repository.NotificationRepository, profileRepo repository.ProfileRepository, sender gateway.WhatsAppSender, relayWhatsApp bool) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		sender:           sender,
		relayWhatsApp:    relayWhatsApp,
	}
}

// Notify records a notification for a profile
func (s *notificationService) Notify(ctx context.Context, tenantID, profileID, kind, title, body string) error {
	notification := &domain.Notification{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		ProfileID: profileID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	s.relay(ctx, notification)
	return nil
}

// relay forwards the notification over WhatsApp when the profile has a
// phone number. Failures are logged, never propagated: the in-app row is
// already committed.
func (s *notificationService) relay(ctx context.Context, n *domain.Notification) {
	if !s.relayWhatsApp || s.sender == nil {
		return
	}

	profile, err := s.profileRepo.GetByID(ctx, n.ProfileID)
	if err != nil || profile == nil || profile.Phone == "" {
		return
	}

	if err := s.sender.SendText(ctx, profile.Phone, n.Title+"\n"+n.Body); err != nil {
		if errors.Is(err, gateway.ErrGatewayDisabled) {
			return
		}
		logger.WarnCtx(ctx, "whatsapp relay failed",
			zap.String("notification_id", n.ID),
			zap.String("profile_id", n.ProfileID),
			zap.Error(err))
	}
}

// ListByProfile lists notifications for a profile, newest first
func (s *notificationService) ListByProfile(ctx context.Context, tenantID, profileID string, unreadOnly bool) ([]*domain.Notification, error) {
	return s.notificationRepo.ListByProfile(ctx, tenantID, profileID, unreadOnly)
}

// MarkRead marks a notification as read
func (s *notificationService) MarkRead(ctx context.Context, tenantID, id string) error {
	return s.notificationRepo.MarkRead(ctx, tenantID, id)
}
