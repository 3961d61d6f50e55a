package repository

import (
	"context"
	"time"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
)

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, tenantID, email string) (*domain.Profile, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	SoftDelete(ctx context.Context, id string) error
}

// LeadFilter holds filters for listing leads
type LeadFilter struct {
	Stage             string
	AssignedProfileID string
	Source            string
	Search            string
	Page              int
	Limit             int
}

// LeadRepository defines the interface for lead data access
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Lead, error)
	GetByPhone(ctx context.Context, tenantID, phone string) (*domain.Lead, error)
	List(ctx context.Context, tenantID string, filter LeadFilter) ([]*domain.Lead, int, error)
	Update(ctx context.Context, lead *domain.Lead) error
	UpdateStage(ctx context.Context, tenantID, id, stage string) error
	UpdateScore(ctx context.Context, tenantID, id string, score int) error
	SoftDelete(ctx context.Context, tenantID, id string) error
}

// EventRepository defines the interface for calendar event data access
type EventRepository interface {
	Create(ctx context.Context, event *domain.CalendarEvent) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.CalendarEvent, error)
	ListByRange(ctx context.Context, tenantID, profileID string, from, to time.Time) ([]*domain.CalendarEvent, error)
	Update(ctx context.Context, event *domain.CalendarEvent) error
	Delete(ctx context.Context, tenantID, id string) error

	// DueForReminder selects events with reminder_sent = false whose start_time
	// lies in (now, now+window]
	DueForReminder(ctx context.Context, now time.Time, window time.Duration) ([]*domain.CalendarEvent, error)
	// ClaimReminder atomically flips reminder_sent false->true for one event,
	// returning false if another sweep already claimed it
	ClaimReminder(ctx context.Context, id string) (bool, error)
	// ReleaseReminder reverts a claim after a failed notification so the event
	// is retried on the next sweep
	ReleaseReminder(ctx context.Context, id string) error
}

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	GetByID(ctx context.Context, id string) (*domain.Invitation, error)
	ListPending(ctx context.Context, tenantID string) ([]*domain.Invitation, error)
	UpdateStatus(ctx context.Context, id, status string, acceptedAt *time.Time) error
	ExistsPendingByEmail(ctx context.Context, tenantID, email string) (bool, error)
}

// AssetFilter holds filters for listing assets
type AssetFilter struct {
	Kind       string
	Status     string
	City       string
	Search     string
	OnlyPublic bool
	Page       int
	Limit      int
}

// AssetRepository defines the interface for asset data access
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Asset, error)
	List(ctx context.Context, tenantID string, filter AssetFilter) ([]*domain.Asset, int, error)
	Update(ctx context.Context, asset *domain.Asset) error
	SoftDelete(ctx context.Context, tenantID, id string) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByProfile(ctx context.Context, tenantID, profileID string, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, tenantID, id string) error
}

// MessageRepository defines the interface for WhatsApp message data access
type MessageRepository interface {
	Create(ctx context.Context, m *domain.WhatsAppMessage) error
	ListByLead(ctx context.Context, tenantID, leadID string) ([]*domain.WhatsAppMessage, error)
}
