package domain

import "time"

// Notification represents an in-app message addressed to a profile
type Notification struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	ProfileID string    `json:"profile_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification kind constants
const (
	NotificationKindReminder     = "reminder"
	NotificationKindInvitation   = "invitation"
	NotificationKindLeadAssigned = "lead_assigned"
)
