package domain

import "time"

// CalendarEvent represents a scheduled appointment on a profile's agenda,
// optionally linked to a lead or a storefront asset
type CalendarEvent struct {
	ID           string                 `json:"id"`
	TenantID     string                 `json:"tenant_id"`
	ProfileID    string                 `json:"profile_id"`
	LeadID       *string                `json:"lead_id,omitempty"`
	AssetID      *string                `json:"asset_id,omitempty"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description,omitempty"`
	StartTime    time.Time              `json:"start_time"`
	EndTime      time.Time              `json:"end_time"`
	EventType    string                 `json:"event_type"`
	ReminderSent bool                   `json:"reminder_sent"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// Event type constants
const (
	EventTypeVisit    = "visit"
	EventTypeMeeting  = "meeting"
	EventTypeCall     = "call"
	EventTypeFollowUp = "follow_up"
	EventTypeOther    = "other"
)

// IsValidEventType reports whether the type is a known event category
func IsValidEventType(t string) bool {
	switch t {
	case EventTypeVisit, EventTypeMeeting, EventTypeCall, EventTypeFollowUp, EventTypeOther:
		return true
	}
	return false
}
