package dto

import "time"

// CreateEventRequest represents request to create a calendar event
type CreateEventRequest struct {
	Title       string                 `json:"title" binding:"required,min=2,max=255"`
	Description string                 `json:"description" binding:"omitempty,max=2000"`
	StartTime   time.Time              `json:"start_time" binding:"required"`
	EndTime     time.Time              `json:"end_time" binding:"required"`
	EventType   string                 `json:"event_type" binding:"required"`
	LeadID      *string                `json:"lead_id" binding:"omitempty,uuid"`
	AssetID     *string                `json:"asset_id" binding:"omitempty,uuid"`
	Metadata    map[string]interface{} `json:"metadata" binding:"omitempty"`
}

// Validate checks cross-field constraints
func (r *CreateEventRequest) Validate() (bool, string) {
	if !r.EndTime.After(r.StartTime) {
		return false, "end_time must be after start_time"
	}
	return true, ""
}

// UpdateEventRequest represents request to update a calendar event
type UpdateEventRequest struct {
	Title       *string                 `json:"title" binding:"omitempty,min=2,max=255"`
	Description *string                 `json:"description" binding:"omitempty,max=2000"`
	StartTime   *time.Time              `json:"start_time" binding:"omitempty"`
	EndTime     *time.Time              `json:"end_time" binding:"omitempty"`
	EventType   *string                 `json:"event_type" binding:"omitempty"`
	LeadID      *string                 `json:"lead_id" binding:"omitempty,uuid"`
	AssetID     *string                 `json:"asset_id" binding:"omitempty,uuid"`
	Metadata    *map[string]interface{} `json:"metadata" binding:"omitempty"`
}

// Validate validates that at least one field is provided for update
func (r *UpdateEventRequest) Validate() (bool, string) {
	if r.Title == nil && r.Description == nil && r.StartTime == nil && r.EndTime == nil &&
		r.EventType == nil && r.LeadID == nil && r.AssetID == nil && r.Metadata == nil {
		return false, "At least one field must be provided for update"
	}
	return true, ""
}

// EventResponse represents calendar event data in response
type EventResponse struct {
	ID           string                 `json:"id"`
	TenantID     string                 `json:"tenant_id"`
	ProfileID    string                 `json:"profile_id"`
	LeadID       *string                `json:"lead_id,omitempty"`
	AssetID      *string                `json:"asset_id,omitempty"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description,omitempty"`
	StartTime    string                 `json:"start_time"`
	EndTime      string                 `json:"end_time"`
	EventType    string                 `json:"event_type"`
	ReminderSent bool                   `json:"reminder_sent"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    string                 `json:"created_at"`
	UpdatedAt    string                 `json:"updated_at"`
}

// ListEventsQuery represents query parameters for listing agenda events
type ListEventsQuery struct {
	From      time.Time `form:"from" binding:"omitempty" time_format:"2006-01-02T15:04:05Z07:00"`
	To        time.Time `form:"to" binding:"omitempty" time_format:"2006-01-02T15:04:05Z07:00"`
	ProfileID string    `form:"profile_id" binding:"omitempty,uuid"`
}

// SweepResponse represents the outcome of a reminder sweep run
type SweepResponse struct {
	Message   string   `json:"message"`
	Processed int      `json:"processed"`
	EventIDs  []string `json:"event_ids"`
}
