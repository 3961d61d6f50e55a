package dto

// CreateLeadRequest represents request to create a new lead
type CreateLeadRequest struct {
	Name              string                 `json:"name" binding:"required,min=2,max=255"`
	Email             string                 `json:"email" binding:"omitempty,email"`
	Phone             string                 `json:"phone" binding:"omitempty,max=30"`
	Source            string                 `json:"source" binding:"required"`
	Interest          string                 `json:"interest" binding:"omitempty,max=1000"`
	Budget            *float64               `json:"budget" binding:"omitempty,gt=0"`
	AssignedProfileID *string                `json:"assigned_profile_id" binding:"omitempty,uuid"`
	Metadata          map[string]interface{} `json:"metadata" binding:"omitempty"`
}

// UpdateLeadRequest represents request to update lead information
type UpdateLeadRequest struct {
	Name     *string                 `json:"name" binding:"omitempty,min=2,max=255"`
	Email    *string                 `json:"email" binding:"omitempty,email"`
	Phone    *string                 `json:"phone" binding:"omitempty,max=30"`
	Interest *string                 `json:"interest" binding:"omitempty,max=1000"`
	Budget   *float64                `json:"budget" binding:"omitempty,gt=0"`
	Metadata *map[string]interface{} `json:"metadata" binding:"omitempty"`
}

// Validate validates that at least one field is provided for update
func (r *UpdateLeadRequest) Validate() (bool, string) {
	if r.Name == nil && r.Email == nil && r.Phone == nil && r.Interest == nil && r.Budget == nil && r.Metadata == nil {
		return false, "At least one field must be provided for update"
	}
	return true, ""
}

// MoveStageRequest represents request to move a lead through the pipeline
type MoveStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// AssignLeadRequest represents request to assign a lead to a profile
type AssignLeadRequest struct {
	ProfileID string `json:"profile_id" binding:"required,uuid"`
}

// LeadResponse represents lead data in response
type LeadResponse struct {
	ID                string                 `json:"id"`
	TenantID          string                 `json:"tenant_id"`
	AssignedProfileID *string                `json:"assigned_profile_id,omitempty"`
	Name              string                 `json:"name"`
	Email             string                 `json:"email,omitempty"`
	Phone             string                 `json:"phone,omitempty"`
	Source            string                 `json:"source"`
	Interest          string                 `json:"interest,omitempty"`
	Budget            *float64               `json:"budget,omitempty"`
	Stage             string                 `json:"stage"`
	Score             int                    `json:"score"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt         string                 `json:"created_at"`
	UpdatedAt         string                 `json:"updated_at"`
}

// ListLeadsQuery represents query parameters for listing leads
type ListLeadsQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Stage     string `form:"stage" binding:"omitempty"`
	ProfileID string `form:"profile_id" binding:"omitempty,uuid"`
	Source    string `form:"source" binding:"omitempty"`
	Search    string `form:"search" binding:"omitempty,max=255"`
}

// SetDefaults sets default values for query parameters
func (q *ListLeadsQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
}

// ListLeadsResponse represents paginated list of leads
type ListLeadsResponse struct {
	Leads      []LeadResponse `json:"leads"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}
