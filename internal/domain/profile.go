package domain

import "time"

// Profile represents a team member inside a tenant
type Profile struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenant_id"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Role      string     `json:"role"` // owner, agent
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Profile role constants
const (
	RoleOwner = "owner"
	RoleAgent = "agent"
)
