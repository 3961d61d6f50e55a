package domain

import (
	"time"
)

// Tenant represents an isolated agency account in the multi-tenant system.
// A tenant owns its own profiles, leads, agenda and storefront assets.
type Tenant struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Slug         string                 `json:"slug"`
	CustomDomain string                 `json:"custom_domain,omitempty"`
	LogoURL      string                 `json:"logo_url,omitempty"`
	Branding     map[string]interface{} `json:"branding,omitempty"`
	IsActive     bool                   `json:"is_active"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	DeletedAt    *time.Time             `json:"deleted_at,omitempty"` // Soft delete support
}

// Reserved subdomain labels that never resolve to a tenant
const (
	ReservedLabelWWW = "www"
	ReservedLabelApp = "app"
)

// IsReservedLabel reports whether a subdomain label is reserved by the platform
func IsReservedLabel(label string) bool {
	return label == ReservedLabelWWW || label == ReservedLabelApp
}
