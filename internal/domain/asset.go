package domain

import "time"

// Asset represents a listed property or vehicle shown on the public storefront
type Asset struct {
	ID          string                 `json:"id"`
	TenantID    string                 `json:"tenant_id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Kind        string                 `json:"kind"`
	Price       float64                `json:"price"`
	City        string                 `json:"city,omitempty"`
	Status      string                 `json:"status"`
	ImageURLs   []string               `json:"image_urls,omitempty"`
	IsPublished bool                   `json:"is_published"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	DeletedAt   *time.Time             `json:"deleted_at,omitempty"`
}

// Asset kind constants
const (
	AssetKindProperty = "property"
	AssetKindVehicle  = "vehicle"
)

// Asset status constants
const (
	AssetStatusAvailable = "available"
	AssetStatusReserved  = "reserved"
	AssetStatusSold      = "sold"
)

// IsValidAssetKind reports whether the kind is supported
func IsValidAssetKind(kind string) bool {
	return kind == AssetKindProperty || kind == AssetKindVehicle
}

// IsValidAssetStatus reports whether the status is supported
func IsValidAssetStatus(status string) bool {
	switch status {
	case AssetStatusAvailable, AssetStatusReserved, AssetStatusSold:
		return true
	}
	return false
}

// IsPubliclyVisible reports whether the asset appears on the storefront
func (a *Asset) IsPubliclyVisible() bool {
	return a.IsPublished && a.Status == AssetStatusAvailable && a.DeletedAt == nil
}
