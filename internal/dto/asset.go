package dto

// CreateAssetRequest represents request to create a storefront asset
type CreateAssetRequest struct {
	Title       string                 `json:"title" binding:"required,min=2,max=255"`
	Description string                 `json:"description" binding:"omitempty,max=5000"`
	Kind        string                 `json:"kind" binding:"required,oneof=property vehicle"`
	Price       float64                `json:"price" binding:"required,gt=0"`
	City        string                 `json:"city" binding:"omitempty,max=120"`
	ImageURLs   []string               `json:"image_urls" binding:"omitempty,dive,url"`
	IsPublished bool                   `json:"is_published"`
	Metadata    map[string]interface{} `json:"metadata" binding:"omitempty"`
}

// UpdateAssetRequest represents request to update an asset
type UpdateAssetRequest struct {
	Title       *string                 `json:"title" binding:"omitempty,min=2,max=255"`
	Description *string                 `json:"description" binding:"omitempty,max=5000"`
	Price       *float64                `json:"price" binding:"omitempty,gt=0"`
	City        *string                 `json:"city" binding:"omitempty,max=120"`
	Status      *string                 `json:"status" binding:"omitempty,oneof=available reserved sold"`
	ImageURLs   *[]string               `json:"image_urls" binding:"omitempty,dive,url"`
	IsPublished *bool                   `json:"is_published" binding:"omitempty"`
	Metadata    *map[string]interface{} `json:"metadata" binding:"omitempty"`
}

// Validate validates that at least one field is provided for update
func (r *UpdateAssetRequest) Validate() (bool, string) {
	if r.Title == nil && r.Description == nil && r.Price == nil && r.City == nil &&
		r.Status == nil && r.ImageURLs == nil && r.IsPublished == nil && r.Metadata == nil {
		return false, "At least one field must be provided for update"
	}
	return true, ""
}

// AssetResponse represents asset data in response
type AssetResponse struct {
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
	CreatedAt   string                 `json:"created_at"`
	UpdatedAt   string                 `json:"updated_at"`
}

// ListAssetsQuery represents query parameters for listing assets
type ListAssetsQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Kind   string `form:"kind" binding:"omitempty,oneof=property vehicle"`
	Status string `form:"status" binding:"omitempty,oneof=available reserved sold"`
	City   string `form:"city" binding:"omitempty,max=120"`
	Search string `form:"search" binding:"omitempty,max=255"`
}

// SetDefaults sets default values for query parameters
func (q *ListAssetsQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
}

// ListAssetsResponse represents paginated list of assets
type ListAssetsResponse struct {
	Assets     []AssetResponse `json:"assets"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// StorefrontResponse represents the public storefront payload: tenant branding
// plus the published listings
type StorefrontResponse struct {
	TenantName string                 `json:"tenant_name"`
	LogoURL    string                 `json:"logo_url,omitempty"`
	Branding   map[string]interface{} `json:"branding,omitempty"`
	Assets     []AssetResponse        `json:"assets"`
	TotalCount int                    `json:"total_count"`
}
