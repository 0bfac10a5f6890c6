package dto

// CreateWorkAreaRequest creates a geofence for the caller's company.
type CreateWorkAreaRequest struct {
	Name         string   `json:"name"          binding:"required,min=2,max=100"`
	Address      string   `json:"address"       binding:"max=200"`
	Latitude     *float64 `json:"latitude"      binding:"required,min=-90,max=90"`
	Longitude    *float64 `json:"longitude"     binding:"required,min=-180,max=180"`
	RadiusMeters float64  `json:"radius_meters" binding:"required,gt=0"`
}

// UpdateWorkAreaRequest partially updates a work area.
type UpdateWorkAreaRequest struct {
	Name         *string  `json:"name"          binding:"omitempty,min=2,max=100"`
	Address      *string  `json:"address"       binding:"omitempty,max=200"`
	Latitude     *float64 `json:"latitude"      binding:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude"     binding:"omitempty,min=-180,max=180"`
	RadiusMeters *float64 `json:"radius_meters" binding:"omitempty,gt=0"`
	IsActive     *bool    `json:"is_active"`
}

// WorkAreaListRequest filters the work area list.
type WorkAreaListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// WorkAreaResponse is the public work area representation.
type WorkAreaResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
}
