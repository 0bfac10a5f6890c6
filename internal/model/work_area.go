package model

// WorkArea maps to work_areas. A circular geofence: employees on an active
// shift assigned to this area must remain within RadiusMeters of the center.
type WorkArea struct {
	WorkAreaID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"work_area_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Address      string  `gorm:"type:varchar(200)"                              json:"address,omitempty"`
	Latitude     float64 `gorm:"not null"                                       json:"latitude"`
	Longitude    float64 `gorm:"not null"                                       json:"longitude"`
	RadiusMeters float64 `gorm:"not null"                                       json:"radius_meters"`
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	CompanyID    string  `gorm:"type:uuid;not null"                             json:"company_id"`
	BaseModel

	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

// TableName sets the table name.
func (WorkArea) TableName() string { return "work_areas" }
