package model

// Violation notification types.
const (
	NotificationWarning      = "WARNING"
	NotificationAutoClockout = "AUTO_CLOCKOUT"
)

// ShiftViolationNotification maps to shift_violation_notifications.
// Append-only: after creation only IsRead and IsDelivered ever change.
type ShiftViolationNotification struct {
	NotificationID       string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	ShiftID              string   `gorm:"type:uuid;not null"                             json:"shift_id"`
	UserID               string   `gorm:"type:uuid;not null"                             json:"user_id"`
	NotificationType     string   `gorm:"type:varchar(20);not null"                      json:"notification_type"`
	Message              string   `gorm:"type:varchar(500);not null"                     json:"message"`
	Latitude             *float64 `json:"latitude,omitempty"`
	Longitude            *float64 `json:"longitude,omitempty"`
	DistanceFromWorkarea *float64 `json:"distance_from_workarea,omitempty"`
	IsRead               bool     `gorm:"not null;default:false"                         json:"is_read"`
	IsDelivered          bool     `gorm:"not null;default:false"                         json:"is_delivered"`
	BaseModel

	Shift *Shift `gorm:"foreignKey:ShiftID;references:ShiftID" json:"shift,omitempty"`
	User  *User  `gorm:"foreignKey:UserID;references:UserID"   json:"user,omitempty"`
}

// TableName sets the table name.
func (ShiftViolationNotification) TableName() string { return "shift_violation_notifications" }
