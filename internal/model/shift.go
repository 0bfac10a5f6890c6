package model

import "time"

// Violation counter states. Once a shift reaches ViolationTerminated it is
// terminal: no field changes again except notification read/delivered flags.
const (
	ViolationNone       = 0 // compliant
	ViolationWarned     = 1 // warned, may still recover
	ViolationTerminated = 2 // auto-clocked-out
)

// Shift maps to shifts. One row per clock-in.
//
// Version implements optimistic locking: the evaluator and the heartbeat path
// may race on the same row, and the loser of a conflicting write observes
// errs.ErrOptimisticLock instead of silently overwriting.
type Shift struct {
	ShiftID            string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	UserID             string     `gorm:"type:uuid;not null"                             json:"user_id"`
	CompanyID          string     `gorm:"type:uuid;not null"                             json:"company_id"`
	WorkAreaID         *string    `gorm:"type:uuid"                                      json:"work_area_id,omitempty"`
	Location           string     `gorm:"type:varchar(200);not null;default:''"          json:"location"`
	StartTime          time.Time  `gorm:"not null"                                       json:"start_time"`
	EndTime            *time.Time `json:"end_time,omitempty"`
	Hours              *float64   `json:"hours,omitempty"`
	IsActiveShift      bool       `gorm:"not null;default:false"                         json:"is_active_shift"`
	CheckInLatitude    *float64   `json:"check_in_latitude,omitempty"`
	CheckInLongitude   *float64   `json:"check_in_longitude,omitempty"`
	CurrentLatitude    *float64   `json:"current_latitude,omitempty"`
	CurrentLongitude   *float64   `json:"current_longitude,omitempty"`
	LastLocationCheck  *time.Time `json:"last_location_check,omitempty"`
	ViolationCount     int        `gorm:"not null;default:0"                             json:"violation_count"`
	FirstViolationTime *time.Time `json:"first_violation_time,omitempty"`
	AutoClockedOut     bool       `gorm:"not null;default:false"                         json:"auto_clocked_out"`
	AutoClockoutReason *string    `gorm:"type:varchar(255)"                              json:"auto_clockout_reason,omitempty"`
	Version            int        `gorm:"not null;default:1"                             json:"version"`
	BaseModel

	User     *User     `gorm:"foreignKey:UserID;references:UserID"         json:"user,omitempty"`
	Company  *Company  `gorm:"foreignKey:CompanyID;references:CompanyID"   json:"company,omitempty"`
	WorkArea *WorkArea `gorm:"foreignKey:WorkAreaID;references:WorkAreaID" json:"work_area,omitempty"`
}

// TableName sets the table name.
func (Shift) TableName() string { return "shifts" }

// Terminal reports whether the shift has been escalated to auto-clockout.
func (s *Shift) Terminal() bool { return s.ViolationCount >= ViolationTerminated }
