package dto

import "time"

// StartShiftRequest clocks the caller in at a work area.
type StartShiftRequest struct {
	WorkAreaID string   `json:"work_area_id" binding:"required,uuid"`
	Latitude   *float64 `json:"latitude"     binding:"required,min=-90,max=90"`
	Longitude  *float64 `json:"longitude"    binding:"required,min=-180,max=180"`
}

// HeartbeatRequest is a periodic location report for the caller's active
// shift. Timestamp is advisory only; server time is authoritative.
// Coordinates are pointers: zero is a valid latitude and longitude, and a
// value binding would reject reports from the equator or prime meridian.
type HeartbeatRequest struct {
	Latitude  *float64   `json:"latitude"  binding:"required,min=-90,max=90"`
	Longitude *float64   `json:"longitude" binding:"required,min=-180,max=180"`
	Timestamp *time.Time `json:"timestamp"`
}

// ShiftResponse is the public shift representation.
type ShiftResponse struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	WorkAreaID         *string    `json:"work_area_id,omitempty"`
	Location           string     `json:"location"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            *time.Time `json:"end_time,omitempty"`
	Hours              *float64   `json:"hours,omitempty"`
	IsActiveShift      bool       `json:"is_active_shift"`
	CurrentLatitude    *float64   `json:"current_latitude,omitempty"`
	CurrentLongitude   *float64   `json:"current_longitude,omitempty"`
	LastLocationCheck  *time.Time `json:"last_location_check,omitempty"`
	ViolationCount     int        `json:"violation_count"`
	AutoClockedOut     bool       `json:"auto_clocked_out"`
	AutoClockoutReason *string    `json:"auto_clockout_reason,omitempty"`
}

// SweepResultResponse summarizes one compliance sweep.
type SweepResultResponse struct {
	Processed int      `json:"processed"`
	Errors    []string `json:"errors,omitempty"`
}
