package dto

import "time"

// NotificationResponse is the public violation notification representation.
type NotificationResponse struct {
	ID                   string    `json:"id"`
	ShiftID              string    `json:"shift_id"`
	NotificationType     string    `json:"notification_type"`
	Message              string    `json:"message"`
	Latitude             *float64  `json:"latitude,omitempty"`
	Longitude            *float64  `json:"longitude,omitempty"`
	DistanceFromWorkarea *float64  `json:"distance_from_workarea,omitempty"`
	IsRead               bool      `json:"is_read"`
	CreatedAt            time.Time `json:"created_at"`
}
