package models

import "time"

// Room represents a bookable unit (hotel room, treatment room, cabin)
// belonging to a professional. Only active rooms count toward occupancy
// denominators in reports.
type Room struct {
	ID             int64     `json:"id" db:"id"`
	ProfessionalID int64     `json:"professional_id" db:"professional_id" binding:"required"`
	RoomNumber     string    `json:"room_number" db:"room_number" binding:"required"`
	RoomType       *string   `json:"room_type,omitempty" db:"room_type"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// RoomFilters defines the available filters for querying rooms.
type RoomFilters struct {
	ProfessionalID *int64  `form:"professional_id"`
	ActiveOnly     bool    `form:"active_only"`
	RoomType       *string `form:"room_type"`
}
