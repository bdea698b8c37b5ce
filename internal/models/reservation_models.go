package models

import "time"

// ReservationStatus defines the type for reservation statuses.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCheckedIn ReservationStatus = "checked-in"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusNoShow    ReservationStatus = "no-show"
)

// IsValidReservationStatus checks if the provided status string is a valid ReservationStatus.
func IsValidReservationStatus(status string) bool {
	switch ReservationStatus(status) {
	case ReservationStatusPending,
		ReservationStatusConfirmed,
		ReservationStatusCheckedIn,
		ReservationStatusCompleted,
		ReservationStatusCancelled,
		ReservationStatusNoShow:
		return true
	default:
		return false
	}
}

// Reservation represents a guest stay against a room. CheckOut is an
// exclusive upper bound: the check-out day itself is not an occupied night.
type Reservation struct {
	ID          int64     `json:"id" db:"id"`
	RoomID      int64     `json:"room_id" db:"room_id" binding:"required"`
	GuestName   string    `json:"guest_name" db:"guest_name" binding:"required"`
	CheckIn     time.Time `json:"check_in" db:"check_in" binding:"required"`
	CheckOut    time.Time `json:"check_out" db:"check_out" binding:"required"`
	TotalAmount *float64  `json:"total_amount,omitempty" db:"total_amount"`
	Guests      *int      `json:"guests,omitempty" db:"guests"`
	Status      string    `json:"status" db:"status"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	Room        *Room     `json:"room,omitempty"` // For joining with Room details
}

// ReservationFilters defines the available filters for querying reservations.
type ReservationFilters struct {
	ProfessionalID *int64     `form:"professional_id"`
	RoomID         *int64     `form:"room_id"`
	Status         *string    `form:"status"`
	DateFrom       *time.Time `form:"date_from"` // Expect YYYY-MM-DD, compared against check_in
	DateTo         *time.Time `form:"date_to"`
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size"`
}
