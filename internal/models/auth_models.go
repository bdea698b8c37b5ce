package models

import "time"

// User represents an account that can sign in to the backend.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username" db:"username"`
	PasswordHash   string    `json:"-" db:"password_hash"` // '-' means don't send in JSON response
	Email          *string   `json:"email,omitempty" db:"email"`
	FullName       *string   `json:"full_name,omitempty" db:"full_name"`
	Role           string    `json:"role" db:"role"` // e.g., "admin", "professional"
	ProfessionalID *int64    `json:"professional_id,omitempty" db:"professional_id"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Professional represents a tenant (hotel, clinic, salon) owning rooms and
// reservations. Users are attached to a professional through ProfessionalID.
type Professional struct {
	ID           int64     `json:"id"`
	BusinessName string    `json:"business_name" db:"business_name"`
	Sector       string    `json:"sector" db:"sector"` // hospitality, health, beauty
	Email        *string   `json:"email,omitempty" db:"email"`
	PhoneNumber  *string   `json:"phone_number,omitempty" db:"phone_number"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// User roles recognized by the authorization middleware.
const (
	RoleAdmin        = "admin"
	RoleProfessional = "professional"
	RoleStaff        = "staff"
)
