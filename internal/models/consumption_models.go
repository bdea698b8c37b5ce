package models

import "time"

// ServiceItem is a catalog entry for ancillary charges (minibar, room
// service, treatments). Category is optional; uncategorized items are
// grouped under a fallback label only at report aggregation time.
type ServiceItem struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" binding:"required"`
	Category  *string   `json:"category,omitempty" db:"category"`
	UnitPrice float64   `json:"unit_price" db:"unit_price"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ConsumptionRecord is a charge consumed against a reservation. It is
// attributed to the timestamp it occurred on, never pro-rated across the
// stay like room revenue.
type ConsumptionRecord struct {
	ID            int64     `json:"id" db:"id"`
	ReservationID int64     `json:"reservation_id" db:"reservation_id" binding:"required"`
	ItemID        int64     `json:"item_id" db:"item_id" binding:"required"`
	ItemName      string    `json:"item_name,omitempty"`
	ItemCategory  *string   `json:"item_category,omitempty"`
	Quantity      int       `json:"quantity" db:"quantity"`
	TotalPrice    float64   `json:"total_price" db:"total_price"`
	ConsumedAt    time.Time `json:"consumed_at" db:"consumed_at"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// ConsumptionFilters defines the available filters for querying consumption records.
type ConsumptionFilters struct {
	ProfessionalID *int64     `form:"professional_id"`
	ReservationID  *int64     `form:"reservation_id"`
	DateFrom       *time.Time `form:"date_from"`
	DateTo         *time.Time `form:"date_to"`
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size"`
}
