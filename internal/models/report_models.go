package models

// DailyOccupancyPoint is one day of the occupancy/revenue series.
// OccupancyPercentage is rounded to the nearest whole number and is not
// clamped: an over-booked day reads above 100. Revenue is the pro-rated
// room revenue allocated to that date, rounded to the nearest unit.
type DailyOccupancyPoint struct {
	Date                string  `json:"date"` // YYYY-MM-DD
	OccupancyPercentage int     `json:"occupancy_percentage"`
	Revenue             float64 `json:"revenue"`
}

// CategoryConsumption is the summed consumption for one category label
// within the report window. Uncategorized items fall under "Other".
type CategoryConsumption struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MonthlySummary is one calendar month of the trailing rollup.
type MonthlySummary struct {
	Month            string  `json:"month"` // e.g., "January 2024"
	Reservations     int     `json:"reservations"`
	Revenue          float64 `json:"revenue"`
	Guests           int     `json:"guests"`
	AverageDailyRate float64 `json:"average_daily_rate"`
}

// ReportSummary holds the headline metrics for the report window. These are
// computed directly from the raw record sets, independently of the daily
// series, and reconcile with it.
type ReportSummary struct {
	TotalReservations  int     `json:"total_reservations"`
	TotalRevenue       float64 `json:"total_revenue"`
	TotalGuests        int     `json:"total_guests"`
	AverageDailyRate   float64 `json:"average_daily_rate"`
	OccupancyRate      float64 `json:"occupancy_rate"` // percent, 2 decimals
	ConsumptionRevenue float64 `json:"consumption_revenue"`
}

// OccupancyReport is the full report payload: headline summary, the daily
// occupancy/revenue series, category consumption buckets, the trailing
// 6-month rollup, and raw record echoes for drill-down.
type OccupancyReport struct {
	Summary               ReportSummary         `json:"summary"`
	DailyOccupancy        []DailyOccupancyPoint `json:"daily_occupancy"`
	ConsumptionByCategory []CategoryConsumption `json:"consumption_by_category"`
	MonthlyBreakdown      []MonthlySummary      `json:"monthly_breakdown"`
	Reservations          []Reservation         `json:"reservations"`
	ConsumptionRecords    []ConsumptionRecord   `json:"consumption_records"`
}

// ReportResponse is the wire envelope for report endpoints.
type ReportResponse struct {
	Success bool             `json:"success"`
	Data    *OccupancyReport `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
}
