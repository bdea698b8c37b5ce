package services

import (
	"testing"
	"time"

	"multibook_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func sptr(v string) *string   { return &v }

func stay(roomID int64, checkIn, checkOut time.Time, total *float64, guests *int) models.Reservation {
	return models.Reservation{
		RoomID:      roomID,
		GuestName:   "Guest",
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		TotalAmount: total,
		Guests:      guests,
		Status:      string(models.ReservationStatusConfirmed),
	}
}

func TestStayNights(t *testing.T) {
	assert.Equal(t, 2, stayNights(stay(1, day(2024, 1, 1), day(2024, 1, 3), nil, nil)))
	assert.Equal(t, 1, stayNights(stay(1, day(2024, 1, 1), day(2024, 1, 2), nil, nil)))

	// Malformed intervals yield zero nights instead of failing.
	assert.Equal(t, 0, stayNights(stay(1, day(2024, 1, 3), day(2024, 1, 3), nil, nil)))
	assert.Equal(t, 0, stayNights(stay(1, day(2024, 1, 3), day(2024, 1, 1), nil, nil)))
}

func TestOccupiesNight_CheckOutDayIsFree(t *testing.T) {
	res := stay(1, day(2024, 1, 1), day(2024, 1, 3), nil, nil)

	assert.True(t, occupiesNight(res, day(2024, 1, 1)))
	assert.True(t, occupiesNight(res, day(2024, 1, 2)))
	assert.False(t, occupiesNight(res, day(2024, 1, 3)))
	assert.False(t, occupiesNight(res, day(2023, 12, 31)))
}

func TestNightsWithinWindow_ClipsToWindow(t *testing.T) {
	res := stay(1, day(2024, 1, 1), day(2024, 1, 10), nil, nil)

	assert.Equal(t, 9, nightsWithinWindow(res, day(2024, 1, 1), day(2024, 1, 31)))
	assert.Equal(t, 5, nightsWithinWindow(res, day(2024, 1, 5), day(2024, 1, 31)))
	assert.Equal(t, 3, nightsWithinWindow(res, day(2024, 1, 1), day(2024, 1, 3)))
	assert.Equal(t, 0, nightsWithinWindow(res, day(2024, 2, 1), day(2024, 2, 28)))
}

func TestBuildDailySeries_SingleReservation(t *testing.T) {
	reservations := []models.Reservation{
		stay(1, day(2024, 1, 1), day(2024, 1, 3), fptr(200), iptr(2)),
	}

	points := buildDailySeries(reservations, day(2024, 1, 1), day(2024, 1, 3), 1)
	require.Len(t, points, 3)

	assert.Equal(t, "2024-01-01", points[0].Date)
	assert.Equal(t, 100, points[0].OccupancyPercentage)
	assert.Equal(t, 100.0, points[0].Revenue)

	assert.Equal(t, "2024-01-02", points[1].Date)
	assert.Equal(t, 100, points[1].OccupancyPercentage)
	assert.Equal(t, 100.0, points[1].Revenue)

	// The check-out day carries no occupancy and no revenue.
	assert.Equal(t, "2024-01-03", points[2].Date)
	assert.Equal(t, 0, points[2].OccupancyPercentage)
	assert.Equal(t, 0.0, points[2].Revenue)
}

func TestBuildDailySeries_OverCapacityNotClamped(t *testing.T) {
	reservations := []models.Reservation{
		stay(1, day(2024, 1, 1), day(2024, 1, 2), fptr(100), nil),
		stay(2, day(2024, 1, 1), day(2024, 1, 2), fptr(100), nil),
		stay(1, day(2024, 1, 1), day(2024, 1, 2), fptr(100), nil),
	}

	points := buildDailySeries(reservations, day(2024, 1, 1), day(2024, 1, 1), 2)
	require.Len(t, points, 1)
	assert.Equal(t, 150, points[0].OccupancyPercentage)
}

func TestBuildDailySeries_ZeroRooms(t *testing.T) {
	reservations := []models.Reservation{
		stay(1, day(2024, 1, 1), day(2024, 1, 2), fptr(100), nil),
	}

	points := buildDailySeries(reservations, day(2024, 1, 1), day(2024, 1, 1), 0)
	require.Len(t, points, 1)
	assert.Equal(t, 0, points[0].OccupancyPercentage)
	assert.Equal(t, 100.0, points[0].Revenue)
}

func TestBuildDailySeries_NilAmountAndMalformedInterval(t *testing.T) {
	reservations := []models.Reservation{
		stay(1, day(2024, 1, 1), day(2024, 1, 2), nil, nil),          // no amount
		stay(2, day(2024, 1, 1), day(2024, 1, 1), fptr(500), nil),    // zero nights
		stay(3, day(2024, 1, 1), day(2024, 1, 2), fptr(80), iptr(1)), // normal
	}

	points := buildDailySeries(reservations, day(2024, 1, 1), day(2024, 1, 1), 3)
	require.Len(t, points, 1)
	// Only the well-formed paid reservation contributes revenue; the nil
	// amount still counts as occupancy, the zero-night one does not.
	assert.Equal(t, 67, points[0].OccupancyPercentage)
	assert.Equal(t, 80.0, points[0].Revenue)
}

func TestBuildDailySeries_RevenueConservation(t *testing.T) {
	total := 301.0 // does not divide evenly by 3 nights
	reservations := []models.Reservation{
		stay(1, day(2024, 1, 1), day(2024, 1, 4), fptr(total), nil),
	}

	points := buildDailySeries(reservations, day(2024, 1, 1), day(2024, 1, 4), 1)
	var sum float64
	for _, p := range points {
		sum += p.Revenue
	}
	// Per-day rounding keeps the series within a rounding unit per day of
	// the reservation total.
	assert.InDelta(t, total, sum, float64(len(points))*0.5)
}

func TestAggregateConsumption_FallbackAndOrder(t *testing.T) {
	records := []models.ConsumptionRecord{
		{ItemCategory: sptr("Spa"), TotalPrice: 40, ConsumedAt: day(2024, 1, 2)},
		{ItemCategory: nil, TotalPrice: 10, ConsumedAt: day(2024, 1, 2)},
		{ItemCategory: sptr("Bar"), TotalPrice: 25, ConsumedAt: day(2024, 1, 3)},
		{ItemCategory: sptr("Spa"), TotalPrice: 60, ConsumedAt: day(2024, 1, 4)},
		{ItemCategory: sptr(""), TotalPrice: 5, ConsumedAt: day(2024, 1, 4)},
	}

	buckets := aggregateConsumption(records, day(2024, 1, 1), day(2024, 1, 31))
	require.Len(t, buckets, 3)

	// Buckets keep first-observed order; nil and empty categories share the
	// fallback label.
	assert.Equal(t, "Spa", buckets[0].Category)
	assert.Equal(t, 100.0, buckets[0].Total)
	assert.Equal(t, "Other", buckets[1].Category)
	assert.Equal(t, 15.0, buckets[1].Total)
	assert.Equal(t, "Bar", buckets[2].Category)
	assert.Equal(t, 25.0, buckets[2].Total)
}

func TestAggregateConsumption_WindowBoundaries(t *testing.T) {
	records := []models.ConsumptionRecord{
		{ItemCategory: sptr("Bar"), TotalPrice: 10, ConsumedAt: day(2024, 1, 1)},
		{ItemCategory: sptr("Bar"), TotalPrice: 20, ConsumedAt: time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)},
		{ItemCategory: sptr("Bar"), TotalPrice: 99, ConsumedAt: day(2023, 12, 31)},
		{ItemCategory: sptr("Bar"), TotalPrice: 99, ConsumedAt: day(2024, 2, 1)},
	}

	buckets := aggregateConsumption(records, day(2024, 1, 1), day(2024, 1, 31))
	require.Len(t, buckets, 1)
	// A charge late on the last window day is still inside the window.
	assert.Equal(t, 30.0, buckets[0].Total)
}

func TestAggregateConsumption_Empty(t *testing.T) {
	buckets := aggregateConsumption(nil, day(2024, 1, 1), day(2024, 1, 31))
	assert.Empty(t, buckets)
	assert.NotNil(t, buckets)
}

func TestBuildSummary(t *testing.T) {
	reservations := []models.Reservation{
		stay(1, day(2024, 1, 1), day(2024, 1, 3), fptr(200), iptr(2)),
		stay(2, day(2024, 1, 5), day(2024, 1, 6), fptr(100), iptr(1)),
		stay(1, day(2024, 1, 10), day(2024, 1, 11), nil, nil),
	}
	records := []models.ConsumptionRecord{
		{TotalPrice: 45.5, ConsumedAt: day(2024, 1, 2)},
		{TotalPrice: 10, ConsumedAt: day(2024, 2, 2)}, // outside window
	}

	summary := buildSummary(reservations, records, day(2024, 1, 1), day(2024, 1, 10), 2)

	assert.Equal(t, 3, summary.TotalReservations)
	assert.Equal(t, 300.0, summary.TotalRevenue)
	assert.Equal(t, 3, summary.TotalGuests)
	assert.Equal(t, 100.0, summary.AverageDailyRate)
	assert.Equal(t, 45.5, summary.ConsumptionRevenue)

	// 2+1+1 occupied nights (the Jan 10 night falls on the window edge and
	// counts) across 2 rooms * 10 days.
	assert.Equal(t, 20.0, summary.OccupancyRate)
}

func TestBuildSummary_EmptyInputs(t *testing.T) {
	summary := buildSummary(nil, nil, day(2024, 1, 1), day(2024, 1, 31), 0)

	assert.Equal(t, 0, summary.TotalReservations)
	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.Equal(t, 0.0, summary.AverageDailyRate)
	assert.Equal(t, 0.0, summary.OccupancyRate)
	assert.Equal(t, 0.0, summary.ConsumptionRevenue)
}

func TestMonthWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	first, last := monthWindow(now, 0)
	assert.Equal(t, day(2024, 3, 1), first)
	assert.Equal(t, day(2024, 3, 31), last)

	// Leap February.
	first, last = monthWindow(now, 1)
	assert.Equal(t, day(2024, 2, 1), first)
	assert.Equal(t, day(2024, 2, 29), last)

	// Non-leap February.
	first, last = monthWindow(time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), 1)
	assert.Equal(t, day(2023, 2, 1), first)
	assert.Equal(t, day(2023, 2, 28), last)

	// Year boundary.
	first, last = monthWindow(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 1)
	assert.Equal(t, day(2023, 12, 1), first)
	assert.Equal(t, day(2023, 12, 31), last)
}

func TestBuildMonthlySummary(t *testing.T) {
	reservations := []models.Reservation{
		stay(1, day(2024, 2, 1), day(2024, 2, 3), fptr(150), iptr(2)),
		stay(2, day(2024, 2, 10), day(2024, 2, 12), fptr(250), nil),
	}

	summary := buildMonthlySummary("February 2024", reservations)

	assert.Equal(t, "February 2024", summary.Month)
	assert.Equal(t, 2, summary.Reservations)
	assert.Equal(t, 400.0, summary.Revenue)
	assert.Equal(t, 2, summary.Guests)
	assert.Equal(t, 200.0, summary.AverageDailyRate)
}

func TestBuildMonthlySummary_Empty(t *testing.T) {
	summary := buildMonthlySummary("March 2024", nil)

	assert.Equal(t, "March 2024", summary.Month)
	assert.Equal(t, 0, summary.Reservations)
	assert.Equal(t, 0.0, summary.AverageDailyRate)
}
