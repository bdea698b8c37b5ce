package services

import (
	"math"
	"time"

	"multibook_backend/internal/models"
)

const (
	reportDateLayout = "2006-01-02"
	monthLabelLayout = "January 2006"

	// fallbackCategory groups consumption of items without a category.
	fallbackCategory = "Other"
)

// dateOnly normalizes an instant to midnight UTC so interval arithmetic
// works on whole calendar days.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// stayNights returns the nights a reservation spans. Malformed intervals
// (check-out not strictly after check-in) yield 0 and are thereby excluded
// from night-based allocations instead of failing the report.
func stayNights(res models.Reservation) int {
	nights := int(dateOnly(res.CheckOut).Sub(dateOnly(res.CheckIn)).Hours() / 24)
	if nights < 0 {
		return 0
	}
	return nights
}

// occupiesNight reports whether the reservation occupies the night of day.
// The check-out day itself is not an occupied night.
func occupiesNight(res models.Reservation, day time.Time) bool {
	return !day.Before(dateOnly(res.CheckIn)) && day.Before(dateOnly(res.CheckOut))
}

// nightsWithinWindow counts the reservation's stay-nights that fall inside
// [start, end] inclusive.
func nightsWithinWindow(res models.Reservation, start, end time.Time) int {
	from := dateOnly(res.CheckIn)
	if from.Before(start) {
		from = start
	}
	to := dateOnly(res.CheckOut) // exclusive bound
	windowEndExclusive := end.AddDate(0, 0, 1)
	if to.After(windowEndExclusive) {
		to = windowEndExclusive
	}
	nights := int(to.Sub(from).Hours() / 24)
	if nights < 0 {
		return 0
	}
	return nights
}

// daysInWindow is the inclusive day count of [start, end], at least 1.
func daysInWindow(start, end time.Time) int {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// buildDailySeries walks each calendar day of [start, end] inclusive and
// produces the occupancy percentage and pro-rated revenue for that day.
// Revenue accumulates in full precision and is rounded once per day at
// output; occupancy is not clamped above 100 on over-booked days.
func buildDailySeries(reservations []models.Reservation, start, end time.Time, activeRooms int) []models.DailyOccupancyPoint {
	points := []models.DailyOccupancyPoint{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		occupied := 0
		revenue := 0.0
		for _, res := range reservations {
			if !occupiesNight(res, day) {
				continue
			}
			occupied++
			nights := stayNights(res)
			if nights < 1 || res.TotalAmount == nil {
				continue
			}
			revenue += *res.TotalAmount / float64(nights)
		}

		percentage := 0
		if activeRooms > 0 {
			percentage = int(math.Round(float64(occupied) / float64(activeRooms) * 100))
		}
		points = append(points, models.DailyOccupancyPoint{
			Date:                day.Format(reportDateLayout),
			OccupancyPercentage: percentage,
			Revenue:             math.Round(revenue),
		})
	}
	return points
}

// aggregateConsumption buckets consumption totals by category label for
// records whose timestamp falls within the window (whole boundary days
// included). Buckets keep first-observed order; items without a category
// resolve to the fallback label here and nowhere earlier.
func aggregateConsumption(records []models.ConsumptionRecord, start, end time.Time) []models.CategoryConsumption {
	windowEndExclusive := end.AddDate(0, 0, 1)
	buckets := []models.CategoryConsumption{}
	index := map[string]int{}

	for _, record := range records {
		if record.ConsumedAt.Before(start) || !record.ConsumedAt.Before(windowEndExclusive) {
			continue
		}
		label := fallbackCategory
		if record.ItemCategory != nil && *record.ItemCategory != "" {
			label = *record.ItemCategory
		}
		if i, ok := index[label]; ok {
			buckets[i].Total += record.TotalPrice
		} else {
			index[label] = len(buckets)
			buckets = append(buckets, models.CategoryConsumption{Category: label, Total: record.TotalPrice})
		}
	}
	return buckets
}

// buildSummary derives the headline metrics directly from the raw record
// sets. The caller passes reservations already scoped to check-ins inside
// [start, end]; totals count every reservation given without re-filtering.
// Amounts and guest counts default to zero when absent; divisions are
// guarded so empty windows and zero-room properties never fault.
func buildSummary(reservations []models.Reservation, records []models.ConsumptionRecord, start, end time.Time, activeRooms int) models.ReportSummary {
	var totalRevenue, consumptionRevenue float64
	totalGuests := 0
	occupiedNights := 0

	for _, res := range reservations {
		if res.TotalAmount != nil {
			totalRevenue += *res.TotalAmount
		}
		if res.Guests != nil {
			totalGuests += *res.Guests
		}
		occupiedNights += nightsWithinWindow(res, start, end)
	}

	windowEndExclusive := end.AddDate(0, 0, 1)
	for _, record := range records {
		if record.ConsumedAt.Before(start) || !record.ConsumedAt.Before(windowEndExclusive) {
			continue
		}
		consumptionRevenue += record.TotalPrice
	}

	summary := models.ReportSummary{
		TotalReservations:  len(reservations),
		TotalRevenue:       round2(totalRevenue),
		TotalGuests:        totalGuests,
		ConsumptionRevenue: round2(consumptionRevenue),
	}
	if len(reservations) > 0 {
		summary.AverageDailyRate = round2(totalRevenue / float64(len(reservations)))
	}
	if activeRooms > 0 {
		capacity := float64(activeRooms * daysInWindow(start, end))
		summary.OccupancyRate = round2(float64(occupiedNights) / capacity * 100)
	}
	return summary
}

// monthWindow returns the first and last calendar day of the month that is
// monthsAgo months before now. The last day comes from first-of-next-month
// minus one day, so varying month lengths and leap February resolve
// correctly.
func monthWindow(now time.Time, monthsAgo int) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -monthsAgo, 0)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// buildMonthlySummary rolls one month's reservations into a summary row.
func buildMonthlySummary(label string, reservations []models.Reservation) models.MonthlySummary {
	var revenue float64
	guests := 0
	for _, res := range reservations {
		if res.TotalAmount != nil {
			revenue += *res.TotalAmount
		}
		if res.Guests != nil {
			guests += *res.Guests
		}
	}

	summary := models.MonthlySummary{
		Month:        label,
		Reservations: len(reservations),
		Revenue:      round2(revenue),
		Guests:       guests,
	}
	if len(reservations) > 0 {
		summary.AverageDailyRate = round2(revenue / float64(len(reservations)))
	}
	return summary
}
