package services

import (
	"errors"
	"fmt"
	"time"

	"multibook_backend/internal/models"
	"multibook_backend/internal/repositories"
)

// --- Custom Service Errors for Reporting ---
var (
	ErrReportValidation = errors.New("report request validation error")
	ErrReportData       = errors.New("failed to load report source data")
)

// Clock supplies the current instant. It is injected so that window
// defaults and the monthly rollup can be pinned to fixed dates in tests.
type Clock func() time.Time

const (
	defaultWindowDays = 30
	trailingMonths    = 6
)

// --- Report DTOs ---
type OccupancyReportRequest struct {
	ProfessionalID int64
	StartDate      string // optional, YYYY-MM-DD
	EndDate        string // optional, YYYY-MM-DD
}

// --- ReportService Interface ---
type ReportService interface {
	GenerateOccupancyReport(req OccupancyReportRequest) (*models.OccupancyReport, error)
}

// --- reportService Implementation ---
type reportService struct {
	reportRepo repositories.ReportRepository
	clock      Clock
}

// NewReportService creates a new instance of ReportService. A nil clock
// falls back to time.Now.
func NewReportService(reportRepo repositories.ReportRepository, clock Clock) ReportService {
	if clock == nil {
		clock = time.Now
	}
	return &reportService{reportRepo: reportRepo, clock: clock}
}

// resolveWindow validates the optional window bounds and applies the
// trailing-30-day default. Both bounds are inclusive calendar days.
func (s *reportService) resolveWindow(req OccupancyReportRequest) (time.Time, time.Time, error) {
	now := dateOnly(s.clock())
	start := now.AddDate(0, 0, -defaultWindowDays)
	end := now

	if req.StartDate != "" {
		parsed, err := time.Parse(reportDateLayout, req.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start_date %q, expected YYYY-MM-DD", ErrReportValidation, req.StartDate)
		}
		start = dateOnly(parsed)
	}
	if req.EndDate != "" {
		parsed, err := time.Parse(reportDateLayout, req.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end_date %q, expected YYYY-MM-DD", ErrReportValidation, req.EndDate)
		}
		end = dateOnly(parsed)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date must not precede start_date", ErrReportValidation)
	}
	return start, end, nil
}

// GenerateOccupancyReport validates the request, fetches a snapshot of the
// source records, and composes the full report. Validation fails before
// any retrieval; any retrieval failure aborts the whole report (no partial
// result is assembled). The computation itself is a pure function of the
// fetched snapshot, so identical inputs over unchanged data yield
// identical reports.
func (s *reportService) GenerateOccupancyReport(req OccupancyReportRequest) (*models.OccupancyReport, error) {
	if req.ProfessionalID <= 0 {
		return nil, fmt.Errorf("%w: professional identifier is required", ErrReportValidation)
	}
	start, end, err := s.resolveWindow(req)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reportRepo.GetReservationsForRange(req.ProfessionalID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: reservations: %v", ErrReportData, err)
	}
	rooms, err := s.reportRepo.GetActiveRooms(req.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("%w: rooms: %v", ErrReportData, err)
	}
	records, err := s.reportRepo.GetConsumptionForRange(req.ProfessionalID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: consumption: %v", ErrReportData, err)
	}

	activeRooms := len(rooms)
	report := &models.OccupancyReport{
		Summary:               buildSummary(reservations, records, start, end, activeRooms),
		DailyOccupancy:        buildDailySeries(reservations, start, end, activeRooms),
		ConsumptionByCategory: aggregateConsumption(records, start, end),
		MonthlyBreakdown:      make([]models.MonthlySummary, 0, trailingMonths),
		Reservations:          reservations,
		ConsumptionRecords:    records,
	}

	// Trailing 6 calendar months, oldest first, current month last.
	now := s.clock()
	for i := trailingMonths - 1; i >= 0; i-- {
		monthStart, monthEnd := monthWindow(now, i)
		monthReservations, err := s.reportRepo.GetReservationsForRange(req.ProfessionalID, monthStart, monthEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: monthly rollup: %v", ErrReportData, err)
		}
		report.MonthlyBreakdown = append(report.MonthlyBreakdown,
			buildMonthlySummary(monthStart.Format(monthLabelLayout), monthReservations))
	}

	return report, nil
}
