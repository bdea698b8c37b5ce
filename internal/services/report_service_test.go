package services

import (
	"errors"
	"testing"
	"time"

	"multibook_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReportRepository struct {
	mock.Mock
}

func (m *mockReportRepository) GetReservationsForRange(professionalID int64, start, end time.Time) ([]models.Reservation, error) {
	args := m.Called(professionalID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *mockReportRepository) GetActiveRooms(professionalID int64) ([]models.Room, error) {
	args := m.Called(professionalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *mockReportRepository) GetConsumptionForRange(professionalID int64, start, end time.Time) ([]models.ConsumptionRecord, error) {
	args := m.Called(professionalID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsumptionRecord), args.Error(1)
}

// fixedClock pins the report service to 2024-03-15 so window defaults and
// the monthly rollup are deterministic.
func fixedClock() time.Time {
	return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
}

func expectMonthlyFetches(repo *mockReportRepository, professionalID int64) {
	for i := 0; i < 6; i++ {
		monthStart, monthEnd := monthWindow(fixedClock(), i)
		repo.On("GetReservationsForRange", professionalID, monthStart, monthEnd).
			Return([]models.Reservation{}, nil)
	}
}

func TestGenerateOccupancyReport_RequiresProfessionalID(t *testing.T) {
	repo := new(mockReportRepository)
	svc := NewReportService(repo, fixedClock)

	_, err := svc.GenerateOccupancyReport(OccupancyReportRequest{ProfessionalID: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportValidation)
	repo.AssertNotCalled(t, "GetReservationsForRange", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateOccupancyReport_RejectsMalformedDates(t *testing.T) {
	repo := new(mockReportRepository)
	svc := NewReportService(repo, fixedClock)

	_, err := svc.GenerateOccupancyReport(OccupancyReportRequest{
		ProfessionalID: 7,
		StartDate:      "01-01-2024",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportValidation)

	_, err = svc.GenerateOccupancyReport(OccupancyReportRequest{
		ProfessionalID: 7,
		EndDate:        "not-a-date",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportValidation)

	repo.AssertNotCalled(t, "GetReservationsForRange", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateOccupancyReport_RejectsInvertedWindow(t *testing.T) {
	repo := new(mockReportRepository)
	svc := NewReportService(repo, fixedClock)

	_, err := svc.GenerateOccupancyReport(OccupancyReportRequest{
		ProfessionalID: 7,
		StartDate:      "2024-02-10",
		EndDate:        "2024-02-01",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportValidation)
}

func TestGenerateOccupancyReport_DefaultsToTrailingThirtyDays(t *testing.T) {
	repo := new(mockReportRepository)
	svc := NewReportService(repo, fixedClock)

	start := day(2024, 2, 14) // 30 days before the pinned clock
	end := day(2024, 3, 15)

	repo.On("GetReservationsForRange", int64(7), start, end).Return([]models.Reservation{}, nil)
	repo.On("GetActiveRooms", int64(7)).Return([]models.Room{}, nil)
	repo.On("GetConsumptionForRange", int64(7), start, end).Return([]models.ConsumptionRecord{}, nil)
	expectMonthlyFetches(repo, 7)

	report, err := svc.GenerateOccupancyReport(OccupancyReportRequest{ProfessionalID: 7})
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Len(t, report.DailyOccupancy, 31)
	assert.Equal(t, "2024-02-14", report.DailyOccupancy[0].Date)
	assert.Equal(t, "2024-03-15", report.DailyOccupancy[30].Date)
	repo.AssertExpectations(t)
}

func TestGenerateOccupancyReport_AbortsOnDataFailure(t *testing.T) {
	repo := new(mockReportRepository)
	svc := NewReportService(repo, fixedClock)

	start := day(2024, 3, 1)
	end := day(2024, 3, 2)
	repo.On("GetReservationsForRange", int64(7), start, end).
		Return(nil, errors.New("connection refused"))

	report, err := svc.GenerateOccupancyReport(OccupancyReportRequest{
		ProfessionalID: 7,
		StartDate:      "2024-03-01",
		EndDate:        "2024-03-02",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportData)
	assert.Nil(t, report)

	// No partial report is assembled after a failed fetch.
	repo.AssertNotCalled(t, "GetActiveRooms", mock.Anything)
	repo.AssertNotCalled(t, "GetConsumptionForRange", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateOccupancyReport_ComposesFullReport(t *testing.T) {
	repo := new(mockReportRepository)
	svc := NewReportService(repo, fixedClock)

	start := day(2024, 3, 1)
	end := day(2024, 3, 5)

	reservations := []models.Reservation{
		stay(1, day(2024, 3, 1), day(2024, 3, 3), fptr(200), iptr(2)),
	}
	rooms := []models.Room{
		{ID: 1, ProfessionalID: 7, RoomNumber: "101", IsActive: true},
		{ID: 2, ProfessionalID: 7, RoomNumber: "102", IsActive: true},
	}
	records := []models.ConsumptionRecord{
		{ItemCategory: sptr("Spa"), TotalPrice: 30, ConsumedAt: day(2024, 3, 2)},
	}

	repo.On("GetReservationsForRange", int64(7), start, end).Return(reservations, nil)
	repo.On("GetActiveRooms", int64(7)).Return(rooms, nil)
	repo.On("GetConsumptionForRange", int64(7), start, end).Return(records, nil)
	expectMonthlyFetches(repo, 7)

	report, err := svc.GenerateOccupancyReport(OccupancyReportRequest{
		ProfessionalID: 7,
		StartDate:      "2024-03-01",
		EndDate:        "2024-03-05",
	})
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, 1, report.Summary.TotalReservations)
	assert.Equal(t, 200.0, report.Summary.TotalRevenue)
	assert.Equal(t, 30.0, report.Summary.ConsumptionRevenue)
	assert.Len(t, report.DailyOccupancy, 5)
	assert.Equal(t, 50, report.DailyOccupancy[0].OccupancyPercentage)
	require.Len(t, report.ConsumptionByCategory, 1)
	assert.Equal(t, "Spa", report.ConsumptionByCategory[0].Category)

	// Trailing six months, oldest first, current month last.
	require.Len(t, report.MonthlyBreakdown, 6)
	assert.Equal(t, "October 2023", report.MonthlyBreakdown[0].Month)
	assert.Equal(t, "March 2024", report.MonthlyBreakdown[5].Month)

	assert.Equal(t, reservations, report.Reservations)
	assert.Equal(t, records, report.ConsumptionRecords)
	repo.AssertExpectations(t)
}

func TestGenerateOccupancyReport_MonthWindowMatchesRollup(t *testing.T) {
	repo := new(mockReportRepository)
	svc := NewReportService(repo, fixedClock)

	// A window covering exactly the current calendar month must reconcile
	// with that month's rollup entry: both are computed from the same fetch.
	start := day(2024, 3, 1)
	end := day(2024, 3, 31)

	reservations := []models.Reservation{
		stay(1, day(2024, 3, 2), day(2024, 3, 5), fptr(450), iptr(2)),
		stay(2, day(2024, 3, 10), day(2024, 3, 12), fptr(120.5), iptr(1)),
	}

	// One expectation serves both the window fetch and the current-month
	// rollup fetch, since their bounds coincide.
	repo.On("GetReservationsForRange", int64(7), start, end).Return(reservations, nil)
	repo.On("GetActiveRooms", int64(7)).Return([]models.Room{{ID: 1, IsActive: true}}, nil)
	repo.On("GetConsumptionForRange", int64(7), start, end).Return([]models.ConsumptionRecord{}, nil)
	for i := 1; i < 6; i++ {
		monthStart, monthEnd := monthWindow(fixedClock(), i)
		repo.On("GetReservationsForRange", int64(7), monthStart, monthEnd).
			Return([]models.Reservation{}, nil)
	}

	report, err := svc.GenerateOccupancyReport(OccupancyReportRequest{
		ProfessionalID: 7,
		StartDate:      "2024-03-01",
		EndDate:        "2024-03-31",
	})
	require.NoError(t, err)
	require.Len(t, report.MonthlyBreakdown, 6)

	current := report.MonthlyBreakdown[5]
	assert.Equal(t, "March 2024", current.Month)
	assert.Equal(t, report.Summary.TotalReservations, current.Reservations)
	assert.Equal(t, report.Summary.TotalRevenue, current.Revenue)
	assert.Equal(t, report.Summary.TotalGuests, current.Guests)
	assert.Equal(t, report.Summary.AverageDailyRate, current.AverageDailyRate)

	assert.Equal(t, 2, current.Reservations)
	assert.Equal(t, 570.5, current.Revenue)
	repo.AssertExpectations(t)
}

func TestGenerateOccupancyReport_Deterministic(t *testing.T) {
	repo := new(mockReportRepository)
	svc := NewReportService(repo, fixedClock)

	start := day(2024, 3, 1)
	end := day(2024, 3, 2)

	repo.On("GetReservationsForRange", int64(7), start, end).
		Return([]models.Reservation{stay(1, day(2024, 3, 1), day(2024, 3, 2), fptr(90), nil)}, nil)
	repo.On("GetActiveRooms", int64(7)).Return([]models.Room{{ID: 1, IsActive: true}}, nil)
	repo.On("GetConsumptionForRange", int64(7), start, end).Return([]models.ConsumptionRecord{}, nil)
	expectMonthlyFetches(repo, 7)

	req := OccupancyReportRequest{ProfessionalID: 7, StartDate: "2024-03-01", EndDate: "2024-03-02"}

	first, err := svc.GenerateOccupancyReport(req)
	require.NoError(t, err)
	second, err := svc.GenerateOccupancyReport(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
