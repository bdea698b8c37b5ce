package services

import (
	"testing"

	"multibook_backend/internal/models"
	"multibook_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockConsumptionRepository struct {
	mock.Mock
}

func (m *mockConsumptionRepository) CreateServiceItem(executor repositories.SQLExecutor, item *models.ServiceItem) (*models.ServiceItem, error) {
	args := m.Called(executor, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceItem), args.Error(1)
}

func (m *mockConsumptionRepository) GetServiceItemByID(id int64) (*models.ServiceItem, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceItem), args.Error(1)
}

func (m *mockConsumptionRepository) GetServiceItems(activeOnly bool) ([]models.ServiceItem, error) {
	args := m.Called(activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceItem), args.Error(1)
}

func (m *mockConsumptionRepository) CreateConsumptionRecord(executor repositories.SQLExecutor, record *models.ConsumptionRecord) (*models.ConsumptionRecord, error) {
	args := m.Called(executor, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConsumptionRecord), args.Error(1)
}

func (m *mockConsumptionRepository) GetConsumptionRecords(filters models.ConsumptionFilters) ([]models.ConsumptionRecord, error) {
	args := m.Called(filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsumptionRecord), args.Error(1)
}

func TestCreateServiceItem_Validation(t *testing.T) {
	consumptionRepo := new(mockConsumptionRepository)
	reservationRepo := new(mockReservationRepository)
	svc := NewConsumptionService(consumptionRepo, reservationRepo, nil)

	_, err := svc.CreateServiceItem(CreateServiceItemRequest{Name: "   ", UnitPrice: 5})
	assert.ErrorIs(t, err, ErrConsumptionValidation)

	_, err = svc.CreateServiceItem(CreateServiceItemRequest{Name: "Massage", UnitPrice: -1})
	assert.ErrorIs(t, err, ErrConsumptionValidation)

	consumptionRepo.AssertNotCalled(t, "CreateServiceItem", mock.Anything, mock.Anything)
}

func TestCreateServiceItem_NormalizesBlankCategory(t *testing.T) {
	consumptionRepo := new(mockConsumptionRepository)
	reservationRepo := new(mockReservationRepository)
	svc := NewConsumptionService(consumptionRepo, reservationRepo, nil)

	consumptionRepo.On("CreateServiceItem", mock.Anything, mock.MatchedBy(func(item *models.ServiceItem) bool {
		return item.Category == nil
	})).Return(&models.ServiceItem{ID: 1, Name: "Minibar", UnitPrice: 8, IsActive: true}, nil)

	// A whitespace-only category is stored as absent, not as an empty label.
	item, err := svc.CreateServiceItem(CreateServiceItemRequest{
		Name:      "Minibar",
		Category:  sptr("   "),
		UnitPrice: 8,
	})
	require.NoError(t, err)
	assert.Nil(t, item.Category)
	consumptionRepo.AssertExpectations(t)
}

func TestRecordConsumption_DefaultsTotalPrice(t *testing.T) {
	consumptionRepo := new(mockConsumptionRepository)
	reservationRepo := new(mockReservationRepository)
	svc := NewConsumptionService(consumptionRepo, reservationRepo, nil)

	reservationRepo.On("GetReservationByID", int64(5)).Return(&models.Reservation{ID: 5}, nil)
	consumptionRepo.On("GetServiceItemByID", int64(3)).Return(&models.ServiceItem{
		ID: 3, Name: "Massage", UnitPrice: 12.5, IsActive: true,
	}, nil)
	consumptionRepo.On("CreateConsumptionRecord", mock.Anything, mock.MatchedBy(func(record *models.ConsumptionRecord) bool {
		return record.TotalPrice == 37.5
	})).Return(&models.ConsumptionRecord{ID: 1, TotalPrice: 37.5}, nil)

	record, err := svc.RecordConsumption(CreateConsumptionRequest{
		ReservationID: 5,
		ItemID:        3,
		Quantity:      3,
	})
	require.NoError(t, err)
	assert.Equal(t, 37.5, record.TotalPrice)
	consumptionRepo.AssertExpectations(t)
}

func TestRecordConsumption_RejectsMissingReferences(t *testing.T) {
	consumptionRepo := new(mockConsumptionRepository)
	reservationRepo := new(mockReservationRepository)
	svc := NewConsumptionService(consumptionRepo, reservationRepo, nil)

	reservationRepo.On("GetReservationByID", int64(99)).Return(nil, repositories.ErrNotFound)
	_, err := svc.RecordConsumption(CreateConsumptionRequest{ReservationID: 99, ItemID: 1, Quantity: 1})
	assert.ErrorIs(t, err, ErrReservationForConsumptionGone)

	reservationRepo.On("GetReservationByID", int64(5)).Return(&models.Reservation{ID: 5}, nil)
	consumptionRepo.On("GetServiceItemByID", int64(77)).Return(nil, repositories.ErrNotFound)
	_, err = svc.RecordConsumption(CreateConsumptionRequest{ReservationID: 5, ItemID: 77, Quantity: 1})
	assert.ErrorIs(t, err, ErrServiceItemNotFound)
}
