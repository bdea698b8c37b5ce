package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"multibook_backend/internal/models"
	"multibook_backend/internal/repositories"
	"multibook_backend/pkg/utils"
)

// --- Custom Service Errors for Consumption ---
var (
	ErrServiceItemNotFound           = errors.New("service item not found")
	ErrReservationForConsumptionGone = errors.New("reservation specified for consumption not found")
	ErrConsumptionValidation         = errors.New("consumption data validation error")
)

// --- Consumption DTOs ---
type CreateServiceItemRequest struct {
	Name      string  `json:"name" binding:"required"`
	Category  *string `json:"category"`
	UnitPrice float64 `json:"unit_price" binding:"required"`
}

type CreateConsumptionRequest struct {
	ReservationID int64    `json:"reservation_id" binding:"required"`
	ItemID        int64    `json:"item_id" binding:"required"`
	Quantity      int      `json:"quantity" binding:"required"`
	TotalPrice    *float64 `json:"total_price"` // defaults to unit_price * quantity
	ConsumedAt    *string  `json:"consumed_at"` // RFC3339; defaults to now
}

// --- ConsumptionService Interface ---
type ConsumptionService interface {
	CreateServiceItem(req CreateServiceItemRequest) (*models.ServiceItem, error)
	GetServiceItems(activeOnly bool) ([]models.ServiceItem, error)
	RecordConsumption(req CreateConsumptionRequest) (*models.ConsumptionRecord, error)
	GetConsumptionRecords(filters models.ConsumptionFilters) ([]models.ConsumptionRecord, error)
}

// --- consumptionService Implementation ---
type consumptionService struct {
	consumptionRepo repositories.ConsumptionRepository
	reservationRepo repositories.ReservationRepository
	db              *sql.DB
}

// NewConsumptionService creates a new instance of ConsumptionService.
func NewConsumptionService(
	cr repositories.ConsumptionRepository,
	rr repositories.ReservationRepository,
	db *sql.DB,
) ConsumptionService {
	return &consumptionService{
		consumptionRepo: cr,
		reservationRepo: rr,
		db:              db,
	}
}

func (s *consumptionService) CreateServiceItem(req CreateServiceItemRequest) (*models.ServiceItem, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: name must not be empty", ErrConsumptionValidation)
	}
	if req.UnitPrice < 0 {
		return nil, fmt.Errorf("%w: unit_price must not be negative", ErrConsumptionValidation)
	}

	// Blank categories are stored as NULL so report aggregation resolves
	// them through the fallback label, never as an empty-string bucket.
	var category *string
	if req.Category != nil {
		category = utils.NewNullString(strings.TrimSpace(*req.Category))
	}

	item := &models.ServiceItem{
		Name:      strings.TrimSpace(req.Name),
		Category:  category,
		UnitPrice: req.UnitPrice,
		IsActive:  true,
	}

	createdItem, err := s.consumptionRepo.CreateServiceItem(s.db, item)
	if err != nil {
		return nil, fmt.Errorf("failed to create service item in repository: %w", err)
	}
	return createdItem, nil
}

func (s *consumptionService) GetServiceItems(activeOnly bool) ([]models.ServiceItem, error) {
	items, err := s.consumptionRepo.GetServiceItems(activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get service items: %w", err)
	}
	return items, nil
}

// RecordConsumption validates the reservation and item, defaults the total
// to unit_price * quantity, and stores the charge at its consumption
// timestamp.
func (s *consumptionService) RecordConsumption(req CreateConsumptionRequest) (*models.ConsumptionRecord, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrConsumptionValidation)
	}

	if _, err := s.reservationRepo.GetReservationByID(req.ReservationID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrReservationForConsumptionGone, req.ReservationID)
		}
		return nil, fmt.Errorf("failed to validate reservation for consumption: %w", err)
	}

	item, err := s.consumptionRepo.GetServiceItemByID(req.ItemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrServiceItemNotFound, req.ItemID)
		}
		return nil, fmt.Errorf("failed to validate service item for consumption: %w", err)
	}

	consumedAt := time.Now()
	if req.ConsumedAt != nil && *req.ConsumedAt != "" {
		parsed, parseErr := time.Parse(time.RFC3339, *req.ConsumedAt)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid consumed_at, expected RFC3339: %v", ErrConsumptionValidation, parseErr)
		}
		consumedAt = parsed
	}

	totalPrice := item.UnitPrice * float64(req.Quantity)
	if req.TotalPrice != nil {
		if *req.TotalPrice < 0 {
			return nil, fmt.Errorf("%w: total_price must not be negative", ErrConsumptionValidation)
		}
		totalPrice = *req.TotalPrice
	}

	record := &models.ConsumptionRecord{
		ReservationID: req.ReservationID,
		ItemID:        req.ItemID,
		ItemName:      item.Name,
		ItemCategory:  item.Category,
		Quantity:      req.Quantity,
		TotalPrice:    totalPrice,
		ConsumedAt:    consumedAt,
	}

	createdRecord, err := s.consumptionRepo.CreateConsumptionRecord(s.db, record)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumption record in repository: %w", err)
	}
	return createdRecord, nil
}

func (s *consumptionService) GetConsumptionRecords(filters models.ConsumptionFilters) ([]models.ConsumptionRecord, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 50
	}

	records, err := s.consumptionRepo.GetConsumptionRecords(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get consumption records: %w", err)
	}
	return records, nil
}
