package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"multibook_backend/internal/models"
	"multibook_backend/internal/repositories"
)

// --- Custom Service Errors for Reservations ---
var (
	ErrReservationNotFound       = errors.New("reservation not found")
	ErrInvalidStayInterval       = errors.New("invalid stay interval (check-out must be strictly after check-in)")
	ErrRoomForReservationMissing = errors.New("room specified for reservation not found")
	ErrRoomInactive              = errors.New("room is not active")
	ErrReservationValidation     = errors.New("reservation data validation error")
)

const stayDateLayout = "2006-01-02"

// --- Reservation DTOs ---
type CreateReservationRequest struct {
	RoomID      int64    `json:"room_id" binding:"required"`
	GuestName   string   `json:"guest_name" binding:"required"`
	CheckIn     string   `json:"check_in" binding:"required"`  // YYYY-MM-DD
	CheckOut    string   `json:"check_out" binding:"required"` // YYYY-MM-DD
	TotalAmount *float64 `json:"total_amount"`
	Guests      *int     `json:"guests"`
	Status      *string  `json:"status"`
	Notes       *string  `json:"notes"`
}

type UpdateReservationRequest struct {
	RoomID      *int64   `json:"room_id"`
	GuestName   *string  `json:"guest_name"`
	CheckIn     *string  `json:"check_in"`
	CheckOut    *string  `json:"check_out"`
	TotalAmount *float64 `json:"total_amount"`
	Guests      *int     `json:"guests"`
	Status      *string  `json:"status"`
	Notes       *string  `json:"notes"`
}

// --- ReservationService Interface ---
type ReservationService interface {
	CreateReservation(req CreateReservationRequest) (*models.Reservation, error)
	GetReservationByID(reservationID int64) (*models.Reservation, error)
	GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error)
	UpdateReservation(reservationID int64, req UpdateReservationRequest) (*models.Reservation, error)
	CancelReservation(reservationID int64) (*models.Reservation, error)
	DeleteReservation(reservationID int64) error
}

// --- reservationService Implementation ---
type reservationService struct {
	reservationRepo repositories.ReservationRepository
	roomRepo        repositories.RoomRepository
	db              *sql.DB
}

// NewReservationService creates a new instance of ReservationService.
func NewReservationService(
	rr repositories.ReservationRepository,
	roomRepo repositories.RoomRepository,
	db *sql.DB,
) ReservationService {
	return &reservationService{
		reservationRepo: rr,
		roomRepo:        roomRepo,
		db:              db,
	}
}

// parseStayInterval parses check-in/check-out date strings and enforces the
// strict ordering invariant: check-out is an exclusive bound and must be
// after check-in.
func parseStayInterval(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := time.Parse(stayDateLayout, checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("check_in: %w: %v", ErrReservationValidation, err)
	}
	checkOut, err := time.Parse(stayDateLayout, checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("check_out: %w: %v", ErrReservationValidation, err)
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, ErrInvalidStayInterval
	}
	return checkIn, checkOut, nil
}

func (s *reservationService) validateRoom(roomID int64) error {
	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: ID %d", ErrRoomForReservationMissing, roomID)
		}
		return fmt.Errorf("failed to validate room for reservation: %w", err)
	}
	if !room.IsActive {
		return fmt.Errorf("%w: ID %d", ErrRoomInactive, roomID)
	}
	return nil
}

func (s *reservationService) CreateReservation(req CreateReservationRequest) (*models.Reservation, error) {
	checkIn, checkOut, err := parseStayInterval(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	if err := s.validateRoom(req.RoomID); err != nil {
		return nil, err
	}

	status := string(models.ReservationStatusConfirmed)
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		if !models.IsValidReservationStatus(*req.Status) {
			return nil, fmt.Errorf("%w: invalid status '%s'", ErrReservationValidation, *req.Status)
		}
		status = *req.Status
	}

	if req.Guests != nil && *req.Guests < 1 {
		return nil, fmt.Errorf("%w: guests must be at least 1", ErrReservationValidation)
	}

	reservation := &models.Reservation{
		RoomID:      req.RoomID,
		GuestName:   req.GuestName,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		TotalAmount: req.TotalAmount,
		Guests:      req.Guests,
		Status:      status,
		Notes:       req.Notes,
	}

	createdReservation, err := s.reservationRepo.CreateReservation(s.db, reservation)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation in repository: %w", err)
	}

	return s.reservationRepo.GetReservationByID(createdReservation.ID) // Fetch with room join
}

func (s *reservationService) GetReservationByID(reservationID int64) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation by ID: %w", err)
	}
	return reservation, nil
}

func (s *reservationService) GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}

	reservations, totalCount, err := s.reservationRepo.GetReservations(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get reservations: %w", err)
	}
	return reservations, totalCount, nil
}

func (s *reservationService) UpdateReservation(reservationID int64, req UpdateReservationRequest) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to find reservation for update: %w", err)
	}

	if reservation.Status == string(models.ReservationStatusCompleted) || reservation.Status == string(models.ReservationStatusCancelled) {
		return nil, fmt.Errorf("%w: cannot update a reservation that is already '%s'", ErrReservationValidation, reservation.Status)
	}

	if req.CheckIn != nil || req.CheckOut != nil {
		checkInStr := reservation.CheckIn.Format(stayDateLayout)
		checkOutStr := reservation.CheckOut.Format(stayDateLayout)
		if req.CheckIn != nil {
			checkInStr = *req.CheckIn
		}
		if req.CheckOut != nil {
			checkOutStr = *req.CheckOut
		}
		checkIn, checkOut, intervalErr := parseStayInterval(checkInStr, checkOutStr)
		if intervalErr != nil {
			return nil, intervalErr
		}
		reservation.CheckIn = checkIn
		reservation.CheckOut = checkOut
	}

	if req.RoomID != nil && *req.RoomID != reservation.RoomID {
		if err := s.validateRoom(*req.RoomID); err != nil {
			return nil, err
		}
		reservation.RoomID = *req.RoomID
	}
	if req.GuestName != nil {
		reservation.GuestName = *req.GuestName
	}
	if req.TotalAmount != nil {
		reservation.TotalAmount = req.TotalAmount
	}
	if req.Guests != nil {
		if *req.Guests < 1 {
			return nil, fmt.Errorf("%w: guests must be at least 1", ErrReservationValidation)
		}
		reservation.Guests = req.Guests
	}
	if req.Notes != nil {
		reservation.Notes = req.Notes
	}
	if req.Status != nil {
		if !models.IsValidReservationStatus(*req.Status) {
			return nil, fmt.Errorf("%w: invalid status '%s'", ErrReservationValidation, *req.Status)
		}
		reservation.Status = *req.Status
	}

	updatedReservation, err := s.reservationRepo.UpdateReservation(s.db, reservation)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to update reservation in repository: %w", err)
	}
	return s.reservationRepo.GetReservationByID(updatedReservation.ID)
}

func (s *reservationService) CancelReservation(reservationID int64) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to find reservation to cancel: %w", err)
	}

	if reservation.Status == string(models.ReservationStatusCompleted) {
		return nil, fmt.Errorf("%w: cannot cancel a completed reservation", ErrReservationValidation)
	}

	reservation.Status = string(models.ReservationStatusCancelled)
	updatedReservation, err := s.reservationRepo.UpdateReservation(s.db, reservation)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}
	return s.reservationRepo.GetReservationByID(updatedReservation.ID)
}

func (s *reservationService) DeleteReservation(reservationID int64) error {
	if _, err := s.reservationRepo.GetReservationByID(reservationID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("failed to find reservation for deletion: %w", err)
	}
	if err := s.reservationRepo.DeleteReservation(s.db, reservationID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}
