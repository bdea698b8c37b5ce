package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"multibook_backend/internal/models"
	"multibook_backend/internal/repositories"
	"multibook_backend/pkg/utils"
)

// --- Custom Service Errors for Rooms ---
var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomValidation = errors.New("room data validation error")
)

// --- Room DTOs ---
type CreateRoomRequest struct {
	ProfessionalID int64   `json:"professional_id" binding:"required"`
	RoomNumber     string  `json:"room_number" binding:"required"`
	RoomType       *string `json:"room_type"`
	IsActive       *bool   `json:"is_active"`
}

type UpdateRoomRequest struct {
	RoomNumber *string `json:"room_number"`
	RoomType   *string `json:"room_type"`
	IsActive   *bool   `json:"is_active"`
}

// --- RoomService Interface ---
type RoomService interface {
	CreateRoom(req CreateRoomRequest) (*models.Room, error)
	GetRoomByID(roomID int64) (*models.Room, error)
	GetRooms(filters models.RoomFilters) ([]models.Room, error)
	UpdateRoom(roomID int64, req UpdateRoomRequest) (*models.Room, error)
	DeleteRoom(roomID int64) error
}

// --- roomService Implementation ---
type roomService struct {
	roomRepo repositories.RoomRepository
	db       *sql.DB
}

// NewRoomService creates a new instance of RoomService.
func NewRoomService(roomRepo repositories.RoomRepository, db *sql.DB) RoomService {
	return &roomService{roomRepo: roomRepo, db: db}
}

func (s *roomService) CreateRoom(req CreateRoomRequest) (*models.Room, error) {
	if utils.IsEmpty(req.RoomNumber) {
		return nil, fmt.Errorf("%w: room_number must not be empty", ErrRoomValidation)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	room := &models.Room{
		ProfessionalID: req.ProfessionalID,
		RoomNumber:     strings.TrimSpace(req.RoomNumber),
		RoomType:       req.RoomType,
		IsActive:       isActive,
	}

	createdRoom, err := s.roomRepo.CreateRoom(s.db, room)
	if err != nil {
		return nil, fmt.Errorf("failed to create room in repository: %w", err)
	}
	return createdRoom, nil
}

func (s *roomService) GetRoomByID(roomID int64) (*models.Room, error) {
	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room by ID: %w", err)
	}
	return room, nil
}

func (s *roomService) GetRooms(filters models.RoomFilters) ([]models.Room, error) {
	rooms, err := s.roomRepo.GetRooms(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomService) UpdateRoom(roomID int64, req UpdateRoomRequest) (*models.Room, error) {
	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room for update: %w", err)
	}

	if req.RoomNumber != nil {
		if utils.IsEmpty(*req.RoomNumber) {
			return nil, fmt.Errorf("%w: room_number must not be empty", ErrRoomValidation)
		}
		room.RoomNumber = strings.TrimSpace(*req.RoomNumber)
	}
	if req.RoomType != nil {
		room.RoomType = req.RoomType
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	updatedRoom, err := s.roomRepo.UpdateRoom(s.db, room)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to update room in repository: %w", err)
	}
	return updatedRoom, nil
}

func (s *roomService) DeleteRoom(roomID int64) error {
	if err := s.roomRepo.DeleteRoom(s.db, roomID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}
