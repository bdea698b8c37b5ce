package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"multibook_backend/internal/models"
)

// RoomRepository defines the interface for room-related database operations.
type RoomRepository interface {
	CreateRoom(executor SQLExecutor, room *models.Room) (*models.Room, error)
	GetRoomByID(id int64) (*models.Room, error)
	GetRooms(filters models.RoomFilters) ([]models.Room, error)
	UpdateRoom(executor SQLExecutor, room *models.Room) (*models.Room, error)
	DeleteRoom(executor SQLExecutor, id int64) error
}

type roomRepository struct {
	db *sql.DB
}

// NewRoomRepository creates a new instance of RoomRepository.
func NewRoomRepository(db *sql.DB) RoomRepository {
	return &roomRepository{db: db}
}

const selectRoomFields = `
	id, professional_id, room_number, room_type, is_active, created_at, updated_at
`

func scanRoomRow(row scanner) (*models.Room, error) {
	var room models.Room
	var roomType sql.NullString

	err := row.Scan(
		&room.ID, &room.ProfessionalID, &room.RoomNumber, &roomType,
		&room.IsActive, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning room: %v", ErrDatabaseError, err)
	}
	if roomType.Valid {
		room.RoomType = &roomType.String
	}
	return &room, nil
}

func (r *roomRepository) CreateRoom(executor SQLExecutor, room *models.Room) (*models.Room, error) {
	query := `INSERT INTO rooms (professional_id, room_number, room_type, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	room.CreatedAt = currentTime
	room.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		room.ProfessionalID, room.RoomNumber, room.RoomType, room.IsActive,
		room.CreatedAt, room.UpdatedAt,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: creating room: %v", ErrDatabaseError, err)
	}
	return room, nil
}

func (r *roomRepository) GetRoomByID(id int64) (*models.Room, error) {
	query := "SELECT " + selectRoomFields + " FROM rooms WHERE id = $1"
	return scanRoomRow(r.db.QueryRow(query, id))
}

func (r *roomRepository) GetRooms(filters models.RoomFilters) ([]models.Room, error) {
	rooms := []models.Room{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectRoomFields + " FROM rooms")

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.ProfessionalID != nil {
		conditions = append(conditions, fmt.Sprintf("professional_id = $%d", argCount))
		args = append(args, *filters.ProfessionalID)
		argCount++
	}
	if filters.RoomType != nil && *filters.RoomType != "" {
		conditions = append(conditions, fmt.Sprintf("room_type = $%d", argCount))
		args = append(args, *filters.RoomType)
		argCount++
	}
	if filters.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY room_number ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying rooms: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		room, scanErr := scanRoomRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		rooms = append(rooms, *room)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating room rows: %v", ErrDatabaseError, err)
	}
	return rooms, nil
}

func (r *roomRepository) UpdateRoom(executor SQLExecutor, room *models.Room) (*models.Room, error) {
	query := `UPDATE rooms SET room_number = $1, room_type = $2, is_active = $3, updated_at = $4
	          WHERE id = $5
	          RETURNING updated_at`
	room.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		room.RoomNumber, room.RoomType, room.IsActive, room.UpdatedAt, room.ID,
	).Scan(&room.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating room ID %d: %v", ErrDatabaseError, room.ID, err)
	}
	return room, nil
}

func (r *roomRepository) DeleteRoom(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting room ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
