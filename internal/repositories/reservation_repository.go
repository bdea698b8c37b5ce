package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"multibook_backend/internal/models"
)

// ReservationRepository defines the interface for reservation-related database operations.
type ReservationRepository interface {
	CreateReservation(executor SQLExecutor, reservation *models.Reservation) (*models.Reservation, error)
	GetReservationByID(id int64) (*models.Reservation, error) // Joins room details
	GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error)
	UpdateReservation(executor SQLExecutor, reservation *models.Reservation) (*models.Reservation, error)
	DeleteReservation(executor SQLExecutor, id int64) error
}

type reservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *sql.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

const selectReservationFields = `
	res.id, res.room_id, res.guest_name, res.check_in, res.check_out,
	res.total_amount, res.guests, res.status, res.notes, res.created_at, res.updated_at,
	rm.id, rm.professional_id, rm.room_number, rm.room_type, rm.is_active, rm.created_at, rm.updated_at
`

const reservationJoins = `
	FROM reservations res
	JOIN rooms rm ON res.room_id = rm.id
`

// scanReservationRow scans a reservation row together with its joined room.
func scanReservationRow(row scanner, isList bool) (*models.Reservation, int, error) {
	var reservation models.Reservation
	var room models.Room

	var totalAmount sql.NullFloat64
	var guests sql.NullInt32
	var notes sql.NullString
	var roomType sql.NullString
	var totalCount int

	scanDest := []interface{}{
		&reservation.ID, &reservation.RoomID, &reservation.GuestName,
		&reservation.CheckIn, &reservation.CheckOut,
		&totalAmount, &guests, &reservation.Status, &notes,
		&reservation.CreatedAt, &reservation.UpdatedAt,
		&room.ID, &room.ProfessionalID, &room.RoomNumber, &roomType,
		&room.IsActive, &room.CreatedAt, &room.UpdatedAt,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning reservation with room: %v", ErrDatabaseError, err)
	}

	if totalAmount.Valid {
		reservation.TotalAmount = &totalAmount.Float64
	}
	if guests.Valid {
		g := int(guests.Int32)
		reservation.Guests = &g
	}
	if notes.Valid {
		reservation.Notes = &notes.String
	}
	if roomType.Valid {
		room.RoomType = &roomType.String
	}
	reservation.Room = &room

	return &reservation, totalCount, nil
}

func (r *reservationRepository) CreateReservation(executor SQLExecutor, reservation *models.Reservation) (*models.Reservation, error) {
	query := `INSERT INTO reservations
	            (room_id, guest_name, check_in, check_out, total_amount, guests, status, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	reservation.CreatedAt = currentTime
	reservation.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		reservation.RoomID, reservation.GuestName, reservation.CheckIn, reservation.CheckOut,
		reservation.TotalAmount, reservation.Guests, reservation.Status, reservation.Notes,
		reservation.CreatedAt, reservation.UpdatedAt,
	).Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: creating reservation: %v", ErrDatabaseError, err)
	}
	return reservation, nil
}

func (r *reservationRepository) GetReservationByID(id int64) (*models.Reservation, error) {
	query := "SELECT " + selectReservationFields + reservationJoins + " WHERE res.id = $1"
	reservation, _, err := scanReservationRow(r.db.QueryRow(query, id), false)
	return reservation, err
}

func (r *reservationRepository) GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error) {
	reservations := []models.Reservation{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectReservationFields + ", COUNT(*) OVER() as total_count " + reservationJoins)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.ProfessionalID != nil {
		conditions = append(conditions, fmt.Sprintf("rm.professional_id = $%d", argCount))
		args = append(args, *filters.ProfessionalID)
		argCount++
	}
	if filters.RoomID != nil {
		conditions = append(conditions, fmt.Sprintf("res.room_id = $%d", argCount))
		args = append(args, *filters.RoomID)
		argCount++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("res.status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("res.check_in >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("res.check_in <= $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY res.check_in DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		reservation, scannedTotalCount, scanErr := scanReservationRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		reservations = append(reservations, *reservation)
		totalCount = scannedTotalCount // total_count is identical on every row from OVER()
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating reservation rows: %v", ErrDatabaseError, err)
	}
	if len(reservations) == 0 {
		totalCount = 0
	}
	return reservations, totalCount, nil
}

func (r *reservationRepository) UpdateReservation(executor SQLExecutor, reservation *models.Reservation) (*models.Reservation, error) {
	query := `UPDATE reservations SET
	            room_id = $1, guest_name = $2, check_in = $3, check_out = $4,
	            total_amount = $5, guests = $6, status = $7, notes = $8, updated_at = $9
	          WHERE id = $10
	          RETURNING updated_at`
	reservation.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		reservation.RoomID, reservation.GuestName, reservation.CheckIn, reservation.CheckOut,
		reservation.TotalAmount, reservation.Guests, reservation.Status, reservation.Notes,
		reservation.UpdatedAt, reservation.ID,
	).Scan(&reservation.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating reservation ID %d: %v", ErrDatabaseError, reservation.ID, err)
	}
	return reservation, nil
}

func (r *reservationRepository) DeleteReservation(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
