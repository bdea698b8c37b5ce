package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"multibook_backend/internal/models"
)

// ReportRepository is the read-only record store behind the reporting
// engine. All three fetches are scoped to one professional and a date
// window; start and end are inclusive calendar days.
type ReportRepository interface {
	GetReservationsForRange(professionalID int64, start, end time.Time) ([]models.Reservation, error)
	GetActiveRooms(professionalID int64) ([]models.Room, error)
	GetConsumptionForRange(professionalID int64, start, end time.Time) ([]models.ConsumptionRecord, error)
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

const selectReportReservationFields = `
	res.id, res.room_id, res.guest_name, res.check_in, res.check_out,
	res.total_amount, res.guests, res.status, res.notes, res.created_at, res.updated_at
`

// GetReservationsForRange returns reservations whose check-in date falls in
// [start, end], for rooms belonging to the professional.
func (r *reportRepository) GetReservationsForRange(professionalID int64, start, end time.Time) ([]models.Reservation, error) {
	query := `SELECT ` + selectReportReservationFields + `
	          FROM reservations res
	          JOIN rooms rm ON res.room_id = rm.id
	          WHERE rm.professional_id = $1
	            AND res.check_in >= $2 AND res.check_in < $3
	          ORDER BY res.check_in ASC, res.id ASC`

	rows, err := r.db.Query(query, professionalID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("%w: querying reservations for report: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	for rows.Next() {
		var reservation models.Reservation
		var totalAmount sql.NullFloat64
		var guests sql.NullInt32
		var notes sql.NullString

		if err := rows.Scan(
			&reservation.ID, &reservation.RoomID, &reservation.GuestName,
			&reservation.CheckIn, &reservation.CheckOut,
			&totalAmount, &guests, &reservation.Status, &notes,
			&reservation.CreatedAt, &reservation.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning report reservation: %v", ErrDatabaseError, err)
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
		reservations = append(reservations, reservation)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating report reservations: %v", ErrDatabaseError, err)
	}
	return reservations, nil
}

// GetActiveRooms returns the active rooms for the professional.
func (r *reportRepository) GetActiveRooms(professionalID int64) ([]models.Room, error) {
	query := `SELECT id, professional_id, room_number, room_type, is_active, created_at, updated_at
	          FROM rooms
	          WHERE professional_id = $1 AND is_active = TRUE
	          ORDER BY room_number ASC`

	rows, err := r.db.Query(query, professionalID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying active rooms: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		var room models.Room
		var roomType sql.NullString
		if err := rows.Scan(
			&room.ID, &room.ProfessionalID, &room.RoomNumber, &roomType,
			&room.IsActive, &room.CreatedAt, &room.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning active room: %v", ErrDatabaseError, err)
		}
		if roomType.Valid {
			room.RoomType = &roomType.String
		}
		rooms = append(rooms, room)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating active rooms: %v", ErrDatabaseError, err)
	}
	return rooms, nil
}

// GetConsumptionForRange returns consumption records, joined with their
// service item, consumed between the start of the first day and the end of
// the last day of the window. The timestamp comparison keeps a charge at
// 23:59 on the boundary day inside the window.
func (r *reportRepository) GetConsumptionForRange(professionalID int64, start, end time.Time) ([]models.ConsumptionRecord, error) {
	query := `SELECT cr.id, cr.reservation_id, cr.item_id, si.name, si.category,
	                 cr.quantity, cr.total_price, cr.consumed_at, cr.created_at
	          FROM consumption_records cr
	          JOIN service_items si ON cr.item_id = si.id
	          JOIN reservations res ON cr.reservation_id = res.id
	          JOIN rooms rm ON res.room_id = rm.id
	          WHERE rm.professional_id = $1
	            AND cr.consumed_at >= $2 AND cr.consumed_at < $3
	          ORDER BY cr.consumed_at ASC, cr.id ASC`

	rows, err := r.db.Query(query, professionalID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("%w: querying consumption for report: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	records := []models.ConsumptionRecord{}
	for rows.Next() {
		var record models.ConsumptionRecord
		var itemCategory sql.NullString
		if err := rows.Scan(
			&record.ID, &record.ReservationID, &record.ItemID, &record.ItemName, &itemCategory,
			&record.Quantity, &record.TotalPrice, &record.ConsumedAt, &record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning report consumption record: %v", ErrDatabaseError, err)
		}
		if itemCategory.Valid {
			record.ItemCategory = &itemCategory.String
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating report consumption records: %v", ErrDatabaseError, err)
	}
	return records, nil
}
