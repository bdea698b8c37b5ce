package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"multibook_backend/internal/models"
)

// ConsumptionRepository defines the interface for service items and
// consumption record database operations.
type ConsumptionRepository interface {
	CreateServiceItem(executor SQLExecutor, item *models.ServiceItem) (*models.ServiceItem, error)
	GetServiceItemByID(id int64) (*models.ServiceItem, error)
	GetServiceItems(activeOnly bool) ([]models.ServiceItem, error)
	CreateConsumptionRecord(executor SQLExecutor, record *models.ConsumptionRecord) (*models.ConsumptionRecord, error)
	GetConsumptionRecords(filters models.ConsumptionFilters) ([]models.ConsumptionRecord, error)
}

type consumptionRepository struct {
	db *sql.DB
}

// NewConsumptionRepository creates a new instance of ConsumptionRepository.
func NewConsumptionRepository(db *sql.DB) ConsumptionRepository {
	return &consumptionRepository{db: db}
}

func (r *consumptionRepository) CreateServiceItem(executor SQLExecutor, item *models.ServiceItem) (*models.ServiceItem, error) {
	query := `INSERT INTO service_items (name, category, unit_price, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	item.CreatedAt = currentTime
	item.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		item.Name, item.Category, item.UnitPrice, item.IsActive,
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: creating service item: %v", ErrDatabaseError, err)
	}
	return item, nil
}

func scanServiceItemRow(row scanner) (*models.ServiceItem, error) {
	var item models.ServiceItem
	var category sql.NullString

	err := row.Scan(
		&item.ID, &item.Name, &category, &item.UnitPrice, &item.IsActive,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning service item: %v", ErrDatabaseError, err)
	}
	if category.Valid {
		item.Category = &category.String
	}
	return &item, nil
}

const selectServiceItemFields = `
	id, name, category, unit_price, is_active, created_at, updated_at
`

func (r *consumptionRepository) GetServiceItemByID(id int64) (*models.ServiceItem, error) {
	query := "SELECT " + selectServiceItemFields + " FROM service_items WHERE id = $1"
	return scanServiceItemRow(r.db.QueryRow(query, id))
}

func (r *consumptionRepository) GetServiceItems(activeOnly bool) ([]models.ServiceItem, error) {
	items := []models.ServiceItem{}

	query := "SELECT " + selectServiceItemFields + " FROM service_items"
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying service items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		item, scanErr := scanServiceItemRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating service item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *consumptionRepository) CreateConsumptionRecord(executor SQLExecutor, record *models.ConsumptionRecord) (*models.ConsumptionRecord, error) {
	query := `INSERT INTO consumption_records (reservation_id, item_id, quantity, total_price, consumed_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`

	record.CreatedAt = time.Now()

	err := executor.QueryRow(query,
		record.ReservationID, record.ItemID, record.Quantity, record.TotalPrice,
		record.ConsumedAt, record.CreatedAt,
	).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: creating consumption record: %v", ErrDatabaseError, err)
	}
	return record, nil
}

// scanConsumptionRow scans a consumption record joined with its item name/category.
func scanConsumptionRow(row scanner) (*models.ConsumptionRecord, error) {
	var record models.ConsumptionRecord
	var itemCategory sql.NullString

	err := row.Scan(
		&record.ID, &record.ReservationID, &record.ItemID, &record.ItemName, &itemCategory,
		&record.Quantity, &record.TotalPrice, &record.ConsumedAt, &record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning consumption record: %v", ErrDatabaseError, err)
	}
	if itemCategory.Valid {
		record.ItemCategory = &itemCategory.String
	}
	return &record, nil
}

const selectConsumptionFields = `
	cr.id, cr.reservation_id, cr.item_id, si.name, si.category,
	cr.quantity, cr.total_price, cr.consumed_at, cr.created_at
`

const consumptionJoins = `
	FROM consumption_records cr
	JOIN service_items si ON cr.item_id = si.id
	JOIN reservations res ON cr.reservation_id = res.id
	JOIN rooms rm ON res.room_id = rm.id
`

func (r *consumptionRepository) GetConsumptionRecords(filters models.ConsumptionFilters) ([]models.ConsumptionRecord, error) {
	records := []models.ConsumptionRecord{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectConsumptionFields + consumptionJoins)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.ProfessionalID != nil {
		conditions = append(conditions, fmt.Sprintf("rm.professional_id = $%d", argCount))
		args = append(args, *filters.ProfessionalID)
		argCount++
	}
	if filters.ReservationID != nil {
		conditions = append(conditions, fmt.Sprintf("cr.reservation_id = $%d", argCount))
		args = append(args, *filters.ReservationID)
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("cr.consumed_at >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("cr.consumed_at <= $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY cr.consumed_at DESC")

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
		return nil, fmt.Errorf("%w: querying consumption records: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		record, scanErr := scanConsumptionRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, *record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating consumption rows: %v", ErrDatabaseError, err)
	}
	return records, nil
}
