package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"multibook_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// AuthRepository defines the interface for authentication-related database operations.
type AuthRepository interface {
	CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error)
	FindUserByUsername(username string) (*models.User, string, error) // Returns User, HashedPassword, Error
	FindUserByID(userID int64) (*models.User, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	query := `INSERT INTO users (username, password_hash, email, full_name, role, professional_id, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	currentTime := time.Now()

	var professionalID sql.NullInt64
	if user.ProfessionalID != nil {
		professionalID = sql.NullInt64{Int64: *user.ProfessionalID, Valid: true}
	}

	var userID int64
	err := executor.QueryRow(
		query,
		user.Username,
		hashedPassword,
		user.Email,    // Can be nil
		user.FullName, // Can be nil
		user.Role,
		professionalID,
		true, // New accounts start active
		currentTime,
		currentTime,
	).Scan(&userID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return userID, nil
}

const selectUserFields = `
	id, username, password_hash, email, full_name, role, professional_id, is_active, created_at, updated_at
`

func scanUserRow(row scanner) (*models.User, string, error) {
	user := &models.User{}
	var hashedPassword string
	var email, fullName sql.NullString
	var professionalID sql.NullInt64

	err := row.Scan(
		&user.ID, &user.Username, &hashedPassword, &email, &fullName,
		&user.Role, &professionalID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
	}

	if email.Valid {
		user.Email = &email.String
	}
	if fullName.Valid {
		user.FullName = &fullName.String
	}
	if professionalID.Valid {
		user.ProfessionalID = &professionalID.Int64
	}
	return user, hashedPassword, nil
}

func (r *authRepository) FindUserByUsername(username string) (*models.User, string, error) {
	query := "SELECT " + selectUserFields + " FROM users WHERE username = $1"
	return scanUserRow(r.db.QueryRow(query, username))
}

func (r *authRepository) FindUserByID(userID int64) (*models.User, error) {
	query := "SELECT " + selectUserFields + " FROM users WHERE id = $1"
	user, _, err := scanUserRow(r.db.QueryRow(query, userID))
	return user, err
}
