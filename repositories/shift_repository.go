package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/padelclub/padel-league/models"
)

var (
	ErrShiftNotFound       = errors.New("shift not found")
	ErrSignupNotFound      = errors.New("signup not found")
	ErrSignupConflict      = errors.New("player is already signed up for this shift")
	ErrSignupPlayerUnknown = errors.New("signup references an unknown player or shift")
)

type ShiftRepository interface {
	Create(ctx context.Context, shift *models.Shift) error
	GetByID(ctx context.Context, id int) (*models.Shift, error)
	List(ctx context.Context) ([]*models.Shift, error)
	ListSignups(ctx context.Context, shiftID int) ([]models.Signup, error)
	CountSignups(ctx context.Context, shiftID int) (int, error)
	CreateSignup(ctx context.Context, signup *models.Signup) error
	DeleteSignup(ctx context.Context, shiftID, playerID int) error
}

type postgresShiftRepository struct {
	db *sql.DB
}

func NewPostgresShiftRepository(db *sql.DB) ShiftRepository {
	return &postgresShiftRepository{db: db}
}

func (r *postgresShiftRepository) Create(ctx context.Context, shift *models.Shift) error {
	query := `
		INSERT INTO shifts (date, courts)
		VALUES ($1, $2)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query, shift.Date, shift.Courts).
		Scan(&shift.ID, &shift.CreatedAt)
}

func (r *postgresShiftRepository) GetByID(ctx context.Context, id int) (*models.Shift, error) {
	query := `SELECT id, date, courts, created_at FROM shifts WHERE id = $1`

	shift := &models.Shift{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&shift.ID, &shift.Date, &shift.Courts, &shift.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	return shift, nil
}

func (r *postgresShiftRepository) List(ctx context.Context) ([]*models.Shift, error) {
	query := `SELECT id, date, courts, created_at FROM shifts ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*models.Shift, 0)
	for rows.Next() {
		var s models.Shift
		if scanErr := rows.Scan(&s.ID, &s.Date, &s.Courts, &s.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		shifts = append(shifts, &s)
	}
	return shifts, rows.Err()
}

func (r *postgresShiftRepository) ListSignups(ctx context.Context, shiftID int) ([]models.Signup, error) {
	query := `
		SELECT s.id, s.shift_id, s.player_id, s.created_at,
		       p.id, p.name, p.phone, p.created_at
		FROM signups s
		JOIN players p ON p.id = s.player_id
		WHERE s.shift_id = $1
		ORDER BY s.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	signups := make([]models.Signup, 0)
	for rows.Next() {
		var su models.Signup
		var p models.Player
		if scanErr := rows.Scan(
			&su.ID, &su.ShiftID, &su.PlayerID, &su.CreatedAt,
			&p.ID, &p.Name, &p.Phone, &p.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		su.Player = &p
		signups = append(signups, su)
	}
	return signups, rows.Err()
}

func (r *postgresShiftRepository) CountSignups(ctx context.Context, shiftID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM signups WHERE shift_id = $1`, shiftID).Scan(&count)
	return count, err
}

func (r *postgresShiftRepository) CreateSignup(ctx context.Context, signup *models.Signup) error {
	query := `
		INSERT INTO signups (shift_id, player_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, signup.ShiftID, signup.PlayerID).
		Scan(&signup.ID, &signup.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrSignupConflict
			case "23503": // foreign_key_violation
				return ErrSignupPlayerUnknown
			}
		}
		return err
	}
	return nil
}

func (r *postgresShiftRepository) DeleteSignup(ctx context.Context, shiftID, playerID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM signups WHERE shift_id = $1 AND player_id = $2`, shiftID, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSignupNotFound)
}
