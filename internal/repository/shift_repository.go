package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/booking-service/internal/domain"
)

// ShiftRepository handles persistence for staff working windows.
type ShiftRepository interface {
	Upsert(ctx context.Context, shift *domain.Shift) error
	GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (*domain.Shift, error)
	ListByStaff(ctx context.Context, staffID string) ([]domain.Shift, error)
	ListInDateRange(ctx context.Context, start, end time.Time) ([]domain.Shift, error)
}

type shiftRepository struct {
	pool *pgxpool.Pool
}

// NewShiftRepository instantiates the repository.
func NewShiftRepository(pool *pgxpool.Pool) ShiftRepository {
	return &shiftRepository{pool: pool}
}

func (r *shiftRepository) Upsert(ctx context.Context, shift *domain.Shift) error {
	const query = `
        INSERT INTO shifts (staff_id, shift_date, start_time, end_time)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (staff_id, shift_date)
        DO UPDATE SET start_time=EXCLUDED.start_time, end_time=EXCLUDED.end_time, updated_at=NOW()
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		shift.StaffID,
		shift.Date,
		shift.StartTime,
		shift.EndTime,
	).Scan(&shift.ID, &shift.CreatedAt, &shift.UpdatedAt)
}

func (r *shiftRepository) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (*domain.Shift, error) {
	const query = `
        SELECT id, staff_id, shift_date, start_time, end_time, created_at, updated_at
        FROM shifts WHERE staff_id=$1 AND shift_date=$2`

	var shift domain.Shift
	if err := r.pool.QueryRow(ctx, query, staffID, date).Scan(
		&shift.ID,
		&shift.StaffID,
		&shift.Date,
		&shift.StartTime,
		&shift.EndTime,
		&shift.CreatedAt,
		&shift.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) ListByStaff(ctx context.Context, staffID string) ([]domain.Shift, error) {
	const query = `
        SELECT id, staff_id, shift_date, start_time, end_time, created_at, updated_at
        FROM shifts WHERE staff_id=$1
        ORDER BY shift_date ASC, start_time ASC`

	rows, err := r.pool.Query(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanShifts(rows)
}

func (r *shiftRepository) ListInDateRange(ctx context.Context, start, end time.Time) ([]domain.Shift, error) {
	const query = `
        SELECT id, staff_id, shift_date, start_time, end_time, created_at, updated_at
        FROM shifts WHERE shift_date BETWEEN $1 AND $2
        ORDER BY shift_date ASC, start_time ASC`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanShifts(rows)
}

func scanShifts(rows pgx.Rows) ([]domain.Shift, error) {
	var result []domain.Shift
	for rows.Next() {
		var shift domain.Shift
		if err := rows.Scan(
			&shift.ID,
			&shift.StaffID,
			&shift.Date,
			&shift.StartTime,
			&shift.EndTime,
			&shift.CreatedAt,
			&shift.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, shift)
	}
	return result, rows.Err()
}
