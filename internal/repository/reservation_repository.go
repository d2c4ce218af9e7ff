package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/booking-service/internal/domain"
)

// ReservationRepository encapsulates reservation persistence.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	Update(ctx context.Context, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	// GetExact looks up the reservation occupying (date, slot, staff) regardless
	// of status. A nil staff id matches nothing.
	GetExact(ctx context.Context, date, slot time.Time, staffID *string) (*domain.Reservation, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Reservation, error)
	ListAll(ctx context.Context) ([]domain.Reservation, error)
	ListInDateRange(ctx context.Context, start, end time.Time) ([]domain.Reservation, error)
	ListByStaffAndDateRange(ctx context.Context, staffID string, start, end time.Time) ([]domain.Reservation, error)
}

type reservationRepository struct {
	pool *pgxpool.Pool
}

// NewReservationRepository instantiates repository.
func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &reservationRepository{pool: pool}
}

const reservationColumns = `id, customer_id, staff_id, record_date, time_slot, menu, status, created_at, updated_at`

func (r *reservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	const query = `
        INSERT INTO reservations (customer_id, staff_id, record_date, time_slot, menu, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		reservation.CustomerID,
		reservation.StaffID,
		reservation.Date,
		reservation.TimeSlot,
		reservation.Menu,
		reservation.Status,
	).Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)
}

func (r *reservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	const query = `
        UPDATE reservations SET record_date=$1, time_slot=$2, menu=$3, status=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		reservation.Date,
		reservation.TimeSlot,
		reservation.Menu,
		reservation.Status,
		reservation.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *reservationRepository) GetExact(ctx context.Context, date, slot time.Time, staffID *string) (*domain.Reservation, error) {
	// staff_id=$3 with NULL matches no row, which is the intended semantics
	// for unassigned reservations.
	const query = `SELECT ` + reservationColumns + `
        FROM reservations WHERE record_date=$1 AND time_slot=$2 AND staff_id=$3`
	return r.fetchSingle(ctx, query, date, slot, staffID)
}

func (r *reservationRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Reservation, error) {
	var reservation domain.Reservation
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.CustomerID,
		&reservation.StaffID,
		&reservation.Date,
		&reservation.TimeSlot,
		&reservation.Menu,
		&reservation.Status,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Reservation, error) {
	const query = `SELECT ` + reservationColumns + `
        FROM reservations WHERE customer_id=$1
        ORDER BY record_date DESC, time_slot DESC`
	return r.list(ctx, query, customerID)
}

func (r *reservationRepository) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	const query = `SELECT ` + reservationColumns + `
        FROM reservations ORDER BY record_date ASC, time_slot ASC`
	return r.list(ctx, query)
}

func (r *reservationRepository) ListInDateRange(ctx context.Context, start, end time.Time) ([]domain.Reservation, error) {
	const query = `SELECT ` + reservationColumns + `
        FROM reservations WHERE record_date BETWEEN $1 AND $2
        ORDER BY record_date ASC, time_slot ASC`
	return r.list(ctx, query, start, end)
}

func (r *reservationRepository) ListByStaffAndDateRange(ctx context.Context, staffID string, start, end time.Time) ([]domain.Reservation, error) {
	const query = `SELECT ` + reservationColumns + `
        FROM reservations WHERE staff_id=$1 AND record_date BETWEEN $2 AND $3
        ORDER BY record_date ASC, time_slot ASC`
	return r.list(ctx, query, staffID, start, end)
}

func (r *reservationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

func scanReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	var result []domain.Reservation
	for rows.Next() {
		var reservation domain.Reservation
		if err := rows.Scan(
			&reservation.ID,
			&reservation.CustomerID,
			&reservation.StaffID,
			&reservation.Date,
			&reservation.TimeSlot,
			&reservation.Menu,
			&reservation.Status,
			&reservation.CreatedAt,
			&reservation.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, reservation)
	}
	return result, rows.Err()
}
