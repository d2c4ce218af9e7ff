package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/booking-service/internal/domain"
)

// In-memory repository fakes. Lookups return copies so that, like the real
// store, mutations only take effect through Update.

type memUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) add(name string, role domain.Role) *domain.User {
	r.seq++
	user := &domain.User{
		ID:    fmt.Sprintf("user-%d", r.seq),
		Name:  name,
		Email: fmt.Sprintf("%s-%d@example.com", role, r.seq),
		Role:  role,
	}
	r.users[user.ID] = user
	return user
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		if user.Role == role {
			result = append(result, *user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

type memShiftRepo struct {
	shifts map[string]*domain.Shift
	seq    int
}

func newMemShiftRepo() *memShiftRepo {
	return &memShiftRepo{shifts: map[string]*domain.Shift{}}
}

func shiftKey(staffID string, date time.Time) string {
	return staffID + "|" + date.Format(dateLayout)
}

func (r *memShiftRepo) Upsert(_ context.Context, shift *domain.Shift) error {
	key := shiftKey(shift.StaffID, shift.Date)
	if existing, ok := r.shifts[key]; ok {
		shift.ID = existing.ID
	} else {
		r.seq++
		shift.ID = fmt.Sprintf("shift-%d", r.seq)
	}
	copied := *shift
	r.shifts[key] = &copied
	return nil
}

func (r *memShiftRepo) GetByStaffAndDate(_ context.Context, staffID string, date time.Time) (*domain.Shift, error) {
	shift, ok := r.shifts[shiftKey(staffID, date)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *shift
	return &copied, nil
}

func (r *memShiftRepo) ListByStaff(_ context.Context, staffID string) ([]domain.Shift, error) {
	var result []domain.Shift
	for _, shift := range r.shifts {
		if shift.StaffID == staffID {
			result = append(result, *shift)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return clockOf(result[i].StartTime).Before(clockOf(result[j].StartTime))
	})
	return result, nil
}

func (r *memShiftRepo) ListInDateRange(_ context.Context, start, end time.Time) ([]domain.Shift, error) {
	var result []domain.Shift
	for _, shift := range r.shifts {
		if inRange(shift.Date, start, end) {
			result = append(result, *shift)
		}
	}
	return result, nil
}

type memReservationRepo struct {
	reservations map[string]*domain.Reservation
	seq          int
}

func newMemReservationRepo() *memReservationRepo {
	return &memReservationRepo{reservations: map[string]*domain.Reservation{}}
}

func (r *memReservationRepo) Create(_ context.Context, reservation *domain.Reservation) error {
	r.seq++
	reservation.ID = fmt.Sprintf("res-%d", r.seq)
	copied := *reservation
	r.reservations[reservation.ID] = &copied
	return nil
}

func (r *memReservationRepo) Update(_ context.Context, reservation *domain.Reservation) error {
	if _, ok := r.reservations[reservation.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *reservation
	r.reservations[reservation.ID] = &copied
	return nil
}

func (r *memReservationRepo) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	reservation, ok := r.reservations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *reservation
	return &copied, nil
}

func (r *memReservationRepo) GetExact(_ context.Context, date, slot time.Time, staffID *string) (*domain.Reservation, error) {
	if staffID == nil {
		return nil, pgx.ErrNoRows
	}
	for _, reservation := range r.reservations {
		if reservation.StaffID == nil || *reservation.StaffID != *staffID {
			continue
		}
		if sameDay(reservation.Date, date) && sameClock(reservation.TimeSlot, slot) {
			copied := *reservation
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memReservationRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Reservation, error) {
	var result []domain.Reservation
	for _, reservation := range r.reservations {
		if reservation.CustomerID == customerID {
			result = append(result, *reservation)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !sameDay(result[i].Date, result[j].Date) {
			return result[j].Date.Before(result[i].Date)
		}
		return clockOf(result[j].TimeSlot).Before(clockOf(result[i].TimeSlot))
	})
	return result, nil
}

func (r *memReservationRepo) ListAll(_ context.Context) ([]domain.Reservation, error) {
	var result []domain.Reservation
	for _, reservation := range r.reservations {
		result = append(result, *reservation)
	}
	return result, nil
}

func (r *memReservationRepo) ListInDateRange(_ context.Context, start, end time.Time) ([]domain.Reservation, error) {
	var result []domain.Reservation
	for _, reservation := range r.reservations {
		if inRange(reservation.Date, start, end) {
			result = append(result, *reservation)
		}
	}
	return result, nil
}

func (r *memReservationRepo) ListByStaffAndDateRange(_ context.Context, staffID string, start, end time.Time) ([]domain.Reservation, error) {
	var result []domain.Reservation
	for _, reservation := range r.reservations {
		if reservation.StaffID != nil && *reservation.StaffID == staffID && inRange(reservation.Date, start, end) {
			result = append(result, *reservation)
		}
	}
	return result, nil
}

func sameDay(a, b time.Time) bool {
	return a.Format(dateLayout) == b.Format(dateLayout)
}

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func clock(hour, minute int) time.Time {
	return time.Date(0, time.January, 1, hour, minute, 0, 0, time.UTC)
}
