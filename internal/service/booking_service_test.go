package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/booking-service/internal/domain"
	apperrors "github.com/spec-kit/booking-service/pkg/util"
)

type bookingFixture struct {
	users        *memUserRepo
	shifts       *memShiftRepo
	reservations *memReservationRepo
	booking      *BookingService
	availability *AvailabilityService
	customer     *domain.User
	staff        *domain.User
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	users := newMemUserRepo()
	shifts := newMemShiftRepo()
	reservations := newMemReservationRepo()

	return &bookingFixture{
		users:        users,
		shifts:       shifts,
		reservations: reservations,
		booking: NewBookingService(BookingDependencies{
			UserRepo:        users,
			ShiftRepo:       shifts,
			ReservationRepo: reservations,
		}),
		availability: NewAvailabilityService(AvailabilityDependencies{
			UserRepo:        users,
			ShiftRepo:       shifts,
			ReservationRepo: reservations,
		}),
		customer: users.add("Alice", domain.RoleCustomer),
		staff:    users.add("Bob", domain.RoleStaff),
	}
}

func (f *bookingFixture) addShift(t *testing.T, day time.Time, start, end time.Time) {
	t.Helper()
	err := f.shifts.Upsert(context.Background(), &domain.Shift{
		StaffID:   f.staff.ID,
		Date:      day,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestCreateReservation(t *testing.T) {
	f := newBookingFixture(t)
	day := date(2024, time.January, 10)
	f.addShift(t, day, clock(9, 0), clock(12, 0))

	reservation, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(9, 0), "trim")

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusBooked, reservation.Status)
	assert.Equal(t, f.customer.ID, reservation.CustomerID)
	require.NotNil(t, reservation.StaffID)
	assert.Equal(t, f.staff.ID, *reservation.StaffID)
	assert.NotEmpty(t, reservation.ID)
}

func TestCreateReservationStaffNotFound(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.booking.Create(context.Background(), f.customer, "missing", date(2024, time.January, 10), clock(9, 0), "")

	requireCode(t, err, "NOT_FOUND")
}

func TestCreateReservationWithoutShift(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, date(2024, time.January, 10), clock(9, 0), "")

	requireCode(t, err, "UNAVAILABLE")
}

func TestCreateReservationShiftBounds(t *testing.T) {
	f := newBookingFixture(t)
	day := date(2024, time.January, 10)
	f.addShift(t, day, clock(9, 0), clock(12, 0))

	// The shift end itself is never bookable.
	_, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(12, 0), "")
	requireCode(t, err, "UNAVAILABLE")

	_, err = f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(8, 59), "")
	requireCode(t, err, "UNAVAILABLE")

	// One minute before end is still inside the window.
	reservation, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(11, 59), "")
	require.NoError(t, err)
	assert.Equal(t, "11:59", reservation.TimeSlot.Format("15:04"))
}

func TestCreateReservationConflict(t *testing.T) {
	f := newBookingFixture(t)
	day := date(2024, time.January, 10)
	f.addShift(t, day, clock(9, 0), clock(12, 0))
	other := f.users.add("Carol", domain.RoleCustomer)

	_, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(9, 0), "trim")
	require.NoError(t, err)

	_, err = f.booking.Create(context.Background(), other, f.staff.ID, day, clock(9, 0), "wash")
	requireCode(t, err, "CONFLICT")
}

func TestCancelledReservationStillBlocksSlot(t *testing.T) {
	f := newBookingFixture(t)
	day := date(2024, time.January, 10)
	f.addShift(t, day, clock(9, 0), clock(12, 0))

	reservation, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(10, 0), "")
	require.NoError(t, err)
	require.NoError(t, f.booking.Cancel(context.Background(), f.customer, reservation.ID))

	_, err = f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(10, 0), "")
	requireCode(t, err, "CONFLICT")
}

func TestUpdateReservation(t *testing.T) {
	f := newBookingFixture(t)
	day := date(2024, time.January, 10)
	f.addShift(t, day, clock(9, 0), clock(12, 0))

	reservation, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(9, 0), "trim")
	require.NoError(t, err)

	updated, err := f.booking.Update(context.Background(), f.customer, reservation.ID, day, clock(10, 30), "wash")
	require.NoError(t, err)
	assert.Equal(t, "10:30", updated.TimeSlot.Format("15:04"))
	assert.Equal(t, "wash", updated.Menu)
	assert.Equal(t, domain.ReservationStatusBooked, updated.Status)
	assert.Equal(t, f.customer.ID, updated.CustomerID)
}

func TestUpdateReservationToOwnSlot(t *testing.T) {
	f := newBookingFixture(t)
	day := date(2024, time.January, 10)
	f.addShift(t, day, clock(9, 0), clock(12, 0))

	reservation, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(9, 0), "trim")
	require.NoError(t, err)

	// Keeping the current slot is not a conflict with itself.
	updated, err := f.booking.Update(context.Background(), f.customer, reservation.ID, day, clock(9, 0), "wash")
	require.NoError(t, err)
	assert.Equal(t, "wash", updated.Menu)
}

func TestUpdateReservationConflict(t *testing.T) {
	f := newBookingFixture(t)
	day := date(2024, time.January, 10)
	f.addShift(t, day, clock(9, 0), clock(12, 0))
	other := f.users.add("Carol", domain.RoleCustomer)

	_, err := f.booking.Create(context.Background(), other, f.staff.ID, day, clock(10, 0), "")
	require.NoError(t, err)
	reservation, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(9, 0), "")
	require.NoError(t, err)

	_, err = f.booking.Update(context.Background(), f.customer, reservation.ID, day, clock(10, 0), "")
	requireCode(t, err, "CONFLICT")
}

func TestUpdateReservationOutsideShift(t *testing.T) {
	f := newBookingFixture(t)
	day := date(2024, time.January, 10)
	f.addShift(t, day, clock(9, 0), clock(12, 0))

	reservation, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(9, 0), "")
	require.NoError(t, err)

	_, err = f.booking.Update(context.Background(), f.customer, reservation.ID, day, clock(12, 0), "")
	requireCode(t, err, "UNAVAILABLE")

	// Moving to a day with no shift is likewise unavailable.
	_, err = f.booking.Update(context.Background(), f.customer, reservation.ID, date(2024, time.January, 11), clock(9, 0), "")
	requireCode(t, err, "UNAVAILABLE")
}

func TestUpdateReservationNotFound(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.booking.Update(context.Background(), f.customer, "missing", date(2024, time.January, 10), clock(9, 0), "")

	requireCode(t, err, "NOT_FOUND")
}

func TestCancelReservation(t *testing.T) {
	f := newBookingFixture(t)
	day := date(2024, time.January, 10)
	f.addShift(t, day, clock(9, 0), clock(12, 0))

	reservation, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(9, 0), "")
	require.NoError(t, err)

	require.NoError(t, f.booking.Cancel(context.Background(), f.customer, reservation.ID))

	stored, err := f.booking.GetByID(context.Background(), reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusCancelled, stored.Status)

	// Cancel has no status precondition; the second call succeeds silently.
	require.NoError(t, f.booking.Cancel(context.Background(), f.customer, reservation.ID))
}

func TestCancelReservationNotFound(t *testing.T) {
	f := newBookingFixture(t)

	err := f.booking.Cancel(context.Background(), f.customer, "missing")

	requireCode(t, err, "NOT_FOUND")
}

func TestListForCustomerOrdering(t *testing.T) {
	f := newBookingFixture(t)
	early := date(2024, time.January, 10)
	late := date(2024, time.January, 12)
	f.addShift(t, early, clock(9, 0), clock(12, 0))
	f.addShift(t, late, clock(9, 0), clock(12, 0))

	_, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, early, clock(9, 0), "")
	require.NoError(t, err)
	_, err = f.booking.Create(context.Background(), f.customer, f.staff.ID, early, clock(10, 0), "")
	require.NoError(t, err)
	_, err = f.booking.Create(context.Background(), f.customer, f.staff.ID, late, clock(9, 30), "")
	require.NoError(t, err)

	reservations, err := f.booking.ListForCustomer(context.Background(), f.customer.ID)
	require.NoError(t, err)
	require.Len(t, reservations, 3)

	// Most recent first: date descending, then slot descending.
	assert.Equal(t, "2024-01-12", reservations[0].Date.Format("2006-01-02"))
	assert.Equal(t, "10:00", reservations[1].TimeSlot.Format("15:04"))
	assert.Equal(t, "09:00", reservations[2].TimeSlot.Format("15:04"))
}

func TestBookingEndToEnd(t *testing.T) {
	f := newBookingFixture(t)
	day := date(2024, time.January, 10)
	f.addShift(t, day, clock(9, 0), clock(12, 0))
	other := f.users.add("Carol", domain.RoleCustomer)

	reservation, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(9, 0), "trim")
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusBooked, reservation.Status)

	_, err = f.booking.Create(context.Background(), other, f.staff.ID, day, clock(9, 0), "trim")
	requireCode(t, err, "CONFLICT")

	slots, err := f.availability.AvailableSlots(context.Background(), f.staff.ID, day)
	require.NoError(t, err)

	encoded := make([]string, 0, len(slots))
	for _, slot := range slots {
		encoded = append(encoded, slot.Format("15:04"))
	}
	assert.Equal(t, []string{"09:30", "10:00", "10:30", "11:00", "11:30"}, encoded)
}
