package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/booking-service/internal/domain"
)

func seedReportingData(t *testing.T, f *bookingFixture) {
	t.Helper()
	day := date(2024, time.March, 1)
	f.addShift(t, day, clock(9, 0), clock(17, 0))

	_, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(9, 0), "trim")
	require.NoError(t, err)
	_, err = f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(9, 30), "trim")
	require.NoError(t, err)
	_, err = f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(10, 0), "wash")
	require.NoError(t, err)
	reservation, err := f.booking.Create(context.Background(), f.customer, f.staff.ID, day, clock(10, 30), "")
	require.NoError(t, err)
	require.NoError(t, f.booking.Cancel(context.Background(), f.customer, reservation.ID))
}

func TestCountByMenu(t *testing.T) {
	f := newBookingFixture(t)
	seedReportingData(t, f)
	reporting := NewReportingService(f.reservations, f.users)

	counts, err := reporting.CountByMenu(context.Background(), date(2024, time.March, 1), date(2024, time.March, 31))

	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["trim"])
	assert.Equal(t, int64(1), counts["wash"])
	// Reservations without a menu group under the sentinel key; cancelled
	// reservations are counted.
	assert.Equal(t, int64(1), counts[MenuKeyUnspecified])

	var total int64
	for _, count := range counts {
		total += count
	}
	assert.Equal(t, int64(4), total)
}

func TestCountByStaff(t *testing.T) {
	f := newBookingFixture(t)
	seedReportingData(t, f)
	reporting := NewReportingService(f.reservations, f.users)

	// An unassigned reservation must be skipped by the staff aggregate.
	require.NoError(t, f.reservations.Create(context.Background(), &domain.Reservation{
		CustomerID: f.customer.ID,
		Date:       date(2024, time.March, 2),
		TimeSlot:   clock(9, 0),
		Status:     domain.ReservationStatusBooked,
	}))

	counts, err := reporting.CountByStaff(context.Background(), date(2024, time.March, 1), date(2024, time.March, 31))

	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, int64(4), counts[f.staff.Name])
}

func TestCountByMenuEmptyRange(t *testing.T) {
	f := newBookingFixture(t)
	seedReportingData(t, f)
	reporting := NewReportingService(f.reservations, f.users)

	counts, err := reporting.CountByMenu(context.Background(), date(2024, time.April, 1), date(2024, time.April, 30))

	require.NoError(t, err)
	assert.Empty(t, counts)
}
