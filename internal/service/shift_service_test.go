package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignShift(t *testing.T) {
	f := newBookingFixture(t)
	shiftService := NewShiftService(f.users, f.shifts, nil)
	day := date(2024, time.January, 10)

	shift, err := shiftService.Assign(context.Background(), f.staff.ID, day, clock(9, 0), clock(17, 0))

	require.NoError(t, err)
	assert.Equal(t, f.staff.ID, shift.StaffID)
	assert.Equal(t, "09:00", shift.StartTime.Format("15:04"))
	assert.Equal(t, "17:00", shift.EndTime.Format("15:04"))
}

func TestAssignShiftReplacesWindow(t *testing.T) {
	f := newBookingFixture(t)
	shiftService := NewShiftService(f.users, f.shifts, nil)
	day := date(2024, time.January, 10)

	first, err := shiftService.Assign(context.Background(), f.staff.ID, day, clock(9, 0), clock(17, 0))
	require.NoError(t, err)
	second, err := shiftService.Assign(context.Background(), f.staff.ID, day, clock(10, 0), clock(18, 0))
	require.NoError(t, err)

	// One shift per (staff, date): reassignment overwrites.
	assert.Equal(t, first.ID, second.ID)
	stored, err := f.shifts.GetByStaffAndDate(context.Background(), f.staff.ID, day)
	require.NoError(t, err)
	assert.Equal(t, "10:00", stored.StartTime.Format("15:04"))
}

func TestAssignShiftInvalidWindow(t *testing.T) {
	f := newBookingFixture(t)
	shiftService := NewShiftService(f.users, f.shifts, nil)
	day := date(2024, time.January, 10)

	_, err := shiftService.Assign(context.Background(), f.staff.ID, day, clock(17, 0), clock(9, 0))
	requireCode(t, err, "VALIDATION_FAILED")

	_, err = shiftService.Assign(context.Background(), f.staff.ID, day, clock(9, 0), clock(9, 0))
	requireCode(t, err, "VALIDATION_FAILED")
}

func TestAssignShiftRequiresStaffRole(t *testing.T) {
	f := newBookingFixture(t)
	shiftService := NewShiftService(f.users, f.shifts, nil)

	_, err := shiftService.Assign(context.Background(), f.customer.ID, date(2024, time.January, 10), clock(9, 0), clock(17, 0))

	requireCode(t, err, "VALIDATION_FAILED")
}

func TestAssignShiftStaffNotFound(t *testing.T) {
	f := newBookingFixture(t)
	shiftService := NewShiftService(f.users, f.shifts, nil)

	_, err := shiftService.Assign(context.Background(), "missing", date(2024, time.January, 10), clock(9, 0), clock(17, 0))

	requireCode(t, err, "NOT_FOUND")
}

func TestListShiftsForStaffOrdered(t *testing.T) {
	f := newBookingFixture(t)
	shiftService := NewShiftService(f.users, f.shifts, nil)

	_, err := shiftService.Assign(context.Background(), f.staff.ID, date(2024, time.January, 12), clock(9, 0), clock(17, 0))
	require.NoError(t, err)
	_, err = shiftService.Assign(context.Background(), f.staff.ID, date(2024, time.January, 10), clock(9, 0), clock(17, 0))
	require.NoError(t, err)

	shifts, err := shiftService.ListForStaff(context.Background(), f.staff.ID)
	require.NoError(t, err)
	require.Len(t, shifts, 2)
	assert.True(t, shifts[0].Date.Before(shifts[1].Date))
}
