package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/booking-service/internal/api/dto"
	"github.com/spec-kit/booking-service/internal/service"
	apperrors "github.com/spec-kit/booking-service/pkg/util"
)

// ShiftsHandler manages staff working windows.
type ShiftsHandler struct {
	shifts *service.ShiftService
}

// NewShiftsHandler constructs handler.
func NewShiftsHandler(shiftService *service.ShiftService) *ShiftsHandler {
	return &ShiftsHandler{shifts: shiftService}
}

// Assign PUT /admin/staff/:id/shift.
func (h *ShiftsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return apperrors.NewValidationError("date, start_time, end_time required", nil)
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}
	start, err := parseClock("start_time", req.StartTime)
	if err != nil {
		return err
	}
	end, err := parseClock("end_time", req.EndTime)
	if err != nil {
		return err
	}

	shift, err := h.shifts.Assign(c.Context(), c.Params("id"), date, start, end)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": shiftResponse(shift)})
}

// ListForStaff GET /staff/:id/shifts.
func (h *ShiftsHandler) ListForStaff(c *fiber.Ctx) error {
	shifts, err := h.shifts.ListForStaff(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		items = append(items, shiftResponse(&shifts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListInRange GET /admin/shifts?from=&to=.
func (h *ShiftsHandler) ListInRange(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return err
	}
	shifts, err := h.shifts.ListInRange(c.Context(), from, to)
	if err != nil {
		return err
	}
	items := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		items = append(items, shiftResponse(&shifts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
