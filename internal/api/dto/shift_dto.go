package dto

// AssignShiftRequest creates or replaces a staff working window for one date.
type AssignShiftRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ShiftResponse is the wire shape of a shift.
type ShiftResponse struct {
	ID        string `json:"id"`
	StaffID   string `json:"staff_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
