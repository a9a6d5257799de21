package attendance

const (
	ActionCheckIn  = "checkin"
	ActionCheckOut = "checkout"
)

type MarkAttendanceRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Date       string  `json:"date" binding:"required"`
	Status     string  `json:"status" binding:"required,oneof=PRESENT ABSENT HALF_DAY LEAVE"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
}

type GetAttendanceFilter struct {
	EmployeeID string `form:"employee_id"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type AttendanceResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Day         string  `json:"day"`
	CheckIn     string  `json:"check_in,omitempty"`
	CheckOut    *string `json:"check_out,omitempty"`
	Status      string  `json:"status"`
	HoursWorked float64 `json:"hours_worked"`
}

type CheckInOutResponse struct {
	Action    string             `json:"action"`
	Record    AttendanceResponse `json:"record"`
	Persisted bool               `json:"persisted"`
}

type MarkAttendanceResponse struct {
	Record    AttendanceResponse `json:"record"`
	Persisted bool               `json:"persisted"`
}
