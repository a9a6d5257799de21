package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusHalfDay = "HALF_DAY"
	StatusLeave   = "LEAVE"
)

// Attendance is one (employee, calendar day) pair. At most one record exists
// per pair, and its ID stays stable from check-in through check-out.
type Attendance struct {
	ID          uuid.UUID `json:"id"`
	EmployeeID  uuid.UUID `json:"employee_id"`
	Day         string    `json:"day"`      // YYYY-MM-DD, see DayKey
	CheckIn     string    `json:"check_in"` // HH:MM wall clock
	CheckOut    *string   `json:"check_out,omitempty"`
	Status      string    `json:"status"`
	HoursWorked float64   `json:"hours_worked"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DayKey renders the calendar day an instant belongs to. Day boundaries are
// server-local midnight; the system has no cross-timezone attendance story.
func DayKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// TimeOfDay renders the HH:MM wall clock stored on a record.
func TimeOfDay(t time.Time) string {
	return t.Local().Format("15:04")
}
