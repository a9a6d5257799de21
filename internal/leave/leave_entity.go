package leave

import (
	"strings"
	"time"

	leaveerrors "dayflow/internal/leave/errors"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Type is the closed set of leave types. Inbound strings are normalized by
// ParseType; nothing else in the system handles free-form type strings.
type Type string

const (
	TypePaid   Type = "PAID"
	TypeSick   Type = "SICK"
	TypeUnpaid Type = "UNPAID"
)

// ParseType normalizes a client-supplied leave type: case-insensitive, with
// a trailing " leave" suffix stripped, so "Paid Leave" and "sick" both
// resolve.
func ParseType(s string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.TrimSuffix(key, " leave")

	switch key {
	case "paid":
		return TypePaid, nil
	case "sick":
		return TypeSick, nil
	case "unpaid":
		return TypeUnpaid, nil
	default:
		return "", leaveerrors.ErrInvalidLeaveType
	}
}

// BalanceKey is total over Type; every known type maps to a balance field,
// which is what keeps the deduction code free of string matching.
func (t Type) BalanceKey() string {
	switch t {
	case TypePaid:
		return "paid"
	case TypeSick:
		return "sick"
	default:
		return "unpaid"
	}
}

// Finite reports whether the type draws from a bounded pool. Unpaid leave
// has no ceiling and bypasses every balance check.
func (t Type) Finite() bool {
	return t != TypeUnpaid
}

// Leave is one application. It is created PENDING and transitions exactly
// once to APPROVED or REJECTED; the record is terminal after that.
type Leave struct {
	ID           uuid.UUID  `json:"id"`
	EmployeeID   uuid.UUID  `json:"employee_id"`
	LeaveType    Type       `json:"leave_type"`
	StartDate    string     `json:"start_date"` // YYYY-MM-DD
	EndDate      string     `json:"end_date"`   // YYYY-MM-DD
	Days         int        `json:"days"`       // inclusive count, derived
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	AppliedDate  string     `json:"applied_date"`
	ApprovedBy   *uuid.UUID `json:"approved_by,omitempty"`
	ApprovedDate *string    `json:"approved_date,omitempty"`
	Comments     string     `json:"comments,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Balance is the per-employee remaining entitlement in days. Rows are
// created lazily: an employee without one has DefaultBalance, and a pure
// read never materializes it.
type Balance struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Paid       int       `json:"paid"`
	Sick       int       `json:"sick"`
	Unpaid     int       `json:"unpaid"`
}

func DefaultBalance(employeeID uuid.UUID) Balance {
	return Balance{EmployeeID: employeeID, Paid: 20, Sick: 10, Unpaid: 0}
}

func (b Balance) Get(t Type) int {
	switch t {
	case TypePaid:
		return b.Paid
	case TypeSick:
		return b.Sick
	default:
		return b.Unpaid
	}
}

// Deduct subtracts days for a type. It does not re-validate sufficiency;
// approval-time deduction is unconditional and may drive a balance negative.
func (b *Balance) Deduct(t Type, days int) {
	switch t {
	case TypePaid:
		b.Paid -= days
	case TypeSick:
		b.Sick -= days
	case TypeUnpaid:
		b.Unpaid -= days
	}
}
