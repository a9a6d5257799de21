package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleHR       = "HR"
	RoleAdmin    = "ADMIN"
)

// Salary components are stored in the currency's smallest unit to avoid
// floating point drift. NetSalary is a derived cache of
// basic+hra+allowances-deductions; it is recomputed on every write and never
// trusted on its own.
type Salary struct {
	Basic      int64 `json:"basic"`
	HRA        int64 `json:"hra"`
	Allowances int64 `json:"allowances"`
	Deductions int64 `json:"deductions"`
	NetSalary  int64 `json:"net_salary"`
}

// Employee is both the identity record and the HR profile. Records are never
// deleted; there is no offboarding flow in this system.
type Employee struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Department   string    `json:"department"`
	Position     string    `json:"position"`
	JoinDate     string    `json:"join_date"` // YYYY-MM-DD
	Salary       Salary    `json:"salary"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
