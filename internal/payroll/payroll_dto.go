package payroll

// Amounts are in the currency's smallest unit, mirroring the stored salary.
type UpdateSalaryRequest struct {
	Basic      *int64 `json:"basic"`
	HRA        *int64 `json:"hra"`
	Allowances *int64 `json:"allowances"`
	Deductions *int64 `json:"deductions"`
}

type SalaryResponse struct {
	EmployeeID string `json:"employee_id"`
	Basic      int64  `json:"basic"`
	HRA        int64  `json:"hra"`
	Allowances int64  `json:"allowances"`
	Deductions int64  `json:"deductions"`
	NetSalary  int64  `json:"net_salary"`
}

type UpdateSalaryResponse struct {
	Salary    SalaryResponse `json:"salary"`
	Persisted bool           `json:"persisted"`
}

// Payslip is a labelled snapshot of the employee's current salary. It is not
// a ledger: regenerating after a salary change reflects the new figures for
// any period.
type Payslip struct {
	EmployeeID   string         `json:"employee_id"`
	EmployeeName string         `json:"employee_name"`
	Department   string         `json:"department"`
	Position     string         `json:"position"`
	Month        int            `json:"month"`
	Year         int            `json:"year"`
	Salary       SalaryResponse `json:"salary"`
	GeneratedAt  string         `json:"generated_at"`
}
