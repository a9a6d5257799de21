package leave

type ApplyLeaveRequest struct {
	// EmployeeID is optional; non-privileged callers may only apply for
	// themselves and can omit it.
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

type DecideLeaveRequest struct {
	Comments string `json:"comments"`
}

type GetLeavesFilter struct {
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Department   string  `json:"department,omitempty"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Reason       string  `json:"reason,omitempty"`
	Status       string  `json:"status"`
	AppliedDate  string  `json:"applied_date"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedDate *string `json:"approved_date,omitempty"`
	Comments     string  `json:"comments,omitempty"`
}

type ApplyLeaveResponse struct {
	Leave     LeaveResponse `json:"leave"`
	Persisted bool          `json:"persisted"`
}

type DecideLeaveResponse struct {
	Leave     LeaveResponse `json:"leave"`
	Persisted bool          `json:"persisted"`
}

type BalanceResponse struct {
	EmployeeID string `json:"employee_id"`
	Paid       int    `json:"paid"`
	Sick       int    `json:"sick"`
	Unpaid     int    `json:"unpaid"`
}
