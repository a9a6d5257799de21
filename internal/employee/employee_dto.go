package employee

type UpdateProfileRequest struct {
	FullName   *string `json:"full_name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
}

type SalaryResponse struct {
	Basic      int64 `json:"basic"`
	HRA        int64 `json:"hra"`
	Allowances int64 `json:"allowances"`
	Deductions int64 `json:"deductions"`
	NetSalary  int64 `json:"net_salary"`
}

type EmployeeResponse struct {
	ID         string         `json:"id"`
	Email      string         `json:"email"`
	Role       string         `json:"role"`
	FullName   string         `json:"full_name"`
	Phone      string         `json:"phone,omitempty"`
	Address    string         `json:"address,omitempty"`
	Department string         `json:"department,omitempty"`
	Position   string         `json:"position,omitempty"`
	JoinDate   string         `json:"join_date,omitempty"`
	Salary     SalaryResponse `json:"salary"`
}

type UpdateProfileResponse struct {
	Employee  EmployeeResponse `json:"employee"`
	Persisted bool             `json:"persisted"`
}
