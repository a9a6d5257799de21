package report

type AttendanceSummary struct {
	Day       string `json:"day"`
	Present   int    `json:"present"`
	Absent    int    `json:"absent"`
	HalfDay   int    `json:"half_day"`
	OnLeave   int    `json:"on_leave"`
	CheckedIn int    `json:"checked_in"` // open records, no checkout yet
}

type LeaveSummary struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type DepartmentHeadcount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// Dashboard is the single privileged overview the frontend renders.
type Dashboard struct {
	TotalEmployees int                   `json:"total_employees"`
	Attendance     AttendanceSummary     `json:"attendance"`
	Leaves         LeaveSummary          `json:"leaves"`
	Departments    []DepartmentHeadcount `json:"departments"`
}
