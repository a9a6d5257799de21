package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"dayflow/internal/attendance"
	attendanceerrors "dayflow/internal/attendance/errors"
	"dayflow/internal/employee"
	"dayflow/internal/leave"

	"go.uber.org/zap"
)

type Service interface {
	// Dashboard tallies the whole dataset; day selects which calendar day
	// the attendance summary covers and defaults to today.
	Dashboard(ctx context.Context, day string) (Dashboard, error)
}

type service struct {
	employees   employee.Repository
	attendances attendance.Repository
	leaves      leave.Repository
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(employees employee.Repository, attendances attendance.Repository, leaves leave.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		employees:   employees,
		attendances: attendances,
		leaves:      leaves,
		logger:      l,
		now:         time.Now,
	}
}

// NewServiceWithClock pins the wall clock, for tests.
func NewServiceWithClock(employees employee.Repository, attendances attendance.Repository, leaves leave.Repository, now func() time.Time, logger ...*zap.Logger) Service {
	s := NewService(employees, attendances, leaves, logger...).(*service)
	s.now = now
	return s
}

func (s *service) Dashboard(ctx context.Context, day string) (Dashboard, error) {
	if day == "" {
		day = attendance.DayKey(s.now())
	} else if _, err := time.Parse("2006-01-02", day); err != nil {
		return Dashboard{}, attendanceerrors.ErrInvalidDateFormat
	}

	employees := s.employees.FindAll(ctx)
	byDepartment := map[string]int{}
	for _, e := range employees {
		dept := e.Department
		if dept == "" {
			dept = "Unassigned"
		}
		byDepartment[dept]++
	}
	departments := make([]DepartmentHeadcount, 0, len(byDepartment))
	for dept, count := range byDepartment {
		departments = append(departments, DepartmentHeadcount{Department: dept, Count: count})
	}
	sort.Slice(departments, func(i, j int) bool {
		return departments[i].Department < departments[j].Department
	})

	// Statuses compare case-insensitively: restored snapshots may carry
	// mixed casing and must still be counted.
	att := AttendanceSummary{Day: day}
	for _, a := range s.attendances.FindAll(ctx, attendance.Filter{From: day, To: day}) {
		switch {
		case strings.EqualFold(a.Status, attendance.StatusPresent):
			att.Present++
		case strings.EqualFold(a.Status, attendance.StatusAbsent):
			att.Absent++
		case strings.EqualFold(a.Status, attendance.StatusHalfDay):
			att.HalfDay++
		case strings.EqualFold(a.Status, attendance.StatusLeave):
			att.OnLeave++
		}
		if a.CheckIn != "" && a.CheckOut == nil {
			att.CheckedIn++
		}
	}

	var leaves LeaveSummary
	for _, l := range s.leaves.FindAll(ctx, leave.Filter{}) {
		switch {
		case strings.EqualFold(l.Status, leave.StatusPending):
			leaves.Pending++
		case strings.EqualFold(l.Status, leave.StatusApproved):
			leaves.Approved++
		case strings.EqualFold(l.Status, leave.StatusRejected):
			leaves.Rejected++
		}
	}

	return Dashboard{
		TotalEmployees: len(employees),
		Attendance:     att,
		Leaves:         leaves,
		Departments:    departments,
	}, nil
}
