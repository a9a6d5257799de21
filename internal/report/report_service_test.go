package report

import (
	"context"
	"testing"
	"time"

	"dayflow/internal/attendance"
	attendanceerrors "dayflow/internal/attendance/errors"
	"dayflow/internal/employee"
	"dayflow/internal/leave"
	"dayflow/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newReportFixture(t *testing.T) (Service, employee.Repository, attendance.Repository, leave.Repository) {
	t.Helper()

	st := store.New(store.NewMemoryPersister())
	employees := employee.NewRepository(st)
	attendances := attendance.NewRepository(st)
	leaves := leave.NewRepository(st)
	assert.NoError(t, st.Open())

	now := func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	}
	return NewServiceWithClock(employees, attendances, leaves, now), employees, attendances, leaves
}

func TestDashboard_Tallies(t *testing.T) {
	svc, employees, attendances, leaves := newReportFixture(t)
	ctx := context.Background()

	for _, dept := range []string{"Engineering", "Engineering", "Sales", ""} {
		employees.Insert(ctx, employee.Employee{ID: uuid.New(), Department: dept})
	}

	out := "17:00"
	attendances.Upsert(ctx, attendance.Attendance{
		ID: uuid.New(), EmployeeID: uuid.New(), Day: "2025-03-10",
		Status: attendance.StatusPresent, CheckIn: "09:00", CheckOut: &out,
	})
	attendances.Upsert(ctx, attendance.Attendance{
		ID: uuid.New(), EmployeeID: uuid.New(), Day: "2025-03-10",
		Status: attendance.StatusPresent, CheckIn: "09:30",
	})
	attendances.Upsert(ctx, attendance.Attendance{
		ID: uuid.New(), EmployeeID: uuid.New(), Day: "2025-03-10",
		Status: attendance.StatusAbsent,
	})
	// Outside the requested day, must not count.
	attendances.Upsert(ctx, attendance.Attendance{
		ID: uuid.New(), EmployeeID: uuid.New(), Day: "2025-03-09",
		Status: attendance.StatusPresent, CheckIn: "09:00",
	})

	leaves.Insert(ctx, leave.Leave{ID: uuid.New(), EmployeeID: uuid.New(), Status: leave.StatusPending})
	leaves.Insert(ctx, leave.Leave{ID: uuid.New(), EmployeeID: uuid.New(), Status: leave.StatusPending})
	leaves.Insert(ctx, leave.Leave{ID: uuid.New(), EmployeeID: uuid.New(), Status: leave.StatusApproved})
	leaves.Insert(ctx, leave.Leave{ID: uuid.New(), EmployeeID: uuid.New(), Status: leave.StatusRejected})

	dash, err := svc.Dashboard(ctx, "2025-03-10")
	assert.NoError(t, err)

	assert.Equal(t, 4, dash.TotalEmployees)
	assert.Equal(t, 2, dash.Attendance.Present)
	assert.Equal(t, 1, dash.Attendance.Absent)
	assert.Equal(t, 1, dash.Attendance.CheckedIn)
	assert.Equal(t, 2, dash.Leaves.Pending)
	assert.Equal(t, 1, dash.Leaves.Approved)
	assert.Equal(t, 1, dash.Leaves.Rejected)

	assert.Equal(t, []DepartmentHeadcount{
		{Department: "Engineering", Count: 2},
		{Department: "Sales", Count: 1},
		{Department: "Unassigned", Count: 1},
	}, dash.Departments)
}

func TestDashboard_CountsMixedCaseStatuses(t *testing.T) {
	svc, _, attendances, leaves := newReportFixture(t)
	ctx := context.Background()

	// Restored snapshots can carry mixed casing; tallies must still see them.
	attendances.Upsert(ctx, attendance.Attendance{
		ID: uuid.New(), EmployeeID: uuid.New(), Day: "2025-03-10",
		Status: "present", CheckIn: "09:00",
	})
	attendances.Upsert(ctx, attendance.Attendance{
		ID: uuid.New(), EmployeeID: uuid.New(), Day: "2025-03-10",
		Status: "Half_Day",
	})
	leaves.Insert(ctx, leave.Leave{ID: uuid.New(), EmployeeID: uuid.New(), Status: "pending"})
	leaves.Insert(ctx, leave.Leave{ID: uuid.New(), EmployeeID: uuid.New(), Status: "Approved"})

	dash, err := svc.Dashboard(ctx, "2025-03-10")
	assert.NoError(t, err)
	assert.Equal(t, 1, dash.Attendance.Present)
	assert.Equal(t, 1, dash.Attendance.HalfDay)
	assert.Equal(t, 1, dash.Leaves.Pending)
	assert.Equal(t, 1, dash.Leaves.Approved)
}

func TestDashboard_DefaultsToToday(t *testing.T) {
	svc, _, attendances, _ := newReportFixture(t)
	ctx := context.Background()

	attendances.Upsert(ctx, attendance.Attendance{
		ID: uuid.New(), EmployeeID: uuid.New(), Day: "2025-03-10",
		Status: attendance.StatusPresent, CheckIn: "09:00",
	})

	dash, err := svc.Dashboard(ctx, "")
	assert.NoError(t, err)
	assert.Equal(t, "2025-03-10", dash.Attendance.Day)
	assert.Equal(t, 1, dash.Attendance.Present)
}

func TestDashboard_RejectsBadDay(t *testing.T) {
	svc, _, _, _ := newReportFixture(t)

	_, err := svc.Dashboard(context.Background(), "10-03-2025")
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateFormat)
}
