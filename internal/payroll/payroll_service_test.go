package payroll

import (
	"context"
	"testing"
	"time"

	"dayflow/internal/employee"
	payrollerrors "dayflow/internal/payroll/errors"
	"dayflow/internal/shared/apperror"
	"dayflow/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newPayrollFixture(t *testing.T) (Service, employee.Repository) {
	t.Helper()

	st := store.New(store.NewMemoryPersister())
	employees := employee.NewRepository(st)
	assert.NoError(t, st.Open())

	now := func() time.Time {
		return time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	}
	return NewServiceWithClock(employees, now), employees
}

func seedEmployee(t *testing.T, employees employee.Repository, sal employee.Salary) uuid.UUID {
	t.Helper()
	emp := employee.Employee{
		ID:         uuid.New(),
		Email:      "pay@dayflow.test",
		FullName:   "Ada Nwosu",
		Department: "Engineering",
		Position:   "Engineer",
		Role:       employee.RoleEmployee,
		Salary:     sal,
	}
	employees.Insert(context.Background(), emp)
	return emp.ID
}

func TestComputeNetSalary(t *testing.T) {
	assert.Equal(t, int64(82000), ComputeNetSalary(60000, 15000, 10000, 3000))
	assert.Equal(t, int64(0), ComputeNetSalary(0, 0, 0, 0))
	// Deductions above gross yield a negative net; the formula does not clamp.
	assert.Equal(t, int64(-500), ComputeNetSalary(1000, 0, 0, 1500))
}

func TestUpdateSalary_PartialUpdateRecomputesNet(t *testing.T) {
	svc, employees := newPayrollFixture(t)
	id := seedEmployee(t, employees, employee.Salary{
		Basic: 60000, HRA: 15000, Allowances: 10000, Deductions: 3000, NetSalary: 82000,
	})

	basic := int64(65000)
	resp, err := svc.UpdateSalary(context.Background(), id.String(), UpdateSalaryRequest{Basic: &basic})
	assert.NoError(t, err)
	assert.Equal(t, int64(65000), resp.Salary.Basic)
	// Untouched components survive the partial update.
	assert.Equal(t, int64(15000), resp.Salary.HRA)
	assert.Equal(t, int64(10000), resp.Salary.Allowances)
	assert.Equal(t, int64(3000), resp.Salary.Deductions)
	assert.Equal(t, int64(87000), resp.Salary.NetSalary)
	assert.True(t, resp.Persisted)

	stored, ok := employees.FindByID(context.Background(), id)
	assert.True(t, ok)
	assert.Equal(t, int64(87000), stored.Salary.NetSalary)
}

func TestUpdateSalary_RejectsNegativeComponents(t *testing.T) {
	svc, employees := newPayrollFixture(t)
	id := seedEmployee(t, employees, employee.Salary{Basic: 50000})

	bad := int64(-1)
	_, err := svc.UpdateSalary(context.Background(), id.String(), UpdateSalaryRequest{HRA: &bad})
	assert.ErrorIs(t, err, payrollerrors.ErrNegativeComponent)
}

func TestUpdateSalary_UnknownEmployee(t *testing.T) {
	svc, _ := newPayrollFixture(t)

	basic := int64(1)
	_, err := svc.UpdateSalary(context.Background(), uuid.NewString(), UpdateSalaryRequest{Basic: &basic})
	assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotFound)
}

func TestGetSalary_OwnershipEnforced(t *testing.T) {
	svc, employees := newPayrollFixture(t)
	id := seedEmployee(t, employees, employee.Salary{Basic: 50000, NetSalary: 50000})

	_, err := svc.GetSalary(context.Background(), uuid.NewString(), false, id.String())
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	own, err := svc.GetSalary(context.Background(), id.String(), false, id.String())
	assert.NoError(t, err)
	assert.Equal(t, int64(50000), own.NetSalary)

	privileged, err := svc.GetSalary(context.Background(), uuid.NewString(), true, id.String())
	assert.NoError(t, err)
	assert.Equal(t, int64(50000), privileged.NetSalary)
}

func TestGenerateSlip_SnapshotsCurrentSalary(t *testing.T) {
	svc, employees := newPayrollFixture(t)
	id := seedEmployee(t, employees, employee.Salary{
		Basic: 60000, HRA: 15000, Allowances: 10000, Deductions: 3000, NetSalary: 82000,
	})

	slip, err := svc.GenerateSlip(context.Background(), id.String(), false, id.String(), 2, 2025)
	assert.NoError(t, err)
	assert.Equal(t, 2, slip.Month)
	assert.Equal(t, 2025, slip.Year)
	assert.Equal(t, "Ada Nwosu", slip.EmployeeName)
	assert.Equal(t, int64(82000), slip.Salary.NetSalary)

	// The slip is a snapshot, not a ledger: after a raise, regenerating the
	// same past period shows the new figures.
	basic := int64(65000)
	_, err = svc.UpdateSalary(context.Background(), id.String(), UpdateSalaryRequest{Basic: &basic})
	assert.NoError(t, err)

	again, err := svc.GenerateSlip(context.Background(), id.String(), false, id.String(), 2, 2025)
	assert.NoError(t, err)
	assert.Equal(t, int64(87000), again.Salary.NetSalary)
}

func TestGenerateSlip_ValidatesPeriodAndOwnership(t *testing.T) {
	svc, employees := newPayrollFixture(t)
	id := seedEmployee(t, employees, employee.Salary{})

	_, err := svc.GenerateSlip(context.Background(), id.String(), false, id.String(), 13, 2025)
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)

	_, err = svc.GenerateSlip(context.Background(), id.String(), false, id.String(), 0, 2025)
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)

	_, err = svc.GenerateSlip(context.Background(), uuid.NewString(), false, id.String(), 2, 2025)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}
