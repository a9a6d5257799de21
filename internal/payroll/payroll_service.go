package payroll

import (
	"context"
	"time"

	"dayflow/internal/employee"
	payrollerrors "dayflow/internal/payroll/errors"
	"dayflow/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	GetSalary(ctx context.Context, actorID string, privileged bool, employeeID string) (SalaryResponse, error)
	// UpdateSalary is a privileged partial update; omitted components keep
	// their stored value and the net is recomputed from the merged result.
	UpdateSalary(ctx context.Context, employeeID string, req UpdateSalaryRequest) (UpdateSalaryResponse, error)
	GenerateSlip(ctx context.Context, actorID string, privileged bool, employeeID string, month, year int) (Payslip, error)
}

type service struct {
	employees employee.Repository
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{employees: employees, logger: l, now: time.Now}
}

// NewServiceWithClock pins the wall clock, for tests.
func NewServiceWithClock(employees employee.Repository, now func() time.Time, logger ...*zap.Logger) Service {
	s := NewService(employees, logger...).(*service)
	s.now = now
	return s
}

// ComputeNetSalary is the single place the net formula lives.
func ComputeNetSalary(basic, hra, allowances, deductions int64) int64 {
	return basic + hra + allowances - deductions
}

func (s *service) GetSalary(ctx context.Context, actorID string, privileged bool, employeeID string) (SalaryResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return SalaryResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	if !privileged && actorID != id.String() {
		return SalaryResponse{}, apperror.ErrForbidden
	}

	e, ok := s.employees.FindByID(ctx, id)
	if !ok {
		return SalaryResponse{}, payrollerrors.ErrEmployeeNotFound
	}
	return mapSalary(*e), nil
}

func (s *service) UpdateSalary(ctx context.Context, employeeID string, req UpdateSalaryRequest) (UpdateSalaryResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return UpdateSalaryResponse{}, payrollerrors.ErrInvalidEmployeeID
	}

	e, ok := s.employees.FindByID(ctx, id)
	if !ok {
		return UpdateSalaryResponse{}, payrollerrors.ErrEmployeeNotFound
	}

	sal := e.Salary
	if req.Basic != nil {
		sal.Basic = *req.Basic
	}
	if req.HRA != nil {
		sal.HRA = *req.HRA
	}
	if req.Allowances != nil {
		sal.Allowances = *req.Allowances
	}
	if req.Deductions != nil {
		sal.Deductions = *req.Deductions
	}
	if sal.Basic < 0 || sal.HRA < 0 || sal.Allowances < 0 || sal.Deductions < 0 {
		return UpdateSalaryResponse{}, payrollerrors.ErrNegativeComponent
	}
	sal.NetSalary = ComputeNetSalary(sal.Basic, sal.HRA, sal.Allowances, sal.Deductions)

	e.Salary = sal
	e.UpdatedAt = s.now()
	persisted := s.employees.Update(ctx, *e)
	s.logger.Info("salary updated",
		zap.String("employee_id", id.String()),
		zap.Int64("net_salary", sal.NetSalary),
		zap.Bool("persisted", persisted),
	)
	return UpdateSalaryResponse{Salary: mapSalary(*e), Persisted: persisted}, nil
}

func (s *service) GenerateSlip(ctx context.Context, actorID string, privileged bool, employeeID string, month, year int) (Payslip, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return Payslip{}, payrollerrors.ErrInvalidEmployeeID
	}
	if !privileged && actorID != id.String() {
		return Payslip{}, apperror.ErrForbidden
	}
	if month < 1 || month > 12 || year < 1000 || year > 9999 {
		return Payslip{}, payrollerrors.ErrInvalidPeriod
	}

	e, ok := s.employees.FindByID(ctx, id)
	if !ok {
		return Payslip{}, payrollerrors.ErrEmployeeNotFound
	}

	return Payslip{
		EmployeeID:   e.ID.String(),
		EmployeeName: e.FullName,
		Department:   e.Department,
		Position:     e.Position,
		Month:        month,
		Year:         year,
		Salary:       mapSalary(*e),
		GeneratedAt:  s.now().Format(time.RFC3339),
	}, nil
}

func mapSalary(e employee.Employee) SalaryResponse {
	return SalaryResponse{
		EmployeeID: e.ID.String(),
		Basic:      e.Salary.Basic,
		HRA:        e.Salary.HRA,
		Allowances: e.Salary.Allowances,
		Deductions: e.Salary.Deductions,
		NetSalary:  e.Salary.NetSalary,
	}
}
