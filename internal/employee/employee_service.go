package employee

import (
	"context"
	"time"

	employeeerrors "dayflow/internal/employee/errors"
	"dayflow/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, actorID string, privileged bool, id string) (EmployeeResponse, error)
	UpdateProfile(ctx context.Context, actorID string, privileged bool, id string, req UpdateProfileRequest) (UpdateProfileResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, logger: l, now: time.Now}
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	records := s.repo.FindAll(ctx)
	res := make([]EmployeeResponse, len(records))
	for i, e := range records {
		res[i] = MapToResponse(e)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, actorID string, privileged bool, id string) (EmployeeResponse, error) {
	targetID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if !privileged && actorID != targetID.String() {
		return EmployeeResponse{}, apperror.ErrForbidden
	}

	e, ok := s.repo.FindByID(ctx, targetID)
	if !ok {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	return MapToResponse(*e), nil
}

func (s *service) UpdateProfile(ctx context.Context, actorID string, privileged bool, id string, req UpdateProfileRequest) (UpdateProfileResponse, error) {
	targetID, err := uuid.Parse(id)
	if err != nil {
		return UpdateProfileResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if !privileged && actorID != targetID.String() {
		return UpdateProfileResponse{}, apperror.ErrForbidden
	}

	e, ok := s.repo.FindByID(ctx, targetID)
	if !ok {
		return UpdateProfileResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	// Partial update: omitted fields keep their stored value. Role and
	// salary are never touched here; salary changes go through payroll.
	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.Address != nil {
		e.Address = *req.Address
	}
	if req.Department != nil {
		e.Department = *req.Department
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	e.UpdatedAt = s.now()

	persisted := s.repo.Update(ctx, *e)
	s.logger.Info("profile updated",
		zap.String("employee_id", e.ID.String()),
		zap.Bool("persisted", persisted),
	)

	return UpdateProfileResponse{Employee: MapToResponse(*e), Persisted: persisted}, nil
}

// MapToResponse strips the password hash; everything else is shaped for the
// client as-is.
func MapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID.String(),
		Email:      e.Email,
		Role:       e.Role,
		FullName:   e.FullName,
		Phone:      e.Phone,
		Address:    e.Address,
		Department: e.Department,
		Position:   e.Position,
		JoinDate:   e.JoinDate,
		Salary: SalaryResponse{
			Basic:      e.Salary.Basic,
			HRA:        e.Salary.HRA,
			Allowances: e.Salary.Allowances,
			Deductions: e.Salary.Deductions,
			NetSalary:  e.Salary.NetSalary,
		},
	}
}
