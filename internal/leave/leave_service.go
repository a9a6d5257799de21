package leave

import (
	"context"
	"strings"
	"time"

	"dayflow/internal/employee"
	"dayflow/internal/events"
	leaveerrors "dayflow/internal/leave/errors"
	"dayflow/internal/messaging/kafka"
	"dayflow/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Apply(ctx context.Context, actorID string, privileged bool, req ApplyLeaveRequest) (ApplyLeaveResponse, error)
	// Decide resolves a pending application. decision must be APPROVED or
	// REJECTED; approval of a finite type deducts the days in the same write.
	Decide(ctx context.Context, actorID string, leaveID string, decision string, comments string) (DecideLeaveResponse, error)
	GetAll(ctx context.Context, actorID string, privileged bool, filter GetLeavesFilter) ([]LeaveResponse, error)
	GetBalance(ctx context.Context, actorID string, privileged bool, employeeID string) (BalanceResponse, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	publisher kafka.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, employees employee.Repository, publisher kafka.Publisher, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if publisher == nil {
		publisher = kafka.NopPublisher{}
	}
	return &service{repo: repo, employees: employees, publisher: publisher, logger: l, now: time.Now}
}

// NewServiceWithClock pins the wall clock, for tests.
func NewServiceWithClock(repo Repository, employees employee.Repository, publisher kafka.Publisher, now func() time.Time, logger ...*zap.Logger) Service {
	s := NewService(repo, employees, publisher, logger...).(*service)
	s.now = now
	return s
}

func (s *service) Apply(ctx context.Context, actorID string, privileged bool, req ApplyLeaveRequest) (ApplyLeaveResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return ApplyLeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	target := actor
	if req.EmployeeID != "" {
		parsed, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			return ApplyLeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
		}
		if parsed != actor && !privileged {
			return ApplyLeaveResponse{}, apperror.ErrForbidden
		}
		target = parsed
	}

	leaveType, err := ParseType(req.LeaveType)
	if err != nil {
		return ApplyLeaveResponse{}, err
	}

	days, err := inclusiveDays(req.StartDate, req.EndDate)
	if err != nil {
		return ApplyLeaveResponse{}, err
	}

	// The balance guard runs only at application time and only for finite
	// types. Approval later deducts without re-checking.
	if leaveType.Finite() {
		balance := s.repo.FindBalance(ctx, target)
		if days > balance.Get(leaveType) {
			return ApplyLeaveResponse{}, leaveerrors.ErrInsufficientBalance
		}
	}

	now := s.now()
	record := Leave{
		ID:          uuid.New(),
		EmployeeID:  target,
		LeaveType:   leaveType,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Days:        days,
		Reason:      req.Reason,
		Status:      StatusPending,
		AppliedDate: now.Format("2006-01-02"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	persisted := s.repo.Insert(ctx, record)
	s.logger.Info("leave applied",
		zap.String("leave_id", record.ID.String()),
		zap.String("employee_id", target.String()),
		zap.String("leave_type", string(leaveType)),
		zap.Int("days", days),
		zap.Bool("persisted", persisted),
	)
	return ApplyLeaveResponse{Leave: s.mapToResponse(ctx, record), Persisted: persisted}, nil
}

func (s *service) Decide(ctx context.Context, actorID string, leaveID string, decision string, comments string) (DecideLeaveResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return DecideLeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	id, err := uuid.Parse(leaveID)
	if err != nil {
		return DecideLeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	status := strings.ToUpper(strings.TrimSpace(decision))
	if status != StatusApproved && status != StatusRejected {
		return DecideLeaveResponse{}, leaveerrors.ErrInvalidDecision
	}

	now := s.now()
	decidedDate := now.Format("2006-01-02")

	// The PENDING check and the write run inside the repo's critical
	// section, so a lost race surfaces as ErrAlreadyDecided instead of a
	// second deduction.
	record, persisted, err := s.repo.Decide(ctx, id, func(l *Leave, balance Balance) (*Balance, error) {
		if !strings.EqualFold(l.Status, StatusPending) {
			return nil, leaveerrors.ErrAlreadyDecided
		}

		l.Status = status
		l.ApprovedBy = &actor
		l.ApprovedDate = &decidedDate
		l.Comments = comments
		l.UpdatedAt = now

		// Rejection touches only the leave row. Approval of a finite type
		// also deducts, unconditionally, so a balance can go negative when
		// it shrank between application and approval.
		if status != StatusApproved || !l.LeaveType.Finite() {
			return nil, nil
		}
		balance.Deduct(l.LeaveType, l.Days)
		return &balance, nil
	})
	if err != nil {
		return DecideLeaveResponse{}, err
	}
	s.logger.Info("leave decided",
		zap.String("leave_id", record.ID.String()),
		zap.String("employee_id", record.EmployeeID.String()),
		zap.String("status", status),
		zap.Bool("persisted", persisted),
	)

	s.publisher.Enqueue(kafka.Event{
		Topic:     events.LeaveDecidedTopic,
		Key:       record.EmployeeID.String(),
		EventType: "leave.decided",
		Payload: kafka.Marshal(events.LeaveDecidedEvent{
			EventType:  "leave.decided",
			LeaveID:    record.ID.String(),
			EmployeeID: record.EmployeeID.String(),
			LeaveType:  string(record.LeaveType),
			Status:     status,
			Days:       record.Days,
			DecidedBy:  actor.String(),
			OccurredAt: now,
		}),
	})

	return DecideLeaveResponse{Leave: s.mapToResponse(ctx, record), Persisted: persisted}, nil
}

func (s *service) GetAll(ctx context.Context, actorID string, privileged bool, filter GetLeavesFilter) ([]LeaveResponse, error) {
	repoFilter := Filter{Status: filter.Status}

	if !privileged {
		if filter.EmployeeID != "" && filter.EmployeeID != actorID {
			return nil, apperror.ErrForbidden
		}
		id, err := uuid.Parse(actorID)
		if err != nil {
			return nil, leaveerrors.ErrInvalidActorID
		}
		repoFilter.EmployeeID = &id
	} else if filter.EmployeeID != "" {
		id, err := uuid.Parse(filter.EmployeeID)
		if err != nil {
			return nil, leaveerrors.ErrInvalidEmployeeID
		}
		repoFilter.EmployeeID = &id
	}

	records := s.repo.FindAll(ctx, repoFilter)
	res := make([]LeaveResponse, len(records))
	for i, l := range records {
		res[i] = s.mapToResponse(ctx, l)
	}
	return res, nil
}

func (s *service) GetBalance(ctx context.Context, actorID string, privileged bool, employeeID string) (BalanceResponse, error) {
	target := actorID
	if employeeID != "" {
		if employeeID != actorID && !privileged {
			return BalanceResponse{}, apperror.ErrForbidden
		}
		target = employeeID
	}

	id, err := uuid.Parse(target)
	if err != nil {
		return BalanceResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	balance := s.repo.FindBalance(ctx, id)
	return BalanceResponse{
		EmployeeID: id.String(),
		Paid:       balance.Paid,
		Sick:       balance.Sick,
		Unpaid:     balance.Unpaid,
	}, nil
}

// inclusiveDays counts calendar days with both endpoints included, so a
// single-day leave is 1.
func inclusiveDays(start, end string) (int, error) {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return 0, leaveerrors.ErrInvalidDateFormat
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return 0, leaveerrors.ErrInvalidDateFormat
	}
	if to.Before(from) {
		return 0, leaveerrors.ErrInvalidDateRange
	}
	return int(to.Sub(from).Hours()/24) + 1, nil
}

// mapToResponse joins in the employee's display fields at read time. A
// missing employee row leaves them empty rather than failing the read.
func (s *service) mapToResponse(ctx context.Context, l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:          l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		LeaveType:   string(l.LeaveType),
		StartDate:   l.StartDate,
		EndDate:     l.EndDate,
		Days:        l.Days,
		Reason:      l.Reason,
		Status:      l.Status,
		AppliedDate: l.AppliedDate,
		Comments:    l.Comments,
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedDate != nil {
		v := *l.ApprovedDate
		resp.ApprovedDate = &v
	}
	if emp, ok := s.employees.FindByID(ctx, l.EmployeeID); ok {
		resp.EmployeeName = emp.FullName
		resp.Department = emp.Department
	}
	return resp
}
