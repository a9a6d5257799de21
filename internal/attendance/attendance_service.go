package attendance

import (
	"context"
	"math"
	"time"

	attendanceerrors "dayflow/internal/attendance/errors"
	"dayflow/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// CheckInOut is the employee-facing toggle: first call of a day opens a
	// record, the next call closes it, any further call fails.
	CheckInOut(ctx context.Context, employeeID string) (CheckInOutResponse, error)
	Mark(ctx context.Context, req MarkAttendanceRequest) (MarkAttendanceResponse, error)
	GetAll(ctx context.Context, actorID string, privileged bool, filter GetAttendanceFilter) ([]AttendanceResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{repo: repo, logger: l, now: time.Now}
}

// NewServiceWithClock pins the wall clock, for tests.
func NewServiceWithClock(repo Repository, now func() time.Time, logger ...*zap.Logger) Service {
	s := NewService(repo, logger...).(*service)
	s.now = now
	return s
}

func (s *service) CheckInOut(ctx context.Context, employeeID string) (CheckInOutResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return CheckInOutResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now()
	day := DayKey(now)

	// Which half of the day this call is gets decided inside the repo's
	// critical section; two concurrent calls can never both close the same
	// record.
	var action string
	record, persisted, err := s.repo.Transition(ctx, empID, day, func(existing *Attendance) (Attendance, error) {
		if existing == nil {
			action = ActionCheckIn
			return Attendance{
				ID:          uuid.New(),
				EmployeeID:  empID,
				Day:         day,
				CheckIn:     TimeOfDay(now),
				Status:      StatusPresent,
				HoursWorked: 0,
				CreatedAt:   now,
				UpdatedAt:   now,
			}, nil
		}

		if existing.CheckOut != nil {
			return Attendance{}, attendanceerrors.ErrAlreadyCheckedOut
		}

		checkOut := TimeOfDay(now)
		hours, err := hoursBetween(existing.CheckIn, checkOut)
		if err != nil {
			return Attendance{}, err
		}

		action = ActionCheckOut
		closed := *existing
		closed.CheckOut = &checkOut
		closed.HoursWorked = hours
		closed.UpdatedAt = now
		return closed, nil
	})
	if err != nil {
		return CheckInOutResponse{}, err
	}

	s.logger.Info("attendance toggled",
		zap.String("employee_id", employeeID),
		zap.String("day", day),
		zap.String("action", action),
		zap.Float64("hours_worked", record.HoursWorked),
		zap.Bool("persisted", persisted),
	)
	return CheckInOutResponse{
		Action:    action,
		Record:    mapToResponse(record),
		Persisted: persisted,
	}, nil
}

// Mark is the privileged upsert. Re-marking a (employee, day) replaces the
// record in place and keeps its id.
func (s *service) Mark(ctx context.Context, req MarkAttendanceRequest) (MarkAttendanceResponse, error) {
	empID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return MarkAttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return MarkAttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	if req.CheckIn != nil {
		if err := validateTimeOfDay(*req.CheckIn); err != nil {
			return MarkAttendanceResponse{}, err
		}
	}
	if req.CheckOut != nil {
		if err := validateTimeOfDay(*req.CheckOut); err != nil {
			return MarkAttendanceResponse{}, err
		}
	}

	now := s.now()
	record, persisted, err := s.repo.Transition(ctx, empID, req.Date, func(existing *Attendance) (Attendance, error) {
		next := Attendance{
			ID:         uuid.New(),
			EmployeeID: empID,
			Day:        req.Date,
			Status:     req.Status,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if existing != nil {
			next.ID = existing.ID
			next.CreatedAt = existing.CreatedAt
		}

		if req.CheckIn != nil {
			next.CheckIn = *req.CheckIn
		}
		if req.CheckOut != nil {
			next.CheckOut = req.CheckOut
		}

		// Hours are derived only when both times are present, else stay 0.
		if next.CheckIn != "" && next.CheckOut != nil {
			hours, err := hoursBetween(next.CheckIn, *next.CheckOut)
			if err != nil {
				return Attendance{}, err
			}
			next.HoursWorked = hours
		}
		return next, nil
	})
	if err != nil {
		return MarkAttendanceResponse{}, err
	}
	s.logger.Info("attendance marked",
		zap.String("employee_id", req.EmployeeID),
		zap.String("day", req.Date),
		zap.String("status", req.Status),
		zap.Bool("persisted", persisted),
	)
	return MarkAttendanceResponse{Record: mapToResponse(record), Persisted: persisted}, nil
}

func (s *service) GetAll(ctx context.Context, actorID string, privileged bool, filter GetAttendanceFilter) ([]AttendanceResponse, error) {
	repoFilter := Filter{From: filter.From, To: filter.To}
	if filter.From != "" {
		if _, err := time.Parse("2006-01-02", filter.From); err != nil {
			return nil, attendanceerrors.ErrInvalidDateFormat
		}
	}
	if filter.To != "" {
		if _, err := time.Parse("2006-01-02", filter.To); err != nil {
			return nil, attendanceerrors.ErrInvalidDateFormat
		}
	}

	if !privileged {
		// Callers are compared by identity: a non-privileged caller asking
		// for anyone but themselves is refused outright.
		if filter.EmployeeID != "" && filter.EmployeeID != actorID {
			return nil, apperror.ErrForbidden
		}
		id, err := uuid.Parse(actorID)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidEmployeeID
		}
		repoFilter.EmployeeID = &id
	} else if filter.EmployeeID != "" {
		id, err := uuid.Parse(filter.EmployeeID)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidEmployeeID
		}
		repoFilter.EmployeeID = &id
	}

	records := s.repo.FindAll(ctx, repoFilter)
	res := make([]AttendanceResponse, len(records))
	for i, a := range records {
		res[i] = mapToResponse(a)
	}
	return res, nil
}

// hoursBetween computes fractional hours between two same-day HH:MM stamps,
// rounded to 2 decimals. A checkout earlier than the checkin is rejected
// rather than stored as negative hours.
func hoursBetween(checkIn, checkOut string) (float64, error) {
	in, err := time.Parse("15:04", checkIn)
	if err != nil {
		return 0, attendanceerrors.ErrInvalidTimeFormat
	}
	out, err := time.Parse("15:04", checkOut)
	if err != nil {
		return 0, attendanceerrors.ErrInvalidTimeFormat
	}

	hours := out.Sub(in).Hours()
	if hours < 0 {
		return 0, attendanceerrors.ErrNegativeDuration
	}
	return math.Round(hours*100) / 100, nil
}

func validateTimeOfDay(v string) error {
	if _, err := time.Parse("15:04", v); err != nil {
		return attendanceerrors.ErrInvalidTimeFormat
	}
	return nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:          a.ID.String(),
		EmployeeID:  a.EmployeeID.String(),
		Day:         a.Day,
		CheckIn:     a.CheckIn,
		CheckOut:    a.CheckOut,
		Status:      a.Status,
		HoursWorked: a.HoursWorked,
	}
}
