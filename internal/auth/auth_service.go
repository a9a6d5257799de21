package auth

import (
	"context"
	"time"

	autherrors "dayflow/internal/auth/errors"
	"dayflow/internal/employee"
	"dayflow/internal/events"
	"dayflow/internal/messaging/kafka"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
}

type service struct {
	employees employee.Repository
	outbox    kafka.Publisher
	secret    []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(employees employee.Repository, outbox kafka.Publisher, secret string, tokenTTL time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		employees: employees,
		outbox:    outbox,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		logger:    l,
		now:       time.Now,
	}
}

// Register creates the employee record behind a signup. New accounts always
// start as EMPLOYEE with a zero salary; roles and pay are granted later by
// privileged operations.
func (s *service) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	if _, exists := s.employees.FindByEmail(ctx, req.Email); exists {
		return RegisterResponse{}, autherrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterResponse{}, err
	}

	now := s.now()
	e := employee.Employee{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         employee.RoleEmployee,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Address:      req.Address,
		Department:   req.Department,
		Position:     req.Position,
		JoinDate:     now.Format("2006-01-02"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	persisted := s.employees.Insert(ctx, e)

	s.outbox.Enqueue(kafka.Event{
		Topic:     events.EmployeeCreatedTopic,
		Key:       e.ID.String(),
		EventType: "employee.created",
		Payload: kafka.Marshal(events.EmployeeCreatedEvent{
			EventType:  "employee.created",
			EmployeeID: e.ID.String(),
			Email:      e.Email,
			FullName:   e.FullName,
			OccurredAt: now.UTC(),
		}),
	})

	s.logger.Info("employee registered",
		zap.String("employee_id", e.ID.String()),
		zap.Bool("persisted", persisted),
	)

	return RegisterResponse{User: mapToAuthResponse(e), Persisted: persisted}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	user, ok := s.employees.FindByEmail(ctx, email)
	if !ok {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID.String(), user.Role)
	if err != nil {
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return LoginResponse{
		AccessToken: token,
		User:        mapToAuthResponse(*user),
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidToken
	}
	user, ok := s.employees.FindByID(ctx, id)
	if !ok {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}
	return mapToAuthResponse(*user), nil
}

func (s *service) generateToken(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iat":     s.now().Unix(),
		"exp":     s.now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func mapToAuthResponse(e employee.Employee) AuthResponse {
	return AuthResponse{
		ID:       e.ID.String(),
		Email:    e.Email,
		FullName: e.FullName,
		Role:     e.Role,
	}
}
