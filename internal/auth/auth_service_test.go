package auth

import (
	"context"
	"testing"
	"time"

	autherrors "dayflow/internal/auth/errors"
	"dayflow/internal/employee"
	"dayflow/internal/messaging/kafka"
	"dayflow/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

type capturePublisher struct {
	events []kafka.Event
}

func (p *capturePublisher) Enqueue(e kafka.Event) { p.events = append(p.events, e) }

func newAuthFixture(t *testing.T) (Service, employee.Repository, *capturePublisher) {
	t.Helper()

	st := store.New(store.NewMemoryPersister())
	employees := employee.NewRepository(st)
	assert.NoError(t, st.Open())

	publisher := &capturePublisher{}
	svc := NewService(employees, publisher, "test-secret", time.Hour)
	return svc, employees, publisher
}

func TestRegister_CreatesEmployeeAccount(t *testing.T) {
	svc, employees, publisher := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:      "asha@dayflow.test",
		Password:   "correct-horse",
		FullName:   "Asha Rao",
		Department: "Engineering",
	})
	assert.NoError(t, err)
	assert.Equal(t, employee.RoleEmployee, resp.User.Role)
	assert.True(t, resp.Persisted)

	stored, ok := employees.FindByEmail(context.Background(), "asha@dayflow.test")
	assert.True(t, ok)
	// Passwords are stored only as bcrypt hashes.
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.Zero(t, stored.Salary.NetSalary)

	assert.Len(t, publisher.events, 1)
	assert.Equal(t, "employee.created", publisher.events[0].EventType)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	req := RegisterRequest{Email: "dup@dayflow.test", Password: "password123", FullName: "Dup"}
	_, err := svc.Register(context.Background(), req)
	assert.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, autherrors.ErrEmailTaken)

	// Email comparison is case-insensitive.
	req.Email = "DUP@dayflow.test"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, autherrors.ErrEmailTaken)
}

func TestLogin_IssuesTokenWithIdentityClaims(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	reg, err := svc.Register(context.Background(), RegisterRequest{
		Email: "kai@dayflow.test", Password: "password123", FullName: "Kai Berg",
	})
	assert.NoError(t, err)

	resp, err := svc.Login(context.Background(), "kai@dayflow.test", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	parsed, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, reg.User.ID, claims["user_id"])
	assert.Equal(t, employee.RoleEmployee, claims["role"])
}

func TestLogin_WrongPasswordAndUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email: "mei@dayflow.test", Password: "password123", FullName: "Mei Lin",
	})
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), "mei@dayflow.test", "wrong")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ghost@dayflow.test", "password123")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestGetMe(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	reg, err := svc.Register(context.Background(), RegisterRequest{
		Email: "ivo@dayflow.test", Password: "password123", FullName: "Ivo Petrov",
	})
	assert.NoError(t, err)

	me, err := svc.GetMe(context.Background(), reg.User.ID)
	assert.NoError(t, err)
	assert.Equal(t, "ivo@dayflow.test", me.Email)

	_, err = svc.GetMe(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
}
