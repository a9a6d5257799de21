package leave

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	leaveerrors "dayflow/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	applyResp  ApplyLeaveResponse
	applyErr   error
	decideResp DecideLeaveResponse
	decideErr  error

	gotDecision string
	gotComments string
}

func (s *stubService) Apply(_ context.Context, _ string, _ bool, _ ApplyLeaveRequest) (ApplyLeaveResponse, error) {
	return s.applyResp, s.applyErr
}

func (s *stubService) Decide(_ context.Context, _ string, _ string, decision string, comments string) (DecideLeaveResponse, error) {
	s.gotDecision = decision
	s.gotComments = comments
	return s.decideResp, s.decideErr
}

func (s *stubService) GetAll(context.Context, string, bool, GetLeavesFilter) ([]LeaveResponse, error) {
	return nil, nil
}

func (s *stubService) GetBalance(context.Context, string, bool, string) (BalanceResponse, error) {
	return BalanceResponse{}, nil
}

func newTestContext(t *testing.T, method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set("user_id", "3b4cbb9b-49d9-4f79-9a3c-2a2464a8e107")
	c.Set("role", "EMPLOYEE")
	return c, w
}

func TestHandler_Apply_Created(t *testing.T) {
	svc := &stubService{applyResp: ApplyLeaveResponse{
		Leave:     LeaveResponse{Status: "PENDING", Days: 3},
		Persisted: true,
	}}
	h := NewHandler(svc, nil)

	c, w := newTestContext(t, http.MethodPost, "/leaves", ApplyLeaveRequest{
		LeaveType: "paid",
		StartDate: "2025-03-17",
		EndDate:   "2025-03-19",
	})
	h.Apply(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"persisted":true`)
	assert.Contains(t, w.Body.String(), `"PENDING"`)
}

func TestHandler_Apply_MissingFieldsRejected(t *testing.T) {
	h := NewHandler(&stubService{}, nil)

	c, w := newTestContext(t, http.MethodPost, "/leaves", map[string]string{"reason": "no dates"})
	h.Apply(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestHandler_Apply_InsufficientBalanceMapsTo422(t *testing.T) {
	h := NewHandler(&stubService{applyErr: leaveerrors.ErrInsufficientBalance}, nil)

	c, w := newTestContext(t, http.MethodPost, "/leaves", ApplyLeaveRequest{
		LeaveType: "paid",
		StartDate: "2025-03-17",
		EndDate:   "2025-03-19",
	})
	h.Apply(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "INSUFFICIENT_BALANCE")
}

func TestHandler_ApproveAndRejectPassDecision(t *testing.T) {
	svc := &stubService{decideResp: DecideLeaveResponse{Persisted: true}}
	h := NewHandler(svc, nil)

	c, w := newTestContext(t, http.MethodPost, "/leaves/abc/approve", DecideLeaveRequest{Comments: "ok"})
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Approve(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "APPROVED", svc.gotDecision)
	assert.Equal(t, "ok", svc.gotComments)

	c, w = newTestContext(t, http.MethodPost, "/leaves/abc/reject", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Reject(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "REJECTED", svc.gotDecision)
}

func TestHandler_Decide_AlreadyDecidedMapsTo409(t *testing.T) {
	h := NewHandler(&stubService{decideErr: leaveerrors.ErrAlreadyDecided}, nil)

	c, w := newTestContext(t, http.MethodPost, "/leaves/abc/approve", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Approve(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}
