package payroll

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubPayrollService struct {
	slip      Payslip
	slipErr   error
	slipCalls int

	updateResp UpdateSalaryResponse
}

func (s *stubPayrollService) GetSalary(context.Context, string, bool, string) (SalaryResponse, error) {
	return SalaryResponse{}, nil
}

func (s *stubPayrollService) UpdateSalary(context.Context, string, UpdateSalaryRequest) (UpdateSalaryResponse, error) {
	return s.updateResp, nil
}

func (s *stubPayrollService) GenerateSlip(context.Context, string, bool, string, int, int) (Payslip, error) {
	s.slipCalls++
	return s.slip, s.slipErr
}

func newSlipContext(t *testing.T, employeeID, actorID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/payroll/%s/payslip?month=3&year=2025", employeeID), nil)
	c.Params = gin.Params{{Key: "id", Value: employeeID}}
	c.Set("user_id", actorID)
	c.Set("role", "EMPLOYEE")
	return c, w
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	assert.NoError(t, json.NewEncoder(&buf).Encode(v))
	return &buf
}

func samplePayslip(employeeID string) Payslip {
	return Payslip{
		EmployeeID:   employeeID,
		EmployeeName: "Ada Nwosu",
		Department:   "Engineering",
		Position:     "Engineer",
		Month:        3,
		Year:         2025,
		Salary: SalaryResponse{
			EmployeeID: employeeID,
			Basic:      60000, HRA: 15000, Allowances: 10000, Deductions: 3000,
			NetSalary: 82000,
		},
		GeneratedAt: "2025-03-31T12:00:00Z",
	}
}

func TestHandler_GenerateSlip_CacheMissStoresSlip(t *testing.T) {
	employeeID := uuid.NewString()
	cacheKey := fmt.Sprintf("payslip:%s:2025-03", employeeID)
	slip := samplePayslip(employeeID)
	data, err := json.Marshal(slip)
	assert.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSet(cacheKey, data, time.Hour).SetVal("OK")

	svc := &stubPayrollService{slip: slip}
	h := NewHandler(svc, rdb)

	c, w := newSlipContext(t, employeeID, employeeID)
	h.GenerateSlip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.slipCalls)
	assert.Contains(t, w.Body.String(), `"net_salary":82000`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_GenerateSlip_CacheHitSkipsGeneration(t *testing.T) {
	employeeID := uuid.NewString()
	cacheKey := fmt.Sprintf("payslip:%s:2025-03", employeeID)
	data, err := json.Marshal(samplePayslip(employeeID))
	assert.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(cacheKey).SetVal(string(data))

	svc := &stubPayrollService{}
	h := NewHandler(svc, rdb)

	c, w := newSlipContext(t, employeeID, employeeID)
	h.GenerateSlip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Ada Nwosu"`)
	// The cached copy answered; the service never ran.
	assert.Equal(t, 0, svc.slipCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_UpdateSalary_EvictsCachedSlips(t *testing.T) {
	employeeID := uuid.NewString()
	marchKey := fmt.Sprintf("payslip:%s:2025-03", employeeID)
	aprilKey := fmt.Sprintf("payslip:%s:2025-04", employeeID)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectScan(0, fmt.Sprintf("payslip:%s:*", employeeID), 0).
		SetVal([]string{marchKey, aprilKey}, 0)
	mock.ExpectDel(marchKey).SetVal(1)
	mock.ExpectDel(aprilKey).SetVal(1)

	h := NewHandler(&stubPayrollService{}, rdb)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/payroll/%s/salary", employeeID),
		jsonBody(t, UpdateSalaryRequest{}))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: employeeID}}

	h.UpdateSalary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
