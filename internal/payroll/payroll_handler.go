package payroll

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"dayflow/internal/rbac"
	"dayflow/internal/shared/apperror"
	"dayflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetSalary(c *gin.Context) {
	actorID := c.GetString("user_id")
	privileged := rbac.IsPrivileged(c.GetString("role"))

	resp, err := h.service.GetSalary(c.Request.Context(), actorID, privileged, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateSalary(c *gin.Context) {
	var req UpdateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.UpdateSalary(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// A salary change invalidates every cached slip for the employee.
	if h.rdb != nil {
		iter := h.rdb.Scan(c.Request.Context(), 0, fmt.Sprintf("payslip:%s:*", c.Param("id")), 0).Iterator()
		for iter.Next(c.Request.Context()) {
			h.rdb.Del(c.Request.Context(), iter.Val())
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GenerateSlip serves the slip from redis when a fresh copy exists; slips
// only change when the salary does, and UpdateSalary evicts them.
func (h *Handler) GenerateSlip(c *gin.Context) {
	actorID := c.GetString("user_id")
	privileged := rbac.IsPrivileged(c.GetString("role"))
	employeeID := c.Param("id")

	month, _ := strconv.Atoi(c.DefaultQuery("month", "0"))
	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))

	cacheKey := fmt.Sprintf("payslip:%s:%04d-%02d", employeeID, year, month)
	if h.rdb != nil && (privileged || actorID == employeeID) {
		if val, err := h.rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var cached Payslip
			if json.Unmarshal([]byte(val), &cached) == nil {
				response.Success(c, http.StatusOK, cached, nil)
				return
			}
		}
	}

	slip, err := h.service.GenerateSlip(c.Request.Context(), actorID, privileged, employeeID, month, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(slip); err == nil {
			h.rdb.Set(c.Request.Context(), cacheKey, data, time.Hour)
		}
	}

	response.Success(c, http.StatusOK, slip, nil)
}
