package leave

import (
	"encoding/json"
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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// finishIdempotency fills the response cache and releases the in-flight
// lock set by the idempotency middleware. No-op without redis.
func (h *Handler) finishIdempotency(c *gin.Context, resp any) {
	if h.rdb == nil {
		return
	}
	cacheKey := c.GetString("idempotency_cache_key")
	lockKey := c.GetString("idempotency_lock_key")
	if cacheKey == "" {
		return
	}
	if data, err := json.Marshal(resp); err == nil {
		h.rdb.Set(c.Request.Context(), cacheKey, data, 24*time.Hour)
	}
	if lockKey != "" {
		h.rdb.Del(c.Request.Context(), lockKey)
	}
}

func (h *Handler) Apply(c *gin.Context) {
	actorID := c.GetString("user_id")
	privileged := rbac.IsPrivileged(c.GetString("role"))

	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), actorID, privileged, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.finishIdempotency(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) { h.decide(c, StatusApproved) }
func (h *Handler) Reject(c *gin.Context)  { h.decide(c, StatusRejected) }

func (h *Handler) decide(c *gin.Context, decision string) {
	actorID := c.GetString("user_id")

	var req DecideLeaveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
			return
		}
	}

	resp, err := h.service.Decide(c.Request.Context(), actorID, c.Param("id"), decision, req.Comments)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	actorID := c.GetString("user_id")
	privileged := rbac.IsPrivileged(c.GetString("role"))

	var filter GetLeavesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), actorID, privileged, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetBalance(c *gin.Context) {
	actorID := c.GetString("user_id")
	privileged := rbac.IsPrivileged(c.GetString("role"))

	resp, err := h.service.GetBalance(c.Request.Context(), actorID, privileged, c.Query("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
