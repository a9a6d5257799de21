// Package response writes the single JSON envelope every endpoint speaks:
// {"ok": ..., "data": ..., "meta": ..., "error": ...}. Handlers never call
// c.JSON directly; they go through Success or Error so the shape stays uniform.
package response

import "github.com/gin-gonic/gin"

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PaginationMeta{Total: total, TotalPages: totalPages, Page: page, PageSize: limit}
}

type Envelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error *ErrorBody      `json:"error,omitempty"`
}

// ErrorBody mirrors apperror's code/message split; Details is free-form and
// only present when there is something actionable for the client.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, status int, data any, meta *PaginationMeta) {
	c.JSON(status, Envelope{Ok: true, Data: data, Meta: meta})
}

func Error(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, Envelope{Ok: false, Error: &ErrorBody{Code: code, Message: message, Details: details}})
}
