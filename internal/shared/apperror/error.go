// Package apperror is the module's error currency: a stable machine code, a
// message safe to show clients, and the HTTP status the transport maps it to.
// Services return these; handlers translate them via ToHTTP.
package apperror

import "fmt"

type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// New builds a standalone AppError. Sentinels across the module are declared
// once with New and compared with errors.Is.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// Wrap attaches a cause. The cause surfaces in ToHTTP's details field, so it
// must not carry anything a client should not see.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}
