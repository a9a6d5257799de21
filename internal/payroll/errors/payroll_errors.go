package payrollerrors

import (
	"net/http"

	"dayflow/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll period, expected month 1-12 and a four digit year",
		http.StatusBadRequest,
	)
	ErrNegativeComponent = apperror.New(
		apperror.CodeInvalidInput,
		"salary components must not be negative",
		http.StatusBadRequest,
	)
)
