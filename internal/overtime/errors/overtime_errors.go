package overtimeerrors

import (
	"net/http"

	"nova-hris/internal/shared/apperror"
)

var (
	ErrDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Date is required",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be formatted YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidHours = apperror.New(
		apperror.CodeInvalidInput,
		"Hours must be greater than 0 and at most 24",
		http.StatusBadRequest,
	)

	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Reason is required",
		http.StatusBadRequest,
	)
)
