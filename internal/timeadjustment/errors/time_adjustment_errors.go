package timeadjustmenterrors

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

	ErrInvalidTime = apperror.New(
		apperror.CodeInvalidInput,
		"Requested times must be formatted HH:MM",
		http.StatusBadRequest,
	)

	ErrNoChange = apperror.New(
		apperror.CodeInvalidInput,
		"Requested times must differ from the recorded times",
		http.StatusBadRequest,
	)

	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Reason is required",
		http.StatusBadRequest,
	)
)
