package reporterrors

import (
	"net/http"

	"nova-hris/internal/shared/apperror"
)

var (
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only admins can view reports",
		http.StatusForbidden,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Start and end dates must be formatted YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidRange = apperror.New(
		apperror.CodeInvalidInput,
		"Start date must not be after end date",
		http.StatusBadRequest,
	)

	ErrInvalidFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Format must be csv or xlsx",
		http.StatusBadRequest,
	)
)
