package scheduleerrors

import (
	"net/http"

	"nova-hris/internal/shared/apperror"
)

var (
	ErrScheduleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Schedule not found",
		http.StatusNotFound,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only admins can manage schedules",
		http.StatusForbidden,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be between 1 and 12",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be formatted YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidShift = apperror.New(
		apperror.CodeInvalidInput,
		"Shift type must be one of 7-4, 8-5, off, custom",
		http.StatusBadRequest,
	)

	ErrCustomTimesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Custom shifts need time in and time out as HH:MM",
		http.StatusBadRequest,
	)

	ErrScheduleConflict = apperror.New(
		apperror.CodeConflict,
		"A schedule already exists for this employee and date",
		http.StatusConflict,
	)
)
