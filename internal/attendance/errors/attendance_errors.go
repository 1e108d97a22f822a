package attendanceerrors

import (
	"net/http"

	"nova-hris/internal/shared/apperror"
)

var (
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"Already clocked in today",
		http.StatusConflict,
	)

	ErrNotClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"Clock in first before clocking out",
		http.StatusConflict,
	)

	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeConflict,
		"Already clocked out today",
		http.StatusConflict,
	)

	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be a positive number",
		http.StatusBadRequest,
	)
)
