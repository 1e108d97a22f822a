package leaveerrors

import (
	"net/http"

	"nova-hris/internal/shared/apperror"
)

var (
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown leave type",
		http.StatusBadRequest,
	)

	ErrDatesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Please fill in all required fields",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Dates must be formatted YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"End date must be on or after start date",
		http.StatusBadRequest,
	)

	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Reason is required",
		http.StatusBadRequest,
	)

	ErrAttachmentNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Attachment name is required when an attachment is declared",
		http.StatusBadRequest,
	)
)
