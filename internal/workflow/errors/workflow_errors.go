package workflowerrors

import (
	"net/http"

	"nova-hris/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Request not found",
		http.StatusNotFound,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only an admin can decide requests",
		http.StatusForbidden,
	)

	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"You can only view your own requests",
		http.StatusForbidden,
	)

	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"Decision must be approved or rejected",
		http.StatusBadRequest,
	)

	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Request has already been decided",
		http.StatusConflict,
	)

	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be pending, approved or rejected",
		http.StatusBadRequest,
	)
)
