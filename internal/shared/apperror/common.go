package apperror

import "net/http"

// Cross-module errors. Module specific ones live in each module's errors package.
var (
	ErrUnauthorized = New(CodeUnauthorized, "Authentication is required", http.StatusUnauthorized)
	ErrForbidden    = New(CodeForbidden, "You do not have permission to access this resource", http.StatusForbidden)

	ErrTooManyRequests    = New(CodeTooManyRequests, "Too many requests", http.StatusTooManyRequests)
	ErrServiceUnavailable = New(CodeServiceUnavailable, "Service is unavailable", http.StatusServiceUnavailable)

	ErrInternal = New(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
)
