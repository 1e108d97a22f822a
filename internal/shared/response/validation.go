package response

import (
	"net/http"

	"nova-hris/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// ValidationError writes a 400 for a failed gin binding. The message names
// the first bad field; details lists every field that failed.
func ValidationError(c *gin.Context, err error) {
	mapped := apperror.ToHTTP(apperror.MapValidationError(err))
	Error(c, http.StatusBadRequest, "VALIDATION_ERROR", mapped.Message, mapped.Details)
}
