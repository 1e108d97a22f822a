package middleware

import (
	"nova-hris/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a logger carrying the request metadata to the
// request context. Mounted globally it carries request_id only; mount it
// again after AuthMiddleware to add user_id.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		reqLogger := logger.With(contextutil.ExtractMetadata(ctx).Fields()...)
		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, reqLogger))
		c.Next()
	}
}
