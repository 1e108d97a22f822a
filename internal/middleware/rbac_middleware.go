package middleware

import (
	autherrors "nova-hris/internal/auth/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by anything that can answer role/resource/action.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		if actor.UID == "" {
			abortWithError(c, autherrors.ErrTokenNotFound)
			return
		}

		allowed, err := service.Enforce(actor.Role, resource, action)
		if err != nil {
			zap.L().Named("middleware.rbac").Error("rbac enforce failed",
				zap.String("role", actor.Role),
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			abortWithError(c, err)
			return
		}

		if !allowed {
			abortWithError(c, autherrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
