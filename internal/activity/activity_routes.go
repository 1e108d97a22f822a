package activity

import (
	"nova-hris/internal/middleware"
	"nova-hris/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	r.GET("/activities",
		middleware.RBACAuthorize(rbacService, rbac.ResourceActivity, rbac.ActionRead),
		handler.Feed,
	)
}
