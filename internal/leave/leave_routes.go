package leave

import (
	"nova-hris/internal/middleware"
	"nova-hris/internal/rbac"
	"nova-hris/internal/workflow"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, idempotency gin.HandlerFunc) {
	workflow.RegisterRoutes(r, workflow.Routes{Path: "/leaves", Resource: rbac.ResourceLeave}, handler, rbacService, idempotency)
}
