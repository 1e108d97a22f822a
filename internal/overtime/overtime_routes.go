package overtime

import (
	"nova-hris/internal/middleware"
	"nova-hris/internal/rbac"
	"nova-hris/internal/workflow"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, idempotency gin.HandlerFunc) {
	workflow.RegisterRoutes(r, workflow.Routes{Path: "/overtimes", Resource: rbac.ResourceOvertime}, handler, rbacService, idempotency)
}
