package timeadjustment

import (
	"nova-hris/internal/middleware"
	"nova-hris/internal/rbac"
	"nova-hris/internal/workflow"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, idempotency gin.HandlerFunc) {
	workflow.RegisterRoutes(r, workflow.Routes{Path: "/time-adjustments", Resource: rbac.ResourceTimeAdjust}, handler, rbacService, idempotency)
}
