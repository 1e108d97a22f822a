package schedule

import (
	"nova-hris/internal/middleware"
	"nova-hris/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	schedules := r.Group("/schedules")
	{
		schedules.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceSchedule, rbac.ActionRead), h.ListMonth)
		schedules.GET("/grid", middleware.RBACAuthorize(rbacService, rbac.ResourceSchedule, rbac.ActionRead), h.Grid)
	}

	admin := r.Group("/admin/schedules")
	admin.Use(middleware.RequireAdmin())
	{
		admin.PUT("", middleware.RBACAuthorize(rbacService, rbac.ResourceSchedule, rbac.ActionManage), h.Upsert)
		admin.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceSchedule, rbac.ActionManage), h.Delete)
	}
}
