package report

import (
	"nova-hris/internal/middleware"
	"nova-hris/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/dashboard", middleware.RBACAuthorize(rbacService, rbac.ResourceReport, rbac.ActionRead), h.Dashboard)
		admin.GET("/reports/attendance", middleware.RBACAuthorize(rbacService, rbac.ResourceReport, rbac.ActionRead), h.AttendanceReport)
		admin.GET("/activity/recent", middleware.RBACAuthorize(rbacService, rbac.ResourceReport, rbac.ActionRead), h.RecentActivity)
	}
}
