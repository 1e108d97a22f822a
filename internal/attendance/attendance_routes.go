package attendance

import (
	"nova-hris/internal/middleware"
	"nova-hris/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	attendance := r.Group("/attendance")
	{
		attendance.POST("/clock-in",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionWrite),
			h.ClockIn,
		)
		attendance.POST("/clock-out",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionWrite),
			h.ClockOut,
		)
		attendance.GET("/today", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead), h.Today)
		attendance.GET("/today-schedule", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead), h.TodaySchedule)
		attendance.GET("/history", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead), h.History)
	}
}
