package user

import (
	"nova-hris/internal/middleware"
	"nova-hris/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the employee directory under an authenticated group.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	employees := r.Group("/admin/employees")
	employees.Use(middleware.RequireAdmin())
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead),
			handler.GetAll,
		)
		employees.GET("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead),
			handler.GetByID,
		)
		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionManage),
			handler.Create,
		)
		employees.PUT("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionManage),
			handler.Update,
		)
		employees.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionManage),
			handler.Delete,
		)
	}
}
