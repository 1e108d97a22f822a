package workflow

import (
	"nova-hris/internal/middleware"
	"nova-hris/internal/rbac"

	"github.com/gin-gonic/gin"
)

type Routes struct {
	// Path is the collection path, e.g. "/leaves". Admin routes live under
	// "/admin" + Path.
	Path string
	// Resource is the rbac resource checked for every route.
	Resource string
}

// RegisterRoutes mounts the employee and admin endpoints of one kind on an
// authenticated group. idempotency may be nil.
func RegisterRoutes[E any, P Record[E]](
	r *gin.RouterGroup,
	routes Routes,
	handler *Handler[E, P],
	rbacService middleware.RBACService,
	idempotency gin.HandlerFunc,
) {
	if idempotency == nil {
		idempotency = func(c *gin.Context) { c.Next() }
	}

	mine := r.Group(routes.Path)
	{
		mine.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, routes.Resource, rbac.ActionSubmit),
			idempotency,
			handler.Submit,
		)
		mine.GET("",
			middleware.RBACAuthorize(rbacService, routes.Resource, rbac.ActionRead),
			handler.ListMine,
		)
		mine.GET("/:id",
			middleware.RBACAuthorize(rbacService, routes.Resource, rbac.ActionRead),
			handler.Get,
		)
	}

	admin := r.Group("/admin" + routes.Path)
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("",
			middleware.RBACAuthorize(rbacService, routes.Resource, rbac.ActionDecide),
			handler.ListAll,
		)
		admin.POST("/:id/decision",
			middleware.RBACAuthorize(rbacService, routes.Resource, rbac.ActionDecide),
			idempotency,
			handler.Decide,
		)
	}
}
