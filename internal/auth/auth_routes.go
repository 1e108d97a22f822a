package auth

import (
	"nova-hris/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authn gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", middleware.RateLimitByIP(0.1, 3), handler.SignUp)
		auth.POST("/sign-in", middleware.RateLimitByIP(0.2, 5), handler.SignIn)
		auth.POST("/refresh", middleware.RateLimitByIP(0.5, 5), handler.Refresh)
		auth.POST("/sign-out", authn, handler.SignOut)
		auth.GET("/me", authn, middleware.RateLimitByUser(2, 5), handler.Me)
	}
}
