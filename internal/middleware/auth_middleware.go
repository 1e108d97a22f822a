package middleware

import (
	"context"
	"strings"

	autherrors "nova-hris/internal/auth/errors"
	"nova-hris/internal/session"
	"nova-hris/internal/shared/apperror"
	"nova-hris/internal/shared/contextutil"
	"nova-hris/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID      = "user_id"
	ContextRole        = "role"
	ContextAccessToken = "access_token"
)

// TokenVerifier checks an access token, including revocation.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (session.Identity, error)
}

func abortWithError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}

func bearerToken(c *gin.Context) string {
	token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if found && token != "" {
		return token
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware verifies the token and resolves the caller into a session.Actor
// stored on the request context.
func AuthMiddleware(verifier TokenVerifier, resolver session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortWithError(c, autherrors.ErrTokenNotFound)
			return
		}

		ctx := c.Request.Context()
		identity, err := verifier.VerifyAccessToken(ctx, token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		actor, err := resolver.Resolve(ctx, identity)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ContextUserID, actor.UID)
		c.Set(ContextRole, actor.Role)
		c.Set(ContextAccessToken, token)

		ctx = session.WithActor(ctx, actor)
		ctx = contextutil.WithUserID(ctx, actor.UID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// CurrentActor returns the resolved caller, or the zero Actor on public routes.
func CurrentActor(c *gin.Context) session.Actor {
	a, _ := session.FromContext(c.Request.Context())
	return a
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentActor(c).IsAdmin() {
			abortWithError(c, autherrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
