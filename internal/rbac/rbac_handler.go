package rbac

import (
	"net/http"

	"nova-hris/internal/middleware"
	"nova-hris/internal/shared/apperror"
	"nova-hris/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// Enforce answers whether the caller's role may perform action on resource.
func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	actor := middleware.CurrentActor(c)
	allowed, err := h.service.Enforce(actor.Role, req.Resource, req.Action)
	if err != nil {
		h.logger.Error("enforce failed", zap.String("user_id", actor.UID), zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Role: actor.Role, Allowed: allowed}, nil)
}

// Permissions lists the (resource, action) pairs of the caller's role.
func (h *Handler) Permissions(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	perms, err := h.service.Permissions(actor.Role)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	out := make([]gin.H, 0, len(perms))
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		out = append(out, gin.H{"resource": p[1], "action": p[2]})
	}
	response.Success(c, http.StatusOK, out, nil)
}
