package workflow

import (
	"net/http"

	"nova-hris/internal/middleware"
	"nova-hris/internal/shared/apperror"
	"nova-hris/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Binder decodes a kind's submission body into a fresh request.
type Binder[E any, P Record[E]] func(c *gin.Context) (P, error)

// Presenter maps a request to its response DTO.
type Presenter[E any, P Record[E]] func(p P) any

type Handler[E any, P Record[E]] struct {
	service Service[E, P]
	bind    Binder[E, P]
	present Presenter[E, P]
	logger  *zap.Logger
}

func NewHandler[E any, P Record[E]](service Service[E, P], bind Binder[E, P], present Presenter[E, P], name string, logger ...*zap.Logger) *Handler[E, P] {
	l := zap.L().Named(name + ".handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named(name + ".handler")
	}
	return &Handler[E, P]{service: service, bind: bind, present: present, logger: l}
}

func (h *Handler[E, P]) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler[E, P]) presentAll(items []E) []any {
	out := make([]any, 0, len(items))
	for i := range items {
		out = append(out, h.present(P(&items[i])))
	}
	return out
}

func (h *Handler[E, P]) Submit(c *gin.Context) {
	req, err := h.bind(c)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	created, err := h.service.Submit(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, h.present(created), nil)
}

func (h *Handler[E, P]) ListMine(c *gin.Context) {
	items, err := h.service.ListMine(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	page, meta := response.Paginate(c, h.presentAll(items))
	response.Success(c, http.StatusOK, page, meta)
}

func (h *Handler[E, P]) Get(c *gin.Context) {
	req, err := h.service.Get(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.present(req), nil)
}

func (h *Handler[E, P]) ListAll(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context(), middleware.CurrentActor(c), c.Query("status"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	page, meta := response.Paginate(c, h.presentAll(items))
	response.Success(c, http.StatusOK, page, meta)
}

func (h *Handler[E, P]) Decide(c *gin.Context) {
	var body DecisionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	req, err := h.service.Decide(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), body.Decision, body.Note)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.present(req), nil)
}
