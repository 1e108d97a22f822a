package activity

import (
	"net/http"
	"strconv"

	"nova-hris/internal/middleware"
	"nova-hris/internal/shared/apperror"
	"nova-hris/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Feed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultFeedLimit)))

	items, err := h.service.Feed(c.Request.Context(), middleware.CurrentActor(c), limit)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, items, nil)
}
