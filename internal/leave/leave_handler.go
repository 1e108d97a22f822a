package leave

import (
	"nova-hris/internal/workflow"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler = workflow.Handler[Leave, *Leave]

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	return workflow.NewHandler(service, bind, present, Kind, logger...)
}

func bind(c *gin.Context) (*Leave, error) {
	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return req.toEntity(), nil
}

func present(l *Leave) any {
	return mapToResponse(l)
}
