package overtime

import (
	"nova-hris/internal/workflow"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler = workflow.Handler[Overtime, *Overtime]

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	return workflow.NewHandler(service, bind, present, Kind, logger...)
}

func bind(c *gin.Context) (*Overtime, error) {
	var req CreateOvertimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &Overtime{Date: req.Date, Hours: req.Hours, Reason: req.Reason}, nil
}

func present(o *Overtime) any {
	return mapToResponse(o)
}
