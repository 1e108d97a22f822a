package timeadjustment

import (
	"nova-hris/internal/workflow"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler = workflow.Handler[TimeAdjustment, *TimeAdjustment]

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	return workflow.NewHandler(service, bind, present, Kind, logger...)
}

func bind(c *gin.Context) (*TimeAdjustment, error) {
	var req CreateTimeAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &TimeAdjustment{
		Date:             req.Date,
		RequestedTimeIn:  req.RequestedTimeIn,
		RequestedTimeOut: req.RequestedTimeOut,
		Reason:           req.Reason,
	}, nil
}

func present(a *TimeAdjustment) any {
	return mapToResponse(a)
}
