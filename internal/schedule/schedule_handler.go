package schedule

import (
	"net/http"
	"strconv"

	"nova-hris/internal/middleware"
	"nova-hris/internal/shared/apperror"
	"nova-hris/internal/shared/response"
	"nova-hris/internal/shared/timeutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	clock   timeutil.Clock
	logger  *zap.Logger
}

func NewHandler(service Service, clock timeutil.Clock, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("schedule.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.handler")
	}
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &Handler{service: service, clock: clock, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// yearMonth reads ?year=&month=, defaulting to the current month.
func (h *Handler) yearMonth(c *gin.Context) (int, int, error) {
	now := h.clock.Now()
	year, month := now.Year(), int(now.Month())
	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperror.InvalidField("year")
		}
		year = v
	}
	if raw := c.Query("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperror.InvalidField("month")
		}
		month = v
	}
	return year, month, nil
}

func (h *Handler) Grid(c *gin.Context) {
	year, month, err := h.yearMonth(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	grid, err := MonthGrid(year, month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, grid, nil)
}

func (h *Handler) ListMonth(c *gin.Context) {
	year, month, err := h.yearMonth(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.ListMonth(c.Request.Context(), middleware.CurrentActor(c), c.Query("user_id"), year, month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.Upsert(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")}, nil)
}
