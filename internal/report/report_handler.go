package report

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"nova-hris/internal/middleware"
	reporterrors "nova-hris/internal/report/errors"
	"nova-hris/internal/shared/apperror"
	"nova-hris/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	loc     *time.Location
	logger  *zap.Logger
}

func NewHandler(service Service, loc *time.Location, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{service: service, loc: loc, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Dashboard(c *gin.Context) {
	resp, err := h.service.DashboardCounts(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AttendanceReport(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", FormatCSV))
	if format != FormatCSV && format != FormatXLSX {
		h.writeServiceError(c, reporterrors.ErrInvalidFormat)
		return
	}

	rep, err := h.service.AttendanceReport(c.Request.Context(), middleware.CurrentActor(c), c.Query("start"), c.Query("end"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var (
		data        []byte
		contentType string
	)
	switch format {
	case FormatXLSX:
		data, err = RenderXLSX(rep, h.loc)
		contentType = ContentTypeXLSX
	default:
		data, err = RenderCSV(rep, h.loc)
		contentType = ContentTypeCSV
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.File(c, Filename(rep.Start, rep.End, format), contentType, data)
}

func (h *Handler) RecentActivity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.writeServiceError(c, apperror.InvalidField("limit"))
			return
		}
		limit = v
	}

	items, err := h.service.RecentActivity(c.Request.Context(), middleware.CurrentActor(c), limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, nil)
}
