package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nova-hris/internal/attendance"
	attendanceerrors "nova-hris/internal/attendance/errors"
	"nova-hris/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	clockInFn       func(ctx context.Context, actor session.Actor) (*attendance.TimeLogResponse, error)
	clockOutFn      func(ctx context.Context, actor session.Actor) (*attendance.TimeLogResponse, error)
	todayFn         func(ctx context.Context, actor session.Actor) (attendance.TodayResponse, error)
	todayScheduleFn func(ctx context.Context, actor session.Actor) (*attendance.ScheduleResponse, error)
	historyFn       func(ctx context.Context, actor session.Actor, days int) ([]attendance.HistoryEntry, error)
}

func (f *fakeService) ClockIn(ctx context.Context, actor session.Actor) (*attendance.TimeLogResponse, error) {
	return f.clockInFn(ctx, actor)
}
func (f *fakeService) ClockOut(ctx context.Context, actor session.Actor) (*attendance.TimeLogResponse, error) {
	return f.clockOutFn(ctx, actor)
}
func (f *fakeService) Today(ctx context.Context, actor session.Actor) (attendance.TodayResponse, error) {
	return f.todayFn(ctx, actor)
}
func (f *fakeService) TodaySchedule(ctx context.Context, actor session.Actor) (*attendance.ScheduleResponse, error) {
	return f.todayScheduleFn(ctx, actor)
}
func (f *fakeService) History(ctx context.Context, actor session.Actor, days int) ([]attendance.HistoryEntry, error) {
	return f.historyFn(ctx, actor, days)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newContext(method, target string, actor session.Actor) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, nil)
	c.Request = req.WithContext(session.WithActor(req.Context(), actor))
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHandler_ClockIn(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeService{clockInFn: func(_ context.Context, actor session.Actor) (*attendance.TimeLogResponse, error) {
			assert.Equal(t, "u-1", actor.UID)
			return &attendance.TimeLogResponse{ID: "u-1_2024-01-10", Status: attendance.StatusActive}, nil
		}}
		c, w := newContext(http.MethodPost, "/attendance/clock-in", employee)

		attendance.NewHandler(svc).ClockIn(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, decodeEnvelope(t, w).Ok)
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeService{clockInFn: func(context.Context, session.Actor) (*attendance.TimeLogResponse, error) {
			return nil, attendanceerrors.ErrAlreadyClockedIn
		}}
		c, w := newContext(http.MethodPost, "/attendance/clock-in", employee)

		attendance.NewHandler(svc).ClockIn(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestHandler_TodaySchedule_NoneIsNull(t *testing.T) {
	svc := &fakeService{todayScheduleFn: func(context.Context, session.Actor) (*attendance.ScheduleResponse, error) {
		return nil, nil
	}}
	c, w := newContext(http.MethodGet, "/attendance/today-schedule", employee)

	attendance.NewHandler(svc).TodaySchedule(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeEnvelope(t, w).Ok)
	assert.Contains(t, w.Body.String(), `"data":null`)
}

func TestHandler_History(t *testing.T) {
	t.Run("passes days", func(t *testing.T) {
		var gotDays int
		svc := &fakeService{historyFn: func(_ context.Context, _ session.Actor, days int) ([]attendance.HistoryEntry, error) {
			gotDays = days
			return make([]attendance.HistoryEntry, days), nil
		}}
		c, w := newContext(http.MethodGet, "/attendance/history?days=7", employee)

		attendance.NewHandler(svc).History(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 7, gotDays)
	})

	t.Run("non numeric days", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/attendance/history?days=ten", employee)

		attendance.NewHandler(&fakeService{}).History(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
