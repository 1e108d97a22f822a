package leave_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nova-hris/internal/leave"
	"nova-hris/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, target, body string, actor session.Actor) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req.WithContext(session.WithActor(req.Context(), actor))
	return c, w
}

func TestHandler_Submit(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := setup(t)
		f.sqlMock.ExpectBegin()
		f.sqlMock.ExpectCommit()
		h := leave.NewHandler(f.service)

		c, w := newContext(http.MethodPost, "/leaves",
			`{"type":"Sick Leave (SL)","from":"2024-01-10","to":"2024-01-12","reason":"flu"}`, employee)
		h.Submit(c)

		require.Equal(t, http.StatusCreated, w.Code)
		var env struct {
			Ok   bool                `json:"ok"`
			Data leave.LeaveResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Ok)
		assert.Equal(t, 3, env.Data.Days)
		assert.Equal(t, "pending", env.Data.Status)
		assert.Equal(t, "Juan Dela Cruz", env.Data.UserName)
	})

	t.Run("range error is a bad request", func(t *testing.T) {
		f := setup(t)
		h := leave.NewHandler(f.service)

		c, w := newContext(http.MethodPost, "/leaves",
			`{"type":"Sick Leave (SL)","from":"2024-01-12","to":"2024-01-10","reason":"flu"}`, employee)
		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})
}
