package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nova-hris/internal/session"
	"nova-hris/internal/shared/apperror"
	"nova-hris/internal/user"
	usererrors "nova-hris/internal/user/errors"
	mock_user "nova-hris/internal/user/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

func newContext(method, target, body string, actor session.Actor) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req.WithContext(session.WithActor(req.Context(), actor))
	return c, w
}

func TestUserHandler_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock_user.NewMockService(ctrl)
	h := user.NewHandler(svc)

	svc.EXPECT().List(gomock.Any(), admin, "ana").Return([]user.UserResponse{
		{ID: "1", Name: "Ana"}, {ID: "2", Name: "Anabel"}, {ID: "3", Name: "Mariana"},
	}, nil)

	c, w := newContext(http.MethodGet, "/admin/employees?q=ana&page=1&page_size=2", "", admin)
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	var got []user.UserResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 2)
}

func TestUserHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock_user.NewMockService(ctrl)
		h := user.NewHandler(svc)

		svc.EXPECT().Create(gomock.Any(), admin, gomock.Any()).
			Return(user.UserResponse{ID: "u-9", EmployeeID: "EMP009"}, nil)

		body := `{"email":"new@nova.ph","password":"secret123","name":"New Hire","employee_id":"EMP009"}`
		c, w := newContext(http.MethodPost, "/admin/employees", body, admin)
		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := user.NewHandler(mock_user.NewMockService(ctrl))

		c, w := newContext(http.MethodPost, "/admin/employees", `{"email":"nope"}`, admin)
		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock_user.NewMockService(ctrl)
		h := user.NewHandler(svc)

		svc.EXPECT().Create(gomock.Any(), admin, gomock.Any()).Return(user.UserResponse{}, usererrors.ErrUserAlreadyExists)

		body := `{"email":"dup@nova.ph","password":"secret123","name":"Dup","employee_id":"EMP010"}`
		c, w := newContext(http.MethodPost, "/admin/employees", body, admin)
		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, apperror.CodeConflict, env.Error.Code)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock_user.NewMockService(ctrl)
	h := user.NewHandler(svc)

	svc.EXPECT().Delete(gomock.Any(), admin, "u-2").Return(nil)

	c, w := newContext(http.MethodDelete, "/admin/employees/u-2", "", admin)
	c.Params = gin.Params{{Key: "id", Value: "u-2"}}
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
