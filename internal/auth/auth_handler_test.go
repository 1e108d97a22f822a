package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nova-hris/internal/auth"
	autherrors "nova-hris/internal/auth/errors"
	authMock "nova-hris/internal/auth/mock"
	"nova-hris/internal/middleware"
	"nova-hris/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_SignIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService, false)
	router := setupAuthRouter()
	router.POST("/auth/sign-in", handler.SignIn)

	t.Run("web client receives cookies", func(t *testing.T) {
		body, _ := json.Marshal(auth.SignInRequest{Email: "test@nova.ph", Password: "password123"})
		mockService.EXPECT().
			SignIn(gomock.Any(), "test@nova.ph", "password123").
			Return(auth.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, auth.AuthResponse{ID: "u-1"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "WEB")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		names := map[string]string{}
		for _, c := range cookies {
			names[c.Name] = c.Value
		}
		assert.Equal(t, "access-token", names["access_token"])
		assert.Equal(t, "refresh-token", names["refresh_token"])
	})

	t.Run("api client gets no cookies", func(t *testing.T) {
		body, _ := json.Marshal(auth.SignInRequest{Email: "test@nova.ph", Password: "password123"})
		mockService.EXPECT().
			SignIn(gomock.Any(), "test@nova.ph", "password123").
			Return(auth.TokenPair{AccessToken: "a", RefreshToken: "r"}, auth.AuthResponse{ID: "u-1"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("bad credentials", func(t *testing.T) {
		body, _ := json.Marshal(auth.SignInRequest{Email: "test@nova.ph", Password: "nope"})
		mockService.EXPECT().
			SignIn(gomock.Any(), "test@nova.ph", "nope").
			Return(auth.TokenPair{}, auth.AuthResponse{}, autherrors.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", bytes.NewBufferString(`{"email":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_SignUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := authMock.NewMockService(ctrl)
	router := setupAuthRouter()
	router.POST("/auth/sign-up", auth.NewHandler(mockService, false).SignUp)

	mockService.EXPECT().
		SignUp(gomock.Any(), session.Actor{}, gomock.Any()).
		Return(auth.AuthResponse{ID: "u-5", Role: "employee"}, nil)

	body := `{"email":"new@nova.ph","password":"password123","name":"New","employee_id":"EMP5","role":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-up", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_SignOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := authMock.NewMockService(ctrl)
	router := setupAuthRouter()
	router.POST("/auth/sign-out", func(c *gin.Context) {
		c.Set(middleware.ContextAccessToken, "tok")
	}, auth.NewHandler(mockService, false).SignOut)

	mockService.EXPECT().SignOut(gomock.Any(), "tok").Return(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/sign-out", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		assert.True(t, c.MaxAge < 0, c.Name)
	}
}

func TestHandler_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := authMock.NewMockService(ctrl)
	router := setupAuthRouter()
	router.POST("/auth/refresh", auth.NewHandler(mockService, false).Refresh)

	t.Run("web client without cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.Header.Set("X-Client-Type", "web")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("api client body", func(t *testing.T) {
		mockService.EXPECT().
			Refresh(gomock.Any(), "refresh-1").
			Return(auth.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, auth.AuthResponse{ID: "u-1"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBufferString(`{"refresh_token":"refresh-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
