package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	autherrors "nova-hris/internal/auth/errors"
	"nova-hris/internal/middleware"
	"nova-hris/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
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

type fakeVerifier struct {
	verifyFn func(ctx context.Context, token string) (session.Identity, error)
}

func (f *fakeVerifier) VerifyAccessToken(ctx context.Context, token string) (session.Identity, error) {
	return f.verifyFn(ctx, token)
}

type fakeResolver struct {
	resolveFn func(ctx context.Context, id session.Identity) (session.Actor, error)
}

func (f *fakeResolver) Resolve(ctx context.Context, id session.Identity) (session.Actor, error) {
	return f.resolveFn(ctx, id)
}

type fakeRBAC struct {
	allowed map[string]bool
}

func (f *fakeRBAC) Enforce(role, resource, action string) (bool, error) {
	return f.allowed[role+":"+resource+":"+action], nil
}

func newAuthRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	verifier := &fakeVerifier{verifyFn: func(ctx context.Context, token string) (session.Identity, error) {
		if token != "good-token" {
			return session.Identity{}, autherrors.ErrInvalidToken
		}
		return session.Identity{UID: "u-1", Email: "ana@nova.ph", Role: role}, nil
	}}
	resolver := &fakeResolver{resolveFn: func(ctx context.Context, id session.Identity) (session.Actor, error) {
		return session.Actor{UID: id.UID, Email: id.Email, Name: "Ana Reyes", Role: id.Role}, nil
	}}

	r.Use(middleware.AuthMiddleware(verifier, resolver))
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		r := newAuthRouter(session.RoleEmployee)
		r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		r := newAuthRouter(session.RoleEmployee)
		r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("actor is placed on the request context", func(t *testing.T) {
		r := newAuthRouter(session.RoleEmployee)
		r.GET("/me", func(c *gin.Context) {
			actor := middleware.CurrentActor(c)
			assert.Equal(t, "u-1", actor.UID)
			assert.Equal(t, "Ana Reyes", actor.Name)
			assert.Equal(t, "u-1", c.GetString(middleware.ContextUserID))
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "good-token"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	for _, tc := range []struct {
		role string
		want int
	}{
		{session.RoleEmployee, http.StatusForbidden},
		{session.RoleAdmin, http.StatusOK},
	} {
		r := newAuthRouter(tc.role)
		r.GET("/admin", middleware.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.want, w.Code, tc.role)
	}
}

func TestRBACAuthorize(t *testing.T) {
	rbac := &fakeRBAC{allowed: map[string]bool{"employee:leave:create": true}}

	r := newAuthRouter(session.RoleEmployee)
	r.POST("/leaves", middleware.RBACAuthorize(rbac, "leave", "create"), func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.POST("/admin/leaves/1/decision", middleware.RBACAuthorize(rbac, "leave", "decide"), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/admin/leaves/1/decision", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", middleware.RateLimitByIP(0.001, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "TOO_MANY_REQUESTS", env.Error.Code)
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cacheKey := "idemp:/leaves::key-1"
	lockKey := cacheKey + ":lock"

	stored := func(t *testing.T, status int, contentType, body string) []byte {
		t.Helper()
		b, err := json.Marshal(struct {
			Status      int    `json:"status"`
			ContentType string `json:"content_type"`
			Body        []byte `json:"body"`
		}{status, contentType, []byte(body)})
		assert.NoError(t, err)
		return b
	}
	created := stored(t, http.StatusCreated, "text/plain; charset=utf-8", "created")

	newRouter := func(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := gin.New()
		r.POST("/leaves", middleware.Idempotency(rdb), func(c *gin.Context) {
			calls++
			c.String(http.StatusCreated, "created")
		})
		return r, mock, &calls
	}

	t.Run("first request runs handler and stores the response", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, created, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay skips the handler and keeps the original status", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).SetVal(string(created))

		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "created", w.Body.String())
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replay"))
		assert.Equal(t, 0, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first response then replay agree on status", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		r := gin.New()
		r.POST("/leaves", middleware.Idempotency(rdb), func(c *gin.Context) {
			c.JSON(http.StatusAccepted, gin.H{"id": "l-1"})
		})
		accepted := stored(t, http.StatusAccepted, "application/json; charset=utf-8", `{"id":"l-1"}`)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, accepted, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)
		mock.ExpectGet(cacheKey).SetVal(string(accepted))

		var codes []int
		var bodies []string
		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
			req.Header.Set("Idempotency-Key", "key-1")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			codes = append(codes, w.Code)
			bodies = append(bodies, w.Body.String())
		}

		assert.Equal(t, []int{http.StatusAccepted, http.StatusAccepted}, codes)
		assert.Equal(t, bodies[0], bodies[1])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreadable cache entry falls through to the handler", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).SetVal("created")
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, created, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, *calls)
	})

	t.Run("without key the middleware is transparent", func(t *testing.T) {
		r, _, calls := newRouter(t)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
	})
}
