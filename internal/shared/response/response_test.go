package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"nova-hris/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationMeta(t *testing.T) {
	meta := response.NewPaginationMeta(21, 2, 10)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 2, meta.Page)

	assert.Equal(t, 0, response.NewPaginationMeta(5, 1, 0).TotalPages)
}

func TestPaginate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	items := []int{1, 2, 3, 4, 5}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=2&page_size=2", nil)

	page, meta := response.Paginate(c, items)
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, int64(5), meta.Total)

	c.Request = httptest.NewRequest(http.MethodGet, "/?page=9&page_size=2", nil)
	page, _ = response.Paginate(c, items)
	assert.Empty(t, page)
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Error(c, http.StatusNotFound, "NOT_FOUND", "leave not found", nil)

	var env response.Envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Ok)
	assert.Nil(t, env.Data)
	if assert.NotNil(t, env.Error) {
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
		assert.Equal(t, "leave not found", env.Error.Message)
	}
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "details")
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Abort(c, http.StatusConflict, "CONFLICT", "in progress")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestValidationError_ListsFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.ValidationError(c, errors.New("EOF"))

	var env response.Envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "Invalid input", env.Error.Message)
}
