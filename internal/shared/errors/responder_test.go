package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errGone = errors.New("gone")

func serve(t *testing.T, responder *Responder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/things/:id", func(c *gin.Context) {
		c.Set(RequestIDKey, "req-7")
		responder.RespondError(c, err)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/1", nil))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestResponder_UsesMapper(t *testing.T) {
	responder := NewResponder("", func(err error) (ProblemDetail, bool) {
		if errors.Is(err, errGone) {
			return ErrNotFound.WithDetail(err.Error()), true
		}
		return ProblemDetail{}, false
	})

	rec, problem := serve(t, responder, fmt.Errorf("lookup: %w", errGone))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, TypeNotFound, problem.Type)
	assert.Equal(t, "/things/1", problem.Instance)
	assert.Equal(t, "req-7", problem.RequestID)
	assert.Equal(t, "lookup: gone", problem.Detail)
}

func TestResponder_UnmappedIsInternal(t *testing.T) {
	rec, problem := serve(t, NewResponder("https://vouchers.example"), errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "https://vouchers.example"+TypeInternal, problem.Type)
}

func TestResponder_ProblemErrorPassesThrough(t *testing.T) {
	rec, problem := serve(t, NewResponder(""), ErrConflict.WithDetail("already approved"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Conflict", problem.Title)
	assert.Equal(t, http.StatusConflict, HTTPStatusFromError(ErrConflict))
}

func TestWithExtension_DoesNotShareMaps(t *testing.T) {
	base := ErrValidation.WithExtension("a", 1)
	derived := base.WithExtension("b", 2)

	assert.Len(t, base.Extensions, 1)
	assert.Len(t, derived.Extensions, 2)
}
