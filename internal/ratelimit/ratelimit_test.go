package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMiddlewareRejectsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store, err := NewStore(nil)
	require.NoError(t, err)
	mw, err := Middleware("2-M", store, zaptest.NewLogger(t))
	require.NoError(t, err)

	r := gin.New()
	r.GET("/api/ping", mw, func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if i == 2 {
			assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), "rate limit of 2 requests")
		}
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "limits are per client")
}

func TestMiddlewareRejectsBadRate(t *testing.T) {
	store, _ := NewStore(nil)
	_, err := Middleware("lots", store, zaptest.NewLogger(t))
	assert.Error(t, err)
}
