package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rplatform "github.com/open-builders/school-bot/internal/platform/redis"
)

func get(t *testing.T, h stdhttp.Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodGet, path, nil)
	h.ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealthAndLive(t *testing.T) {
	router := NewRouter("school-bot", false)

	rec, body := get(t, router, "/health")
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "school-bot", body["service"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, _ = get(t, router, "/live")
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
}

func TestReadyWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := rplatform.Open(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	router := NewRouter("school-bot", false, Check{Name: "redis", Pinger: PingFunc(client.Check)})

	rec, body := get(t, router, "/ready")
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["status"])

	mr.Close()
	rec, body = get(t, router, "/ready")
	assert.Equal(t, stdhttp.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "redis unavailable", body["error"])
}

func TestReadyReportsFirstFailure(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("no reachable servers") })

	router := NewRouter("school-bot", false,
		Check{Name: "redis", Pinger: ok},
		Check{Name: "mongo", Pinger: down},
	)

	rec, body := get(t, router, "/ready")
	assert.Equal(t, stdhttp.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "mongo unavailable", body["error"])
	assert.Equal(t, "no reachable servers", body["details"])
}

func TestRequestIDIsPropagated(t *testing.T) {
	router := NewRouter("school-bot", false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodGet, "/live", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestRecoveryAnswers500(t *testing.T) {
	router := NewRouter("school-bot", false)
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec, body := get(t, router, "/boom")
	assert.Equal(t, stdhttp.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", body["status"])
}
