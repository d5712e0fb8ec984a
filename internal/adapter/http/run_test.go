package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

type stubAutomation struct {
	result *port.RunResult
	err    error
}

func (s *stubAutomation) Run(_ context.Context) (*port.RunResult, error) {
	return s.result, s.err
}

func newTestHandler(svc port.Automation) *Handler {
	return NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleRunSuccess(t *testing.T) {
	svc := &stubAutomation{result: &port.RunResult{
		RunID:     "run-1",
		StartedAt: time.Now(),
		Records:   make([]domain.PerformanceRecord, 3),
		Changes:   []port.BudgetChange{{Applied: true}, {Applied: true}, {Error: "campaign locked"}},
		Issues:    []domain.Issue{{Level: domain.IssueHighACOS}},
	}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/run", nil)
	newTestHandler(svc).Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "run-1", body.RunID)
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, 3, body.Fetched)
	assert.Equal(t, 2, body.Applied)
	assert.Equal(t, 1, body.Alerts)
}

func TestHandleRunFailure(t *testing.T) {
	svc := &stubAutomation{err: errors.New("fetch campaign performance: boom")}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/run", nil)
	newTestHandler(svc).Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Contains(t, body.Error, "boom")
}

func TestHandleHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	newTestHandler(&stubAutomation{}).Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRunRouteRejectsGet(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/run", nil)
	newTestHandler(&stubAutomation{}).Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
