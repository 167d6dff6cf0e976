package jobs

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInspector struct {
	info *asynq.QueueInfo
	err  error
}

func (s stubInspector) GetQueueInfo(string) (*asynq.QueueInfo, error) {
	return s.info, s.err
}

func serveHealth(t *testing.T, inspector QueueInspector) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Route("/jobs", NewHandler(inspector, nil).MountRoutes)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	return rr
}

func TestHealthWithoutInspector(t *testing.T) {
	rr := serveHealth(t, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"queue":"default","pending":0,"active":0,"failed":0}`, rr.Body.String())
}

func TestHealthReportsQueueDepth(t *testing.T) {
	rr := serveHealth(t, stubInspector{info: &asynq.QueueInfo{Queue: "default", Pending: 3, Active: 1}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"queue":"default","pending":3,"active":1,"failed":0}`, rr.Body.String())
}

func TestHealthTreatsMissingQueueAsEmpty(t *testing.T) {
	rr := serveHealth(t, stubInspector{err: asynq.ErrQueueNotFound})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHealthUnavailable(t *testing.T) {
	rr := serveHealth(t, stubInspector{err: errors.New("dial tcp")})
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestNilWorkerRunFails(t *testing.T) {
	var w *Worker
	assert.Error(t, w.Run(t.Context()))
}
