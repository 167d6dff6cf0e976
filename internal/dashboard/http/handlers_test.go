package dashboardhttp

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanfelix147-netizen/GT/internal/auth"
	"github.com/ryanfelix147-netizen/GT/internal/dashboard"
	"github.com/ryanfelix147-netizen/GT/internal/logistics"
	"github.com/ryanfelix147-netizen/GT/internal/shared"
	"github.com/ryanfelix147-netizen/GT/internal/view"
)

var fixedNow = time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)

type stubQueue struct {
	calls int
	err   error
}

func (q *stubQueue) EnqueueLogisticsSync(ctx context.Context) error {
	q.calls++
	return q.err
}

func newTestHandler(t *testing.T) (*Handler, *logistics.Tracker) {
	t.Helper()
	templates, err := view.NewEngine()
	require.NoError(t, err)
	mr := miniredis.RunT(t)
	tracker := logistics.NewTracker(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	handler := NewHandler(nil, templates, shared.NewCSRFManager("csrfsecret"), dashboard.SVGCharts{}, dashboard.StaticDataset(fixedNow.AddDate(0, 0, -3)), tracker, time.UTC)
	handler.WithNow(func() time.Time { return fixedNow })
	return handler, tracker
}

func withSession(req *http.Request, authenticated bool) (*http.Request, *shared.Session) {
	sess := &shared.Session{ID: "test-session"}
	sess.SetAuthenticated(authenticated)
	return req.WithContext(shared.ContextWithSession(req.Context(), sess)), sess
}

func TestDashboardRedirectsWhenUnauthenticated(t *testing.T) {
	handler, _ := newTestHandler(t)
	for _, target := range []string{"/dashboard", "/dashboard?view=products", "/dashboard/logistics/export.csv"} {
		req, _ := withSession(httptest.NewRequest(http.MethodGet, target, nil), false)
		rr := httptest.NewRecorder()
		if strings.HasSuffix(target, ".csv") {
			handler.handleCSV(rr, req)
		} else {
			handler.handleDashboard(rr, req)
		}
		assert.Equal(t, http.StatusSeeOther, rr.Code, target)
		assert.Equal(t, auth.LoginPath, rr.Header().Get("Location"), target)
	}
}

func TestDashboardOverview(t *testing.T) {
	handler, _ := newTestHandler(t)
	req, _ := withSession(httptest.NewRequest(http.MethodGet, "/dashboard", nil), true)
	rr := httptest.NewRecorder()
	handler.handleDashboard(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Performance Operacional")
	assert.Contains(t, body, "R$ 67,100.00")
	assert.Contains(t, body, "ROI Médio")
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, "10/03")
	assert.Contains(t, body, `action="/auth/logout"`)
	assert.Contains(t, body, `name="csrf_token"`)
}

func TestDashboardProducts(t *testing.T) {
	handler, _ := newTestHandler(t)
	req, _ := withSession(httptest.NewRequest(http.MethodGet, "/dashboard?view=products", nil), true)
	rr := httptest.NewRecorder()
	handler.handleDashboard(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "CONJUNTO ADIDAS REF: 2266")
	assert.Contains(t, body, "4,250.00")
	assert.NotContains(t, body, "R$ 67,100.00")
}

func TestDashboardLogisticsShowsLastSync(t *testing.T) {
	handler, tracker := newTestHandler(t)
	require.NoError(t, tracker.MarkSynced(context.Background(), fixedNow.Add(-time.Hour)))

	req, _ := withSession(httptest.NewRequest(http.MethodGet, "/dashboard?view=logistics", nil), true)
	rr := httptest.NewRecorder()
	handler.handleDashboard(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Sincronizar Agora")
	assert.Contains(t, body, "10/03/2024 14:00:00")
	assert.Contains(t, body, "12,800.00")
}

func TestSyncMarksTrackerInline(t *testing.T) {
	handler, tracker := newTestHandler(t)
	req, sess := withSession(httptest.NewRequest(http.MethodPost, "/dashboard/logistics/sync", nil), true)
	rr := httptest.NewRecorder()
	handler.handleSync(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard?view=logistics", rr.Header().Get("Location"))
	at, ok, err := tracker.LastSync(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, fixedNow.Equal(at))
	flash := sess.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, MsgSyncDone, flash.Message)
}

func TestSyncUsesQueueWhenConfigured(t *testing.T) {
	handler, tracker := newTestHandler(t)
	queue := &stubQueue{}
	handler.WithQueue(queue)

	req, sess := withSession(httptest.NewRequest(http.MethodPost, "/dashboard/logistics/sync", nil), true)
	rr := httptest.NewRecorder()
	handler.handleSync(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, 1, queue.calls)
	_, ok, err := tracker.LastSync(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, MsgSyncQueued, sess.PopFlash().Message)
}

func TestSyncFailureFlashesError(t *testing.T) {
	handler, _ := newTestHandler(t)
	handler.WithQueue(&stubQueue{err: errors.New("redis down")})

	req, sess := withSession(httptest.NewRequest(http.MethodPost, "/dashboard/logistics/sync", nil), true)
	rr := httptest.NewRecorder()
	handler.handleSync(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	flash := sess.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "error", flash.Kind)
}

func TestLogisticsCSV(t *testing.T) {
	handler, _ := newTestHandler(t)
	req, _ := withSession(httptest.NewRequest(http.MethodGet, "/dashboard/logistics/export.csv", nil), true)
	rr := httptest.NewRecorder()
	handler.handleCSV(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "droplatam-pedidos-2024-03-10.csv")

	records, err := csv.NewReader(rr.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 8)
	assert.Equal(t, "2024-03-10", records[7][0])
}
