package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanfelix147-netizen/GT/internal/auth"
	"github.com/ryanfelix147-netizen/GT/internal/dashboard"
	dashboardhttp "github.com/ryanfelix147-netizen/GT/internal/dashboard/http"
	"github.com/ryanfelix147-netizen/GT/internal/logistics"
	"github.com/ryanfelix147-netizen/GT/internal/observability"
	"github.com/ryanfelix147-netizen/GT/internal/shared"
	"github.com/ryanfelix147-netizen/GT/internal/view"
	"github.com/ryanfelix147-netizen/GT/jobs"
)

var csrfPattern = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

type browser struct {
	t      *testing.T
	base   string
	client *http.Client
	redis  *miniredis.Miniredis
}

func newTestServer(t *testing.T, health HealthChecker) *browser {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	cfg := &Config{AppEnv: "test", AppRequestTimeout: 5 * time.Second, LoginRateLimit: 0}
	templates, err := view.NewEngine()
	require.NoError(t, err)
	sessions := shared.NewSessionManager(redisClient, "trackinggt_session", "session-secret", time.Hour, false)
	csrf := shared.NewCSRFManager("csrf-secret")
	metrics := observability.NewMetrics()

	now := time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)
	dash := dashboardhttp.NewHandler(nil, templates, csrf, dashboard.SVGCharts{}, dashboard.StaticDataset(now), logistics.NewTracker(redisClient), time.UTC)
	dash.WithNow(func() time.Time { return now })

	router := NewRouter(RouterParams{
		Config:           cfg,
		SessionManager:   sessions,
		CSRFManager:      csrf,
		AuthHandler:      auth.NewHandler(nil, auth.NewGate(), templates, sessions, csrf, metrics),
		DashboardHandler: dash,
		JobHandler:       jobs.NewHandler(nil, nil),
		Metrics:          metrics,
		Health:           health,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:     t,
		base:  srv.URL,
		redis: mr,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()
	res, err := b.client.Get(b.base + path)
	require.NoError(b.t, err)
	return res, readBody(b.t, res)
}

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	b.t.Helper()
	res, err := b.client.PostForm(b.base+path, form)
	require.NoError(b.t, err)
	return res, readBody(b.t, res)
}

func (b *browser) token(body string) string {
	b.t.Helper()
	m := csrfPattern.FindStringSubmatch(body)
	require.Len(b.t, m, 2, "csrf token not found in page")
	return m[1]
}

func (b *browser) login(identifier, secret string) *http.Response {
	b.t.Helper()
	_, page := b.get("/auth/login")
	res, _ := b.post("/auth/login", url.Values{
		"csrf_token": {b.token(page)},
		"identifier": {identifier},
		"secret":     {secret},
	})
	return res
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(data)
}

func TestRootRedirectsByGateState(t *testing.T) {
	b := newTestServer(t, nil)

	res, _ := b.get("/")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, auth.LoginPath, res.Header.Get("Location"))

	require.Equal(t, http.StatusSeeOther, b.login("a@b.com", "x").StatusCode)
	res, _ = b.get("/")
	assert.Equal(t, auth.HomePath, res.Header.Get("Location"))
}

func TestDashboardRequiresLogin(t *testing.T) {
	b := newTestServer(t, nil)

	for _, path := range []string{"/dashboard", "/dashboard?view=marketing", "/dashboard/logistics/export.csv"} {
		res, body := b.get(path)
		assert.Equal(t, http.StatusSeeOther, res.StatusCode, path)
		assert.Equal(t, auth.LoginPath, res.Header.Get("Location"), path)
		assert.NotContains(t, body, "67,100.00", path)
	}
}

func TestLoginRejectsMissingCSRF(t *testing.T) {
	b := newTestServer(t, nil)
	b.get("/auth/login")

	res, _ := b.post("/auth/login", url.Values{"identifier": {"a@b.com"}, "secret": {"x"}})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestLoginWithEmptyFieldShowsError(t *testing.T) {
	b := newTestServer(t, nil)
	_, page := b.get("/auth/login")

	res, body := b.post("/auth/login", url.Values{
		"csrf_token": {b.token(page)},
		"identifier": {""},
		"secret":     {"x"},
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, auth.MsgEmptyFields)

	res, _ = b.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
}

func TestFullSessionFlow(t *testing.T) {
	b := newTestServer(t, nil)

	res := b.login("a@b.com", "x")
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, auth.HomePath, res.Header.Get("Location"))

	res, body := b.get("/dashboard")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "R$ 67,100.00")
	assert.Contains(t, body, auth.MsgWelcome)
	assert.NotEmpty(t, res.Header.Get("X-Frame-Options"))

	_, body = b.get("/dashboard?view=products")
	assert.Contains(t, body, "CONJUNTO ADIDAS REF: 2266")
	assert.NotContains(t, body, auth.MsgWelcome)

	_, body = b.get("/dashboard?view=logistics")
	assert.Contains(t, body, "Nenhuma sincronização registrada.")
	token := b.token(body)

	res, _ = b.post("/dashboard/logistics/sync", url.Values{"csrf_token": {token}})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	_, body = b.get("/dashboard?view=logistics")
	assert.Contains(t, body, dashboardhttp.MsgSyncDone)
	assert.Contains(t, body, "Última sincronização: 10/03/2024 15:00:00")

	res, body = b.get("/dashboard/logistics/export.csv")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, strings.HasPrefix(body, "Data,Pedidos,Receita_BRL\n"))

	res, _ = b.post("/auth/logout", url.Values{"csrf_token": {token}})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, auth.LoginPath, res.Header.Get("Location"))

	res, _ = b.get("/dashboard?view=products")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, auth.LoginPath, res.Header.Get("Location"))
}

func TestCreateAccessKeepsGateClosed(t *testing.T) {
	b := newTestServer(t, nil)
	_, page := b.get("/auth/login")

	res, _ := b.post("/auth/access", url.Values{"csrf_token": {b.token(page)}})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, auth.LoginPath, res.Header.Get("Location"))

	_, body := b.get("/auth/login")
	assert.Contains(t, body, auth.MsgAccessSimulated)
	res, _ = b.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
}

func TestOperationalEndpoints(t *testing.T) {
	b := newTestServer(t, nil)

	res, body := b.get("/healthz")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	b.login("a@b.com", "x")
	res, body = b.get("/metrics")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `trackinggt_login_attempts_total{outcome="success"} 1`)

	res, _ = b.get("/jobs/health")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body = b.get("/static/css/app.css")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "public, max-age=3600", res.Header.Get("Cache-Control"))
	assert.Contains(t, body, ".sidebar")
}

func TestHealthzReportsRedisFailure(t *testing.T) {
	b := newTestServer(t, func(context.Context) error { return errors.New("down") })

	res, body := b.get("/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.Contains(t, body, "redis unreachable")
}

func TestAnonymousOperationalRequestsLeaveNoSession(t *testing.T) {
	b := newTestServer(t, nil)

	for _, path := range []string{"/healthz", "/metrics", "/jobs/health", "/static/css/app.css"} {
		res, _ := b.get(path)
		assert.Empty(t, res.Header.Values("Set-Cookie"), path)
	}
	assert.Empty(t, b.redis.Keys())

	_, page := b.get("/auth/login")
	assert.NotEmpty(t, b.token(page))
	assert.Len(t, b.redis.Keys(), 1)
}
