package dashboardhttp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ryanfelix147-netizen/GT/internal/auth"
	"github.com/ryanfelix147-netizen/GT/internal/dashboard"
	"github.com/ryanfelix147-netizen/GT/internal/dashboard/export"
	"github.com/ryanfelix147-netizen/GT/internal/shared"
	"github.com/ryanfelix147-netizen/GT/internal/view"
)

const requestTimeout = 2 * time.Second

// Flash messages shown after a sync request.
const (
	MsgSyncQueued = "Sincronização com a Droplatam agendada."
	MsgSyncDone   = "Dados sincronizados com a Droplatam."
	MsgSyncFailed = "Não foi possível sincronizar agora. Tente novamente."
)

// SyncTracker reads and records the last logistics sync.
type SyncTracker interface {
	MarkSynced(ctx context.Context, at time.Time) error
	LastSync(ctx context.Context) (time.Time, bool, error)
}

// SyncEnqueuer schedules a logistics sync on the background queue.
type SyncEnqueuer interface {
	EnqueueLogisticsSync(ctx context.Context) error
}

// Handler serves the authenticated dashboard views.
type Handler struct {
	logger    *slog.Logger
	templates *view.Engine
	csrf      *shared.CSRFManager
	charts    dashboard.ChartRenderer
	dataset   dashboard.Dataset
	tracker   SyncTracker
	queue     SyncEnqueuer
	location  *time.Location
	csvPool   sync.Pool
	now       func() time.Time
}

// NewHandler constructs the dashboard handler. The dataset is rebuilt per
// request when its window no longer ends on the current day in loc.
func NewHandler(logger *slog.Logger, templates *view.Engine, csrf *shared.CSRFManager, charts dashboard.ChartRenderer, dataset dashboard.Dataset, tracker SyncTracker, loc *time.Location) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if charts == nil {
		charts = dashboard.SVGCharts{}
	}
	if loc == nil {
		loc = time.Local
	}
	h := &Handler{
		logger:    logger,
		templates: templates,
		csrf:      csrf,
		charts:    charts,
		dataset:   dataset,
		tracker:   tracker,
		location:  loc,
		now:       time.Now,
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithQueue routes sync requests through the background queue.
func (h *Handler) WithQueue(q SyncEnqueuer) *Handler {
	h.queue = q
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

func (h *Handler) today() time.Time {
	return h.now().In(h.location)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	page := dashboard.ParsePage(r.URL.Query().Get("view"))

	in := dashboard.Input{
		Authenticated: sess.Authenticated(),
		Page:          page,
	}
	if in.Authenticated {
		in.Dataset = h.dataset.ForDay(h.today())
		if page == dashboard.PageLogistics {
			in.LastSync = h.lastSync(r.Context())
		}
	}

	screen, err := dashboard.Render(in, h.charts)
	if err != nil {
		h.handleServerError(w, "render dashboard", err)
		return
	}
	if screen.Template == dashboard.LoginTemplate {
		http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
		return
	}

	csrfToken, err := h.csrf.EnsureToken(sess)
	if err != nil {
		h.logger.Warn("csrf token", slog.Any("error", err))
	}
	viewData := view.TemplateData{
		Title:         screen.Title,
		CSRFToken:     csrfToken,
		Flash:         sess.PopFlash(),
		CurrentPath:   r.URL.Path,
		Authenticated: true,
		Data:          screen,
	}
	if err := h.templates.Render(w, screen.Template, viewData); err != nil {
		h.logError("render template", err)
	}
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if !sess.Authenticated() {
		http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
		return
	}
	ds := h.dataset.ForDay(h.today())

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteLogisticsCSV(buf, ds.Metrics); err != nil {
		h.handleServerError(w, "write logistics csv", err)
		return
	}

	filename := fmt.Sprintf("droplatam-pedidos-%s.csv", ds.Day.Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if !sess.Authenticated() {
		http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	flash := shared.FlashMessage{Kind: "success", Message: MsgSyncDone}
	var err error
	switch {
	case h.queue != nil:
		err = h.queue.EnqueueLogisticsSync(ctx)
		flash.Message = MsgSyncQueued
	case h.tracker != nil:
		err = h.tracker.MarkSynced(ctx, h.now())
	default:
		err = fmt.Errorf("no sync backend configured")
	}
	if err != nil {
		h.logError("logistics sync", err)
		flash = shared.FlashMessage{Kind: "error", Message: MsgSyncFailed}
	}
	sess.AddFlash(flash)
	http.Redirect(w, r, "/dashboard?view="+string(dashboard.PageLogistics), http.StatusSeeOther)
}

func (h *Handler) lastSync(ctx context.Context) time.Time {
	if h.tracker == nil {
		return time.Time{}
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	at, ok, err := h.tracker.LastSync(ctx)
	if err != nil {
		h.logger.Warn("read last sync", slog.Any("error", err))
		return time.Time{}
	}
	if !ok {
		return time.Time{}
	}
	return at.In(h.location)
}

func (h *Handler) handleServerError(w http.ResponseWriter, msg string, err error) {
	h.logError(msg, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) logError(msg string, err error) {
	h.logger.Error(msg, slog.Any("error", err))
}
