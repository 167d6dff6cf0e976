package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/ryanfelix147-netizen/GT/internal/shared"
	"github.com/ryanfelix147-netizen/GT/internal/view"
)

const (
	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/auth/login"
	// HomePath is the landing page once the gate is passed.
	HomePath = "/dashboard"
)

// Login outcomes reported to the LoginRecorder.
const (
	OutcomeSuccess     = "success"
	OutcomeEmptyFields = "empty_fields"
)

// LoginRecorder counts login attempts by outcome.
type LoginRecorder interface {
	ObserveLogin(outcome string)
}

// Handler wires HTTP endpoints for the session gate.
type Handler struct {
	logger         *slog.Logger
	gate           *Gate
	templates      *view.Engine
	sessionManager *shared.SessionManager
	csrfManager    *shared.CSRFManager
	recorder       LoginRecorder
	loginLimit     int
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, gate *Gate, templates *view.Engine, sessions *shared.SessionManager, csrf *shared.CSRFManager, recorder LoginRecorder) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:         logger,
		gate:           gate,
		templates:      templates,
		sessionManager: sessions,
		csrfManager:    csrf,
		recorder:       recorder,
	}
}

// WithLoginRateLimit caps login submissions per IP per minute. Zero disables the limit.
func (h *Handler) WithLoginRateLimit(perMinute int) *Handler {
	h.loginLimit = perMinute
	return h
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.showLogin)
	r.Group(func(gr chi.Router) {
		if h.loginLimit > 0 {
			gr.Use(httprate.Limit(h.loginLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		}
		gr.Post("/login", h.handleLogin)
	})
	r.Post("/access", h.handleAccess)
	r.Post("/logout", h.handleLogout)
}

type loginPageData struct {
	Identifier string
	Error      string
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if StateOf(sess) == Authenticated {
		http.Redirect(w, r, HomePath, http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, loginPageData{})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	creds := Credentials{
		Identifier: r.PostFormValue("identifier"),
		Secret:     r.PostFormValue("secret"),
	}
	if err := h.gate.Login(sess, creds); err != nil {
		if !errors.Is(err, shared.ErrEmptyFields) {
			h.logger.Error("login", slog.Any("error", err))
		}
		h.observe(OutcomeEmptyFields)
		h.renderLogin(w, r, http.StatusBadRequest, loginPageData{Identifier: creds.Identifier, Error: MsgEmptyFields})
		return
	}

	h.observe(OutcomeSuccess)
	if _, err := h.csrfManager.Rotate(sess); err != nil {
		h.logger.Warn("rotate csrf token", slog.Any("error", err))
	}
	sess.AddFlash(shared.FlashMessage{Kind: "success", Message: MsgWelcome})
	h.logger.Info("session authenticated", slog.String("session", sess.ID))
	http.Redirect(w, r, HomePath, http.StatusSeeOther)
}

func (h *Handler) handleAccess(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		notice := h.gate.CreateAccess(sess)
		sess.AddFlash(shared.FlashMessage{Kind: notice.Kind, Message: notice.Message})
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		h.gate.Logout(sess)
		h.sessionManager.Destroy(sess)
		h.logger.Info("session closed", slog.String("session", sess.ID))
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data loginPageData) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, err := h.csrfManager.EnsureToken(sess)
	if err != nil {
		h.logger.Warn("csrf token", slog.Any("error", err))
	}
	viewData := view.TemplateData{
		Title:       "TrackingGT - Acesso",
		CSRFToken:   csrfToken,
		Flash:       sess.PopFlash(),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.RenderStatus(w, status, "pages/login.html", viewData); err != nil {
		h.logger.Error("render login", slog.Any("error", err))
	}
}

func (h *Handler) observe(outcome string) {
	if h.recorder != nil {
		h.recorder.ObserveLogin(outcome)
	}
}

// ShowLoginForTest exposes the GET handler for tests.
func (h *Handler) ShowLoginForTest(w http.ResponseWriter, r *http.Request) {
	h.showLogin(w, r)
}

// HandleLoginForTest exposes the POST handler for tests.
func (h *Handler) HandleLoginForTest(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r)
}

// HandleAccessForTest exposes the create-access handler for tests.
func (h *Handler) HandleAccessForTest(w http.ResponseWriter, r *http.Request) {
	h.handleAccess(w, r)
}

// HandleLogoutForTest exposes the logout handler for tests.
func (h *Handler) HandleLogoutForTest(w http.ResponseWriter, r *http.Request) {
	h.handleLogout(w, r)
}
