// ABOUTME: Web host that reruns demo scripts on every browser interaction
// ABOUTME: Owns session cookies, widget state persistence and page rendering

package webui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2389/widgetdash/internal/demo"
	"github.com/2389/widgetdash/internal/metrics"
	"github.com/2389/widgetdash/internal/page"
	"github.com/2389/widgetdash/internal/store"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "widgetdash_session"

	// maxFormMemory is the part of a multipart form kept in memory; the rest
	// spills to temporary files
	maxFormMemory = 32 << 20

	// maxFormValues bounds the widget values accepted from one submission
	maxFormValues = 64
)

// Config holds host configuration
type Config struct {
	// SessionTTL is the cookie lifetime; zero means a browser-session cookie
	SessionTTL time.Duration
}

// Host serves the demo scripts. Each request is one event: the host loads
// the session's widget state, applies any submitted values, reruns the
// script from the top and renders the resulting elements.
type Host struct {
	registry  *demo.Registry
	store     store.Store
	metrics   *metrics.Metrics
	config    Config
	templates *templates
	logger    *slog.Logger
}

// New creates a Host. metrics may be nil.
func New(registry *demo.Registry, s store.Store, m *metrics.Metrics, cfg Config) *Host {
	return &Host{
		registry:  registry,
		store:     s,
		metrics:   m,
		config:    cfg,
		templates: parseTemplates(),
		logger:    slog.Default().With("component", "webui"),
	}
}

// RegisterRoutes registers all page routes on the given mux
func (h *Host) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /app/{script}", h.handleApp)
	mux.HandleFunc("POST /app/{script}", h.handleAppSubmit)
	mux.HandleFunc("POST /app/{script}/upload/{key}/clear", h.handleUploadClear)
	mux.HandleFunc("GET /app/{script}/table/{file}", h.handleTableExport)

	h.logger.Info("page routes registered", "scripts", len(h.registry.List()))
}

func (h *Host) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w)
}

// handleApp reruns the script against the session's current state
func (h *Host) handleApp(w http.ResponseWriter, r *http.Request) {
	script, ok := h.lookupScript(w, r)
	if !ok {
		return
	}

	state, ok := h.sessionState(w, r)
	if !ok {
		return
	}

	h.renderApp(w, script, h.rerun(r.Context(), script, state))
}

// handleAppSubmit stores submitted widget values and uploads, then
// redirects back to the page so the rerun happens on GET
func (h *Host) handleAppSubmit(w http.ResponseWriter, r *http.Request) {
	script, ok := h.lookupScript(w, r)
	if !ok {
		return
	}

	sessionID, err := h.ensureSession(w, r)
	if err != nil {
		h.serverError(w, "failed to start session", err)
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	values := widgetValues(r)
	if len(values) > maxFormValues {
		http.Error(w, "too many form values", http.StatusBadRequest)
		return
	}

	err = h.saveSubmission(r, sessionID, values)
	if errors.Is(err, store.ErrNotFound) {
		// The session expired after the cookie was checked
		sessionID, err = h.newSession(w, r)
		if err == nil {
			err = h.saveSubmission(r, sessionID, values)
		}
	}
	if err != nil {
		h.serverError(w, "failed to save submission", err)
		return
	}

	http.Redirect(w, r, "/app/"+script.Name, http.StatusSeeOther)
}

// handleUploadClear removes the upload stored for a file uploader widget
func (h *Host) handleUploadClear(w http.ResponseWriter, r *http.Request) {
	script, ok := h.lookupScript(w, r)
	if !ok {
		return
	}

	sessionID, err := h.ensureSession(w, r)
	if err != nil {
		h.serverError(w, "failed to start session", err)
		return
	}

	if err := h.store.ClearUpload(r.Context(), sessionID, r.PathValue("key")); err != nil {
		h.serverError(w, "failed to clear upload", err)
		return
	}

	http.Redirect(w, r, "/app/"+script.Name, http.StatusSeeOther)
}

// handleTableExport reruns the script and downloads its n-th table as xlsx
func (h *Host) handleTableExport(w http.ResponseWriter, r *http.Request) {
	script, ok := h.lookupScript(w, r)
	if !ok {
		return
	}

	index, ok := strings.CutSuffix(r.PathValue("file"), ".xlsx")
	if !ok {
		http.NotFound(w, r)
		return
	}
	n, err := strconv.Atoi(index)
	if err != nil || n < 0 {
		http.NotFound(w, r)
		return
	}

	state, ok := h.sessionState(w, r)
	if !ok {
		return
	}

	table := nthTable(h.rerun(r.Context(), script, state), n)
	if table == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-table-%d.xlsx"`, script.Name, n))
	if err := table.Frame.WriteXLSX(w); err != nil {
		h.logger.Error("failed to write xlsx", "script", script.Name, "error", err)
	}
}

// rerun executes one full pass of script. Script errors are rendered as an
// error element after whatever the script produced before failing.
func (h *Host) rerun(ctx context.Context, script demo.Script, state *page.State) []page.Element {
	p := page.New(state)

	start := time.Now()
	err := script.Run(ctx, p)
	h.metrics.ObserveRerun(script.Name, time.Since(start), err)

	if err != nil {
		h.logger.Error("script failed", "script", script.Name, "error", err)
		p.Error(err.Error())
	}

	return p.Elements()
}

func (h *Host) lookupScript(w http.ResponseWriter, r *http.Request) (demo.Script, bool) {
	script, ok := h.registry.Get(r.PathValue("script"))
	if !ok {
		http.NotFound(w, r)
	}
	return script, ok
}

// ensureSession returns the session from the cookie, creating a new one
// when the cookie is missing or unknown
func (h *Host) ensureSession(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		_, err := h.store.GetSession(r.Context(), cookie.Value)
		if err == nil {
			return cookie.Value, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return "", err
		}
	}

	return h.newSession(w, r)
}

// newSession creates a session and sets its cookie
func (h *Host) newSession(w http.ResponseWriter, r *http.Request) (string, error) {
	sess, err := h.store.CreateSession(r.Context())
	if err != nil {
		return "", err
	}
	h.metrics.SessionCreated()

	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
	if h.config.SessionTTL > 0 {
		cookie.MaxAge = int(h.config.SessionTTL.Seconds())
	}
	http.SetCookie(w, cookie)

	return sess.ID, nil
}

// sessionState loads the widget state of the request's session. A session
// that expires between the cookie check and the load is replaced by a new,
// empty one.
func (h *Host) sessionState(w http.ResponseWriter, r *http.Request) (*page.State, bool) {
	sessionID, err := h.ensureSession(w, r)
	if err != nil {
		h.serverError(w, "failed to start session", err)
		return nil, false
	}

	state, err := h.store.LoadState(r.Context(), sessionID)
	if errors.Is(err, store.ErrNotFound) {
		if sessionID, err = h.newSession(w, r); err == nil {
			state, err = h.store.LoadState(r.Context(), sessionID)
		}
	}
	if err != nil {
		h.serverError(w, "failed to load widget state", err)
		return nil, false
	}
	return state, true
}

// saveSubmission stores submitted widget values and uploads for sessionID
func (h *Host) saveSubmission(r *http.Request, sessionID string, values map[string]string) error {
	if len(values) > 0 {
		if err := h.store.SaveValues(r.Context(), sessionID, values); err != nil {
			return fmt.Errorf("saving widget values: %w", err)
		}
	}
	if err := h.saveUploads(r, sessionID); err != nil {
		return fmt.Errorf("saving uploads: %w", err)
	}
	return nil
}

// widgetValues collects submitted form fields whose names are widget keys
func widgetValues(r *http.Request) map[string]string {
	values := make(map[string]string)
	for name, vals := range r.PostForm {
		if len(vals) == 0 || page.Key(name) != name {
			continue
		}
		values[name] = vals[0]
	}
	return values
}

// saveUploads stores every non-empty file part under its field name
func (h *Host) saveUploads(r *http.Request, sessionID string) error {
	if r.MultipartForm == nil {
		return nil
	}

	for key, headers := range r.MultipartForm.File {
		if len(headers) == 0 || headers[0].Filename == "" || page.Key(key) != key {
			continue
		}

		f, err := headers[0].Open()
		if err != nil {
			return fmt.Errorf("opening %s: %w", headers[0].Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("reading %s: %w", headers[0].Filename, err)
		}

		upload := &page.Upload{Name: headers[0].Filename, Data: data}
		if err := h.store.SaveUpload(r.Context(), sessionID, key, upload); err != nil {
			return err
		}
		h.metrics.UploadReceived()
		h.logger.Info("upload received", "key", key, "name", upload.Name, "size", len(data))
	}

	return nil
}

func nthTable(elems []page.Element, n int) *page.Element {
	for i := range elems {
		if elems[i].Kind != page.KindTable {
			continue
		}
		if n == 0 {
			return &elems[i]
		}
		n--
	}
	return nil
}

func (h *Host) serverError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, "error", err)
	http.Error(w, msg, http.StatusInternalServerError)
}
