package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/a-h/templ"

	"github.com/csg33k/contact-form/internal/contact"
	"github.com/csg33k/contact-form/internal/domain"
	"github.com/csg33k/contact-form/internal/ports"
	"github.com/csg33k/contact-form/internal/templates"
	"github.com/csg33k/contact-form/internal/viewmodel"
)

// maxFormMemory bounds multipart parsing of contact submissions.
const maxFormMemory = 1 << 20

// Options carries the page and relay settings the handler needs.
type Options struct {
	Endpoint  string
	Hidden    map[string]string
	Messages  domain.Messages
	HideAfter time.Duration
	Page      templates.PageData
	Logger    *slog.Logger
}

type Handler struct {
	relay ports.Relay
	opts  Options
}

func New(relay ports.Relay, opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.HideAfter <= 0 {
		opts.HideAfter = domain.DefaultHideAfter
	}
	opts.Messages = opts.Messages.WithDefaults()
	return &Handler{relay: relay, opts: opts}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("POST /contact", h.submit)
	mux.HandleFunc("GET /contact/status", h.status)
	mux.HandleFunc("POST /contact/fields/{id}", h.clearField)
	mux.HandleFunc("GET "+templates.StylePath, h.stylesheet)
	mux.HandleFunc("GET /healthz", h.healthz)
	return mux
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Page(h.opts.Page, h.newPage()))
}

// submit runs one attempt against a fresh form instance built from the
// posted values. htmx requests get the form fragment back; plain form posts
// get the whole page.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	values, err := parseForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page := h.newPage()
	page.Form.Fill(lookup(values))

	ctrl, err := contact.New(page.Handles(), h.relay,
		contact.WithScheduler(page),
		contact.WithHideAfter(h.opts.HideAfter),
		contact.WithMessages(h.opts.Messages),
		contact.WithLogger(h.opts.Logger),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := ctrl.Submit(r.Context()); err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.opts.Logger.Debug("contact form failed validation", "fields", len(verr.Fields))
	}

	if isHTMX(r) {
		render(w, r, templates.ContactForm(page))
		return
	}
	render(w, r, templates.Page(h.opts.Page, page))
}

// status answers the banner's delayed hide request.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.StatusBanner(domain.BannerState{Style: domain.StyleBase}, 0))
}

// clearField is the live error clearer. The browser only wires this route on
// fields rendered invalid, so the field starts out marked. Only the error
// slot is sent back; the input keeps whatever the user has typed since.
func (h *Handler) clearField(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	page := h.newPage()
	field, ok := page.Form.Field(id)
	if !ok {
		http.Error(w, "unknown field", http.StatusNotFound)
		return
	}
	field.SetInvalid(true)

	contact.NewClearer(page.Form.Bindings()).OnInput(id)
	render(w, r, templates.ErrorMessage(field))
}

func (h *Handler) stylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(templates.Stylesheet))
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (h *Handler) newPage() *viewmodel.Page {
	return viewmodel.NewPage(h.opts.Endpoint, h.opts.Hidden)
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

func parseForm(r *http.Request) (url.Values, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
	}
	return r.PostForm, nil
}

func lookup(values url.Values) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		if !ok || len(v) == 0 {
			return "", false
		}
		return v[0], true
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
