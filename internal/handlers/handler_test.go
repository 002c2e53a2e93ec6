package handlers_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/contact-form/internal/domain"
	"github.com/csg33k/contact-form/internal/handlers"
	"github.com/csg33k/contact-form/internal/templates"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type stubRelay struct {
	mu     sync.Mutex
	err    error
	calls  int
	fields []domain.FormFieldInput
	target string
}

func (s *stubRelay) Submit(_ context.Context, endpoint string, fields []domain.FormFieldInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.target = endpoint
	s.fields = fields
	return s.err
}

func (s *stubRelay) snapshot() (int, string, []domain.FormFieldInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls, s.target, s.fields
}

func (s *stubRelay) count() int {
	n, _, _ := s.snapshot()
	return n
}

func newServer(t *testing.T, relay *stubRelay) *httptest.Server {
	t.Helper()
	h := handlers.New(relay, handlers.Options{
		Endpoint: "https://relay.example/f/abc",
		Hidden:   map[string]string{"_subject": "Portfolio enquiry"},
		Page:     templates.PageData{Title: "Jane Doe", Heading: "Contact", Intro: "Write me"},
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func multipartBody(t *testing.T, values map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func post(t *testing.T, srv *httptest.Server, path string, values map[string]string, htmx bool) string {
	t.Helper()
	body, ct := multipartBody(t, values)
	req, err := http.NewRequest(http.MethodPost, srv.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", ct)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(out)
}

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(out)
}

var validValues = map[string]string{
	"name":    "Ada",
	"email":   "ada@example.com",
	"message": "Hello",
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestIndex(t *testing.T) {
	srv := newServer(t, &stubRelay{})
	code, body := get(t, srv, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, `<form id="contactForm"`)
	assert.Contains(t, body, `name="_subject" value="Portfolio enquiry"`)
	assert.Contains(t, body, `<link rel="stylesheet" href="/static/contact.css">`)
	assert.Contains(t, body, `<p class="intro">Write me</p>`)

	code, _ = get(t, srv, "/nope")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSubmit_SuccessFragment(t *testing.T) {
	relay := &stubRelay{}
	srv := newServer(t, relay)

	out := post(t, srv, "/contact", validValues, true)

	calls, target, fields := relay.snapshot()
	assert.Equal(t, 1, calls)
	assert.Equal(t, "https://relay.example/f/abc", target)
	assert.Contains(t, fields, domain.FormFieldInput{ID: "_subject", Value: "Portfolio enquiry"})
	assert.Contains(t, fields, domain.FormFieldInput{ID: "email", Value: "ada@example.com"})

	assert.NotContains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, `class="form-status success"`)
	assert.Contains(t, out, domain.DefaultMessages().Success)
	assert.Contains(t, out, `hx-trigger="load delay:5s"`)
	assert.Contains(t, out, `id="name" name="name" class="form-input" placeholder="Your name" value=""`)
}

func TestSubmit_ValidationFragment(t *testing.T) {
	relay := &stubRelay{}
	srv := newServer(t, relay)

	out := post(t, srv, "/contact", map[string]string{"name": "Ada", "email": "abc", "message": " "}, true)

	assert.Equal(t, 0, relay.count())
	assert.Contains(t, out, `value="Ada"`)
	assert.Contains(t, out, `<span class="error-message" id="email-error">Please enter a valid email address</span>`)
	assert.Contains(t, out, `<span class="error-message" id="message-error">Please enter your message</span>`)
	assert.Contains(t, out, `<span class="error-message" id="name-error"></span>`)
	assert.Contains(t, out, `hx-post="/contact/fields/email" hx-trigger="input once" hx-target="#email-error"`)
	assert.NotContains(t, out, `hx-post="/contact/fields/name"`)
	assert.Contains(t, out, `style="display:none"`)
}

func TestSubmit_RelayErrorFragment(t *testing.T) {
	relay := &stubRelay{err: &domain.RelayError{StatusCode: 422, Messages: []string{"bad", "worse"}}}
	srv := newServer(t, relay)

	out := post(t, srv, "/contact", validValues, true)

	assert.Contains(t, out, `class="form-status error"`)
	assert.Contains(t, out, ">bad, worse</div>")
	assert.Contains(t, out, `value="Ada"`, "fields are kept on failure")
}

func TestSubmit_RelayMessagesEscapedNotRewritten(t *testing.T) {
	relay := &stubRelay{err: &domain.RelayError{StatusCode: 422, Messages: []string{"field <email> is required", "use a<b"}}}
	srv := newServer(t, relay)

	out := post(t, srv, "/contact", validValues, true)

	assert.Contains(t, out, ">field &lt;email&gt; is required, use a&lt;b</div>")
}

func TestSubmit_NetworkErrorFullPageWithoutHTMX(t *testing.T) {
	relay := &stubRelay{err: &domain.NetworkError{}}
	srv := newServer(t, relay)

	out := post(t, srv, "/contact", validValues, false)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, domain.DefaultMessages().NetworkError)
	assert.NotContains(t, out, `id="submitBtn" class="submit-btn" disabled`)
}

func TestSubmit_URLEncoded(t *testing.T) {
	relay := &stubRelay{}
	srv := newServer(t, relay)

	form := url.Values{"name": {"Ada"}, "email": {"a@b.c"}, "message": {"hi"}}
	resp, err := http.Post(srv.URL+"/contact", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, relay.count())
}

func TestStatus_ReturnsHiddenBanner(t *testing.T) {
	srv := newServer(t, &stubRelay{})
	code, body := get(t, srv, "/contact/status")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `id="formStatus" class="form-status"`)
	assert.Contains(t, body, `style="display:none"`)
}

func TestClearField_ReturnsOnlyTheErrorSlot(t *testing.T) {
	srv := newServer(t, &stubRelay{})

	out := post(t, srv, "/contact/fields/email", map[string]string{"email": "still wrong"}, true)

	assert.Equal(t, `<span class="error-message" id="email-error"></span>`, out)
	assert.NotContains(t, out, "<input", "the input and its in-flight value are left alone")
	assert.NotContains(t, out, "still wrong")
}

func TestClearField_TextArea(t *testing.T) {
	srv := newServer(t, &stubRelay{})

	out := post(t, srv, "/contact/fields/message", nil, true)

	assert.Equal(t, `<span class="error-message" id="message-error"></span>`, out)
	assert.NotContains(t, out, "<textarea")
}

func TestClearField_UnknownField(t *testing.T) {
	srv := newServer(t, &stubRelay{})
	body, ct := multipartBody(t, map[string]string{"phone": "1"})
	resp, err := http.Post(srv.URL+"/contact/fields/phone", ct, body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStylesheet(t *testing.T) {
	srv := newServer(t, &stubRelay{})
	resp, err := http.Get(srv.URL + templates.StylePath)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/css; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), ".form-input.error")
}

func TestHealthz(t *testing.T) {
	srv := newServer(t, &stubRelay{})
	code, body := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)
}
