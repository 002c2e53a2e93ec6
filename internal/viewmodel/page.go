package viewmodel

import (
	"sync"
	"time"

	"github.com/csg33k/contact-form/internal/contact"
	"github.com/csg33k/contact-form/internal/domain"
)

// Banner is the status region.
type Banner struct {
	mu    sync.Mutex
	state domain.BannerState
}

func NewBanner() *Banner {
	return &Banner{state: domain.BannerState{Style: domain.StyleBase}}
}

func (b *Banner) Show(text, style string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = domain.BannerState{Text: text, Style: style, Visible: true}
}

func (b *Banner) Hide() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Visible = false
}

func (b *Banner) State() domain.BannerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// SubmitButton tracks the submit control's enabled and loading flags.
type SubmitButton struct {
	Label        string
	LoadingLabel string

	mu       sync.Mutex
	disabled bool
	loading  bool
}

func (s *SubmitButton) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = !enabled
}

func (s *SubmitButton) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *SubmitButton) Disabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabled
}

func (s *SubmitButton) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// VisibleLabel is whichever of the two labels is currently displayed.
func (s *SubmitButton) VisibleLabel() string {
	if s.Loading() {
		return s.LoadingLabel
	}
	return s.Label
}

// Page groups every handle of one contact form instance.
type Page struct {
	Form   *Form
	Banner *Banner
	Submit *SubmitButton

	mu        sync.Mutex
	hideAfter time.Duration
}

// NewPage builds a fresh form instance.
func NewPage(action string, hidden map[string]string) *Page {
	return &Page{
		Form:   NewForm(action, hidden),
		Banner: NewBanner(),
		Submit: &SubmitButton{Label: "Send Message", LoadingLabel: "Sending..."},
	}
}

// Handles exposes the page to a controller.
func (p *Page) Handles() contact.Handles {
	return contact.Handles{
		Form:   p.Form,
		Fields: p.Form.Bindings(),
		Banner: p.Banner,
		Submit: p.Submit,
	}
}

// AfterFunc records the requested auto-hide delay instead of running a
// timer. Server-rendered pages hand the delay to the browser, which asks for
// the hidden banner once it elapses.
func (p *Page) AfterFunc(d time.Duration, _ func()) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hideAfter = d
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.hideAfter = 0
	}
}

// HideAfter is the pending auto-hide delay, or zero.
func (p *Page) HideAfter() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hideAfter
}
