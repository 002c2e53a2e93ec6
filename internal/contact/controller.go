// Package contact drives one contact form: it validates the required fields,
// posts the form to the relay once, and reports the outcome on the status
// banner. UI elements are supplied as handles so any front end can host it.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/csg33k/contact-form/internal/adapters/clock"
	"github.com/csg33k/contact-form/internal/domain"
	"github.com/csg33k/contact-form/internal/ports"
	"github.com/csg33k/contact-form/internal/validation"
)

// FieldBinding pairs a required field with its inline error slot.
type FieldBinding struct {
	ID    string
	Input ports.FieldInput
	Error ports.ErrorSlot
}

// Handles are the UI elements a controller reads and mutates.
type Handles struct {
	Form   ports.FormContainer
	Fields []FieldBinding
	Banner ports.StatusBanner
	Submit ports.SubmitControl
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMessages(messages domain.Messages) Option {
	return func(c *Controller) {
		c.messages = messages.WithDefaults()
	}
}

// WithHideAfter overrides the banner auto-hide window. Non-positive values
// keep the default.
func WithHideAfter(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.hideAfter = d
		}
	}
}

func WithScheduler(s ports.Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// Controller runs submission attempts for a single form instance.
type Controller struct {
	handles   Handles
	fields    map[string]FieldBinding
	relay     ports.Relay
	validator *validation.Validator
	scheduler ports.Scheduler
	hideAfter time.Duration
	messages  domain.Messages
	logger    *slog.Logger
	clearer   *Clearer

	mu         sync.Mutex
	state      domain.SubmissionState
	attempts   uint64
	hideGen    uint64
	cancelHide func()
}

// New wires a controller to its handles and relay. Every required field must
// have a binding with both an input and an error slot.
func New(h Handles, relay ports.Relay, opts ...Option) (*Controller, error) {
	if relay == nil {
		return nil, errors.New("contact: relay is required")
	}
	if h.Form == nil || h.Banner == nil || h.Submit == nil {
		return nil, errors.New("contact: form, banner and submit handles are required")
	}
	fields := make(map[string]FieldBinding, len(h.Fields))
	for _, b := range h.Fields {
		if b.Input == nil || b.Error == nil {
			return nil, fmt.Errorf("contact: field %q needs an input and an error slot", b.ID)
		}
		fields[b.ID] = b
	}
	for _, id := range domain.RequiredFields {
		if _, ok := fields[id]; !ok {
			return nil, fmt.Errorf("contact: missing binding for required field %q", id)
		}
	}

	c := &Controller{
		handles:   h,
		fields:    fields,
		relay:     relay,
		scheduler: clock.System{},
		hideAfter: domain.DefaultHideAfter,
		messages:  domain.DefaultMessages(),
		logger:    slog.Default(),
		clearer:   NewClearer(h.Fields),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.validator = validation.New(c.messages)
	return c, nil
}

// State reports the current lifecycle state.
func (c *Controller) State() domain.SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs one attempt. It returns a *domain.ValidationError when the
// fields block submission, domain.ErrSubmitInFlight when another attempt is
// still running, and otherwise the outcome of the relay call.
func (c *Controller) Submit(ctx context.Context) (domain.SubmissionOutcome, error) {
	c.mu.Lock()
	if c.state == domain.StateSubmitting {
		c.mu.Unlock()
		return domain.SubmissionOutcome{}, domain.ErrSubmitInFlight
	}

	c.resetLocked()
	report := c.validator.Validate(c.inputLocked())
	c.annotateLocked(report.Results)
	if !report.Valid {
		c.mu.Unlock()
		return domain.SubmissionOutcome{}, report.Err()
	}

	c.state = domain.StateSubmitting
	c.attempts++
	attempt := c.attempts
	c.handles.Submit.SetEnabled(false)
	c.handles.Submit.SetLoading(true)
	endpoint := c.handles.Form.Action()
	values := c.handles.Form.Values()
	c.mu.Unlock()

	var outcome domain.SubmissionOutcome
	defer func() { c.finish(attempt, endpoint, outcome) }()

	err := c.relay.Submit(ctx, endpoint, values)
	outcome = classify(err)
	c.present(outcome)
	return outcome, nil
}

// OnInput is the live error clearer for this form; see Clearer.OnInput.
func (c *Controller) OnInput(fieldID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearer.OnInput(fieldID)
}

func (c *Controller) resetLocked() {
	c.stopHideLocked()
	c.handles.Banner.Hide()
	for _, b := range c.handles.Fields {
		b.Error.SetText("")
		b.Input.SetInvalid(false)
	}
}

func (c *Controller) inputLocked() validation.Input {
	return validation.Input{
		Name:    c.fields[domain.FieldName].Input.Value(),
		Email:   c.fields[domain.FieldEmail].Input.Value(),
		Message: c.fields[domain.FieldMessage].Input.Value(),
	}
}

func (c *Controller) annotateLocked(results []domain.ValidationResult) {
	for _, r := range results {
		if r.Valid {
			continue
		}
		b := c.fields[r.FieldID]
		b.Input.SetInvalid(true)
		b.Error.SetText(r.Message)
	}
}

func (c *Controller) present(outcome domain.SubmissionOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = domain.StateFor(outcome.Kind)
	switch outcome.Kind {
	case domain.OutcomeSuccess:
		c.handles.Banner.Show(c.messages.Success, domain.StyleSuccess)
		c.handles.Form.Reset()
	case domain.OutcomeRelayError:
		text := c.messages.RelayFallback
		if len(outcome.Messages) > 0 {
			text = strings.Join(outcome.Messages, ", ")
		}
		c.handles.Banner.Show(text, domain.StyleError)
	default:
		c.handles.Banner.Show(c.messages.NetworkError, domain.StyleError)
	}
}

// finish always runs, even if handling the relay response panicked.
func (c *Controller) finish(attempt uint64, endpoint string, outcome domain.SubmissionOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handles.Submit.SetEnabled(true)
	c.handles.Submit.SetLoading(false)
	if c.handles.Banner.State().Visible {
		c.scheduleHideLocked()
	}
	c.state = domain.StateIdle

	attrs := []any{
		"attempt", attempt,
		"outcome", outcome.Kind.String(),
		"endpoint", endpoint,
	}
	switch outcome.Kind {
	case domain.OutcomeSuccess:
		c.logger.Info("contact form submitted", attrs...)
	case domain.OutcomeRelayError:
		c.logger.Warn("relay rejected contact form", append(attrs, "messages", len(outcome.Messages))...)
	default:
		c.logger.Error("contact form submission failed", attrs...)
	}
}

func (c *Controller) scheduleHideLocked() {
	c.stopHideLocked()
	gen := c.hideGen
	c.cancelHide = c.scheduler.AfterFunc(c.hideAfter, func() { c.hide(gen) })
}

func (c *Controller) stopHideLocked() {
	c.hideGen++
	if c.cancelHide != nil {
		c.cancelHide()
		c.cancelHide = nil
	}
}

func (c *Controller) hide(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.hideGen {
		return
	}
	c.cancelHide = nil
	c.handles.Banner.Hide()
}

func classify(err error) domain.SubmissionOutcome {
	if err == nil {
		return domain.SubmissionOutcome{Kind: domain.OutcomeSuccess}
	}
	var relayErr *domain.RelayError
	if errors.As(err, &relayErr) {
		return domain.SubmissionOutcome{Kind: domain.OutcomeRelayError, Messages: relayErr.Messages}
	}
	return domain.SubmissionOutcome{Kind: domain.OutcomeNetworkError}
}
