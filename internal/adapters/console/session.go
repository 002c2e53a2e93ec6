// Package console hosts the contact form in an interactive terminal. Prompts
// stand in for the page inputs; the status banner is printed.
package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/csg33k/contact-form/internal/contact"
	"github.com/csg33k/contact-form/internal/domain"
	"github.com/csg33k/contact-form/internal/viewmodel"
)

// Theme captures the prefixes used when printing messages.
type Theme struct {
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme is plain ASCII so it survives any terminal.
var DefaultTheme = Theme{
	ErrorPrefix:   "x ",
	SuccessPrefix: "> ",
}

// Option configures a Session.
type Option func(*Session)

func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithRetryPrompt asks whether to resend after a relay or network failure.
func WithRetryPrompt(enabled bool) Option {
	return func(s *Session) {
		s.retryPrompt = enabled
	}
}

// Session collects the fields and submits them through a controller bound to
// page.
type Session struct {
	driver      PromptDriver
	page        *viewmodel.Page
	ctrl        *contact.Controller
	theme       Theme
	retryPrompt bool
}

func NewSession(driver PromptDriver, page *viewmodel.Page, ctrl *contact.Controller, opts ...Option) (*Session, error) {
	if driver == nil || page == nil || ctrl == nil {
		return nil, errors.New("console: driver, page and controller are required")
	}
	s := &Session{
		driver:      driver,
		page:        page,
		ctrl:        ctrl,
		theme:       DefaultTheme,
		retryPrompt: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Run prompts for every field, then submits. Invalid fields are shown with
// their messages and asked again; each re-entry goes through the live error
// clearer before the next attempt.
func (s *Session) Run(ctx context.Context) (domain.SubmissionOutcome, error) {
	for _, field := range s.page.Form.Fields() {
		if err := s.ask(ctx, field); err != nil {
			return domain.SubmissionOutcome{}, err
		}
	}
	return s.submitLoop(ctx)
}

// Send submits whatever the page already holds, without prompting.
func (s *Session) Send(ctx context.Context) (domain.SubmissionOutcome, error) {
	outcome, err := s.ctrl.Submit(ctx)
	if err != nil {
		s.reportInvalid(ctx)
		return outcome, err
	}
	s.reportBanner(ctx, outcome)
	return outcome, nil
}

func (s *Session) submitLoop(ctx context.Context) (domain.SubmissionOutcome, error) {
	for {
		outcome, err := s.ctrl.Submit(ctx)
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			if err := s.fixInvalid(ctx); err != nil {
				return domain.SubmissionOutcome{}, err
			}
			continue
		}
		if err != nil {
			return outcome, err
		}

		s.reportBanner(ctx, outcome)
		if outcome.Kind == domain.OutcomeSuccess || !s.retryPrompt {
			return outcome, nil
		}
		again, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Try sending again?", Default: true})
		if err != nil {
			return outcome, err
		}
		if !again {
			return outcome, nil
		}
	}
}

func (s *Session) fixInvalid(ctx context.Context) error {
	for _, field := range s.page.Form.Fields() {
		if !field.Invalid() {
			continue
		}
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+field.Label+": "+field.ErrorText()); err != nil {
			return err
		}
		if err := s.ask(ctx, field); err != nil {
			return err
		}
		s.ctrl.OnInput(field.ID)
	}
	return nil
}

func (s *Session) ask(ctx context.Context, field *viewmodel.Field) error {
	var (
		value string
		err   error
	)
	if field.Control == viewmodel.ControlTextArea {
		value, err = s.driver.TextArea(ctx, TextAreaConfig{
			Message: field.Label,
			Default: field.Value(),
			Help:    field.Placeholder,
		})
	} else {
		value, err = s.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Default: field.Value(),
			Help:    field.Placeholder,
		})
	}
	if err != nil {
		return fmt.Errorf("prompt %s: %w", field.ID, err)
	}
	field.SetValue(value)
	return nil
}

func (s *Session) reportInvalid(ctx context.Context) {
	for _, field := range s.page.Form.Fields() {
		if field.Invalid() {
			_ = s.driver.Info(ctx, s.theme.ErrorPrefix+field.Label+": "+field.ErrorText())
		}
	}
}

func (s *Session) reportBanner(ctx context.Context, outcome domain.SubmissionOutcome) {
	banner := s.page.Banner.State()
	if !banner.Visible {
		return
	}
	prefix := s.theme.ErrorPrefix
	if outcome.Kind == domain.OutcomeSuccess {
		prefix = s.theme.SuccessPrefix
	}
	_ = s.driver.Info(ctx, prefix+banner.Text)
}
