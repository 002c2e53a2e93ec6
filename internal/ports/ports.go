package ports

import (
	"context"
	"time"

	"github.com/csg33k/contact-form/internal/domain"
)

// FormContainer is the form element itself: every named control, the relay
// action URL and the reset behaviour.
type FormContainer interface {
	// Values returns every name/value pair the form would submit, hidden
	// fields included, in document order.
	Values() []domain.FormFieldInput
	// Action is the relay URL the form posts to.
	Action() string
	// Reset clears the user-editable field values.
	Reset()
}

// FieldInput is a single required input control.
type FieldInput interface {
	Value() string
	Invalid() bool
	SetInvalid(invalid bool)
}

// ErrorSlot is the inline message element paired with a field.
type ErrorSlot interface {
	SetText(text string)
}

// StatusBanner is the singleton outcome region.
type StatusBanner interface {
	Show(text, style string)
	Hide()
	State() domain.BannerState
}

// SubmitControl is the submit button with its label/loading sub-elements.
type SubmitControl interface {
	SetEnabled(enabled bool)
	SetLoading(loading bool)
}

// Relay performs the single POST of form values to the relay endpoint.
// Implementations return *domain.RelayError for non-success statuses and
// *domain.NetworkError when no response was received.
type Relay interface {
	Submit(ctx context.Context, endpoint string, fields []domain.FormFieldInput) error
}

// Scheduler runs f once after d. The returned func cancels a pending run.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func())
}
