package domain

import "time"

// DefaultHideAfter is how long a status banner stays visible after an attempt.
const DefaultHideAfter = 5 * time.Second

// Required field identifiers. They double as the multipart field names sent to
// the relay and as the element ids the page renders.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// RequiredFields lists the validated fields in display order.
var RequiredFields = []string{FieldName, FieldEmail, FieldMessage}

// Banner style classes.
const (
	StyleBase    = "form-status"
	StyleSuccess = "form-status success"
	StyleError   = "form-status error"
)

// FormFieldInput is one name/value pair read from the form at submit time.
type FormFieldInput struct {
	ID    string
	Value string
}

// ValidationResult is the verdict for a single field. Kind and Message are
// empty when Valid is true.
type ValidationResult struct {
	FieldID string
	Valid   bool
	Kind    ErrorKind
	Message string
}

// OutcomeKind enumerates the three ways a submission attempt can end.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota + 1
	OutcomeRelayError
	OutcomeNetworkError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRelayError:
		return "relay_error"
	case OutcomeNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// SubmissionOutcome is produced once per attempt that reached the relay.
// Messages is only populated for OutcomeRelayError and may be empty when the
// relay gave no usable body.
type SubmissionOutcome struct {
	Kind     OutcomeKind
	Messages []string
}

// BannerState is a snapshot of the singleton status banner.
type BannerState struct {
	Text    string
	Style   string
	Visible bool
}

// SubmissionState tracks where a controller is in its attempt lifecycle.
type SubmissionState int

const (
	StateIdle SubmissionState = iota
	StateSubmitting
	StateSucceeded
	StateRelayFailed
	StateNetworkFailed
)

func (s SubmissionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateRelayFailed:
		return "relay_failed"
	case StateNetworkFailed:
		return "network_failed"
	default:
		return "unknown"
	}
}

// StateFor maps a finished outcome to its terminal state.
func StateFor(kind OutcomeKind) SubmissionState {
	switch kind {
	case OutcomeSuccess:
		return StateSucceeded
	case OutcomeRelayError:
		return StateRelayFailed
	default:
		return StateNetworkFailed
	}
}
