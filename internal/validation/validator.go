// Package validation checks the three required contact fields. It performs no
// I/O and touches no UI; callers annotate fields from the returned results.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/csg33k/contact-form/internal/domain"
)

// emailPattern is a single-@ shape check, not RFC 5322. The character class
// excludes whitespace as browsers define it, which is wider than RE2's \s.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// Input carries the raw values of the required fields.
type Input struct {
	Name    string
	Email   string
	Message string
}

// Report is the outcome of validating one Input.
type Report struct {
	Results []domain.ValidationResult
	Valid   bool
}

// Err returns a *domain.ValidationError describing the failed fields, or nil.
func (r Report) Err() error {
	if r.Valid {
		return nil
	}
	verr := &domain.ValidationError{}
	for _, res := range r.Results {
		if res.Valid {
			continue
		}
		verr.Fields = append(verr.Fields, &domain.FieldError{
			FieldID: res.FieldID,
			Kind:    res.Kind,
			Message: res.Message,
		})
	}
	return verr
}

// Validator produces field verdicts using the configured copy.
type Validator struct {
	messages domain.Messages
}

func New(messages domain.Messages) *Validator {
	return &Validator{messages: messages.WithDefaults()}
}

// Validate checks name, email and message in that order.
func (v *Validator) Validate(in Input) Report {
	results := []domain.ValidationResult{
		v.required(domain.FieldName, in.Name),
		v.email(in.Email),
		v.required(domain.FieldMessage, in.Message),
	}
	valid := true
	for _, r := range results {
		valid = valid && r.Valid
	}
	return Report{Results: results, Valid: valid}
}

// ValidateField checks a single required field by id. Unknown ids are valid.
func (v *Validator) ValidateField(fieldID, value string) domain.ValidationResult {
	switch fieldID {
	case domain.FieldEmail:
		return v.email(value)
	case domain.FieldName, domain.FieldMessage:
		return v.required(fieldID, value)
	default:
		return domain.ValidationResult{FieldID: fieldID, Valid: true}
	}
}

// IsEmail reports whether value has the accepted email shape. The value is
// not trimmed.
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

func (v *Validator) required(fieldID, value string) domain.ValidationResult {
	if isBlank(value) {
		return invalid(fieldID, domain.KindEmptyField, v.messages.Required(fieldID))
	}
	return domain.ValidationResult{FieldID: fieldID, Valid: true}
}

func (v *Validator) email(value string) domain.ValidationResult {
	if isBlank(value) {
		return invalid(domain.FieldEmail, domain.KindEmptyField, v.messages.EmailRequired)
	}
	if !IsEmail(value) {
		return invalid(domain.FieldEmail, domain.KindInvalidFormat, v.messages.EmailInvalid)
	}
	return domain.ValidationResult{FieldID: domain.FieldEmail, Valid: true}
}

func invalid(fieldID string, kind domain.ErrorKind, message string) domain.ValidationResult {
	return domain.ValidationResult{
		FieldID: fieldID,
		Valid:   false,
		Kind:    kind,
		Message: message,
	}
}

// isBlank trims the way browsers do, which also strips the byte order mark.
func isBlank(value string) bool {
	return strings.TrimFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	}) == ""
}
