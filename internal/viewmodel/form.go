// Package viewmodel holds in-memory UI state for the contact form. It
// implements the handle ports so a controller can drive it, and front ends
// render from its snapshots.
package viewmodel

import (
	"sort"
	"strings"
	"sync"

	"github.com/csg33k/contact-form/internal/contact"
	"github.com/csg33k/contact-form/internal/domain"
)

// Control selects how a field is rendered.
type Control string

const (
	ControlText     Control = "text"
	ControlEmail    Control = "email"
	ControlTextArea Control = "textarea"
)

// Field is a required input with its paired error slot.
type Field struct {
	ID          string
	Label       string
	Placeholder string
	Control     Control

	mu      sync.Mutex
	value   string
	invalid bool
	errText string
}

func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *Field) SetValue(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
}

func (f *Field) Invalid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invalid
}

func (f *Field) SetInvalid(invalid bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalid = invalid
}

// ErrorText is the message currently shown in the field's error slot.
func (f *Field) ErrorText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errText
}

// ErrorSlot returns the `<id>-error` element for this field.
func (f *Field) ErrorSlot() *ErrorSlot {
	return &ErrorSlot{field: f}
}

// ErrorSlotID is the element id of the error slot.
func (f *Field) ErrorSlotID() string {
	return f.ID + "-error"
}

// ErrorSlot writes into its field's message.
type ErrorSlot struct {
	field *Field
}

func (s *ErrorSlot) SetText(text string) {
	s.field.mu.Lock()
	defer s.field.mu.Unlock()
	s.field.errText = text
}

// HiddenField is sent with every submission but never shown or validated.
type HiddenField struct {
	Name  string
	Value string
}

// Form is the form container: required fields, hidden fields, relay action.
type Form struct {
	action string
	fields []*Field
	hidden []HiddenField
}

// NewForm builds the standard name/email/message form posting to action.
// Hidden fields are sorted by name and empty names are dropped.
func NewForm(action string, hidden map[string]string) *Form {
	return &Form{
		action: action,
		fields: []*Field{
			{ID: domain.FieldName, Label: "Name", Placeholder: "Your name", Control: ControlText},
			{ID: domain.FieldEmail, Label: "Email", Placeholder: "you@example.com", Control: ControlEmail},
			{ID: domain.FieldMessage, Label: "Message", Placeholder: "Tell me about your project", Control: ControlTextArea},
		},
		hidden: sortedHidden(hidden),
	}
}

func (f *Form) Action() string { return f.action }

// Fields returns the required fields in display order.
func (f *Form) Fields() []*Field { return f.fields }

// Hidden returns the hidden fields in name order.
func (f *Form) Hidden() []HiddenField { return f.hidden }

// Field looks a required field up by id.
func (f *Form) Field(id string) (*Field, bool) {
	for _, field := range f.fields {
		if field.ID == id {
			return field, true
		}
	}
	return nil, false
}

// Fill sets field values from a lookup such as url.Values.Get. Ids the lookup
// does not know keep their current value.
func (f *Form) Fill(lookup func(string) (string, bool)) {
	for _, field := range f.fields {
		if v, ok := lookup(field.ID); ok {
			field.SetValue(v)
		}
	}
}

// Values lists hidden fields first, then the visible ones, matching the
// order the page renders them in.
func (f *Form) Values() []domain.FormFieldInput {
	out := make([]domain.FormFieldInput, 0, len(f.hidden)+len(f.fields))
	for _, h := range f.hidden {
		out = append(out, domain.FormFieldInput{ID: h.Name, Value: h.Value})
	}
	for _, field := range f.fields {
		out = append(out, domain.FormFieldInput{ID: field.ID, Value: field.Value()})
	}
	return out
}

// Reset clears the user-editable values.
func (f *Form) Reset() {
	for _, field := range f.fields {
		field.SetValue("")
	}
}

// Bindings returns the typed field to error-slot mapping for a controller.
func (f *Form) Bindings() []contact.FieldBinding {
	out := make([]contact.FieldBinding, 0, len(f.fields))
	for _, field := range f.fields {
		out = append(out, contact.FieldBinding{ID: field.ID, Input: field, Error: field.ErrorSlot()})
	}
	return out
}

func sortedHidden(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	out := make([]HiddenField, 0, len(fields))
	for name, value := range fields {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, HiddenField{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
