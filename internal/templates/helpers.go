// Package templates renders the contact page and its htmx fragments. The
// components live in contact.templ; run `mage generate` after editing it.
package templates

import (
	"fmt"
	"time"

	"github.com/csg33k/contact-form/internal/domain"
	"github.com/csg33k/contact-form/internal/viewmodel"
)

// Routes the page and its fragments talk to.
const (
	SubmitPath = "/contact"
	StatusPath = "/contact/status"
	FieldPath  = "/contact/fields/"
	StylePath  = "/static/contact.css"
)

// PageData is the static copy around the form. Intro is trusted markup.
type PageData struct {
	Title   string
	Heading string
	Intro   string
}

// inputClass marks invalid inputs with the error class.
func inputClass(field *viewmodel.Field) string {
	if field.Invalid() {
		return "form-input error"
	}
	return "form-input"
}

func bannerClass(state domain.BannerState) string {
	if state.Style == "" {
		return domain.StyleBase
	}
	return state.Style
}

// htmxDelay formats a duration for hx-trigger delay modifiers.
func htmxDelay(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", int64(d/time.Second))
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}
