package templates_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/contact-form/internal/domain"
	"github.com/csg33k/contact-form/internal/templates"
	"github.com/csg33k/contact-form/internal/viewmodel"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestPage_RendersFormAndCopy(t *testing.T) {
	page := viewmodel.NewPage("https://relay.example/f/1", map[string]string{"_subject": "Hi"})
	out := render(t, templates.Page(templates.PageData{
		Title:   "Jane & Co",
		Heading: "Get in touch",
		Intro:   `Say <em>hello</em>`,
	}, page))

	assert.Contains(t, out, "<title>Jane &amp; Co</title>")
	assert.Contains(t, out, `<p class="intro">Say <em>hello</em></p>`)
	assert.Contains(t, out, `<link rel="stylesheet" href="`+templates.StylePath+`">`)
	assert.Contains(t, out, `<form id="contactForm"`)
	assert.Contains(t, out, `hx-post="/contact"`)
	assert.Contains(t, out, `<input type="hidden" name="_subject" value="Hi">`)
	assert.Contains(t, out, `id="name-error"`)
	assert.Contains(t, out, `id="email-error"`)
	assert.Contains(t, out, `id="message-error"`)
	assert.NotContains(t, out, "relay.example", "relay endpoint stays server side")
}

func TestFieldGroup_InvalidFieldCarriesLiveClear(t *testing.T) {
	form := viewmodel.NewForm("", nil)
	email, _ := form.Field(domain.FieldEmail)
	email.SetValue(`"><script>`)
	email.SetInvalid(true)
	email.ErrorSlot().SetText("Please enter a valid email address")

	out := render(t, templates.FieldGroup(email))

	assert.Contains(t, out, `class="form-input error"`)
	assert.Contains(t, out, `hx-post="/contact/fields/email" hx-trigger="input once" hx-target="#email-error" hx-swap="outerHTML"`)
	assert.Contains(t, out, `hx-on::after-request=`)
	assert.NotContains(t, out, `hx-target="#email-group"`, "the group is never swapped while the user types")
	assert.Contains(t, out, `value="&#34;&gt;&lt;script&gt;"`)
	assert.Contains(t, out, `<span class="error-message" id="email-error">Please enter a valid email address</span>`)
}

func TestFieldGroup_ValidFieldHasNoLiveClear(t *testing.T) {
	form := viewmodel.NewForm("", nil)
	msg, _ := form.Field(domain.FieldMessage)
	msg.SetValue("Hello <there>")

	out := render(t, templates.FieldGroup(msg))

	assert.Contains(t, out, `<textarea id="message" name="message" class="form-input" rows="5"`)
	assert.Contains(t, out, `>Hello &lt;there&gt;</textarea>`)
	assert.NotContains(t, out, "hx-post")
}

func TestStatusBanner(t *testing.T) {
	hidden := render(t, templates.StatusBanner(domain.BannerState{}, 0))
	assert.Contains(t, hidden, `<div id="formStatus" class="form-status" role="status" style="display:none">`)
	assert.NotContains(t, hidden, "hx-get")

	shown := render(t, templates.StatusBanner(domain.BannerState{
		Text:    "bad, worse",
		Style:   domain.StyleError,
		Visible: true,
	}, 5*time.Second))
	assert.Contains(t, shown, `class="form-status error"`)
	assert.Contains(t, shown, `style="display:block"`)
	assert.Contains(t, shown, `hx-trigger="load delay:5s"`)
	assert.Contains(t, shown, ">bad, worse</div>")

	partial := render(t, templates.StatusBanner(domain.BannerState{Visible: true, Style: domain.StyleSuccess}, 1500*time.Millisecond))
	assert.Contains(t, partial, `hx-trigger="load delay:1500ms"`)
}

func TestSubmitButton_LoadingState(t *testing.T) {
	btn := &viewmodel.SubmitButton{Label: "Send", LoadingLabel: "Sending..."}
	idle := render(t, templates.SubmitButton(btn))
	assert.NotContains(t, idle, " disabled")
	assert.Contains(t, idle, `<span id="btnText" class="btn-text" style="display:inline">Send</span>`)

	btn.SetEnabled(false)
	btn.SetLoading(true)
	busy := render(t, templates.SubmitButton(btn))
	assert.Contains(t, busy, `id="submitBtn" class="submit-btn" disabled>`)
	assert.Contains(t, busy, `<span id="btnLoading" class="btn-loading" style="display:inline">Sending...</span>`)
}

func TestFieldGroup_InvalidTextAreaCarriesLiveClear(t *testing.T) {
	form := viewmodel.NewForm("", nil)
	msg, _ := form.Field(domain.FieldMessage)
	msg.SetInvalid(true)

	out := render(t, templates.FieldGroup(msg))

	assert.Contains(t, out, `class="form-input error"`)
	assert.Contains(t, out, `hx-post="/contact/fields/message" hx-trigger="input once" hx-target="#message-error"`)
}

func TestErrorMessage(t *testing.T) {
	form := viewmodel.NewForm("", nil)
	name, _ := form.Field(domain.FieldName)
	assert.Equal(t, `<span class="error-message" id="name-error"></span>`, render(t, templates.ErrorMessage(name)))

	name.ErrorSlot().SetText("a <b> & c")
	assert.Equal(t, `<span class="error-message" id="name-error">a &lt;b&gt; &amp; c</span>`, render(t, templates.ErrorMessage(name)))
}
