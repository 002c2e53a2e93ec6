package viewmodel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/csg33k/contact-form/internal/domain"
	"github.com/csg33k/contact-form/internal/viewmodel"
)

func TestForm_ValuesHiddenFirstInNameOrder(t *testing.T) {
	form := viewmodel.NewForm("https://relay.example/f/1", map[string]string{
		"_subject": "Hi",
		"  ":       "dropped",
		"_gotcha":  "",
	})
	form.Fill(func(id string) (string, bool) {
		if id == domain.FieldEmail {
			return "a@b.c", true
		}
		return "", false
	})

	assert.Equal(t, []domain.FormFieldInput{
		{ID: "_gotcha", Value: ""},
		{ID: "_subject", Value: "Hi"},
		{ID: domain.FieldName, Value: ""},
		{ID: domain.FieldEmail, Value: "a@b.c"},
		{ID: domain.FieldMessage, Value: ""},
	}, form.Values())
	assert.Equal(t, "https://relay.example/f/1", form.Action())
}

func TestForm_ResetKeepsHiddenFields(t *testing.T) {
	form := viewmodel.NewForm("", map[string]string{"_subject": "Hi"})
	for _, f := range form.Fields() {
		f.SetValue("x")
	}
	form.Reset()

	for _, f := range form.Fields() {
		assert.Empty(t, f.Value(), f.ID)
	}
	assert.Equal(t, []viewmodel.HiddenField{{Name: "_subject", Value: "Hi"}}, form.Hidden())
}

func TestForm_BindingsPairErrorSlots(t *testing.T) {
	form := viewmodel.NewForm("", nil)
	bindings := form.Bindings()
	assert.Len(t, bindings, 3)

	bindings[1].Error.SetText("Please enter your email")
	email, ok := form.Field(domain.FieldEmail)
	assert.True(t, ok)
	assert.Equal(t, "Please enter your email", email.ErrorText())
	assert.Equal(t, "email-error", email.ErrorSlotID())

	_, ok = form.Field("phone")
	assert.False(t, ok)
}

func TestPage_RecordsHideDelay(t *testing.T) {
	page := viewmodel.NewPage("", nil)
	assert.Zero(t, page.HideAfter())

	cancel := page.AfterFunc(5*time.Second, func() { t.Fatal("page never runs hide callbacks") })
	assert.Equal(t, 5*time.Second, page.HideAfter())
	cancel()
	assert.Zero(t, page.HideAfter())
}

func TestBanner(t *testing.T) {
	b := viewmodel.NewBanner()
	assert.Equal(t, domain.BannerState{Style: domain.StyleBase}, b.State())

	b.Show("done", domain.StyleSuccess)
	assert.Equal(t, domain.BannerState{Text: "done", Style: domain.StyleSuccess, Visible: true}, b.State())

	b.Hide()
	assert.False(t, b.State().Visible)
	assert.Equal(t, "done", b.State().Text)
}
