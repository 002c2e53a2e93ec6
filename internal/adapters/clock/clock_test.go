package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/csg33k/contact-form/internal/adapters/clock"
)

func TestManual_RunsDueCallbacksInOrder(t *testing.T) {
	m := clock.NewManual()
	var got []string
	m.AfterFunc(3*time.Second, func() { got = append(got, "late") })
	m.AfterFunc(time.Second, func() { got = append(got, "early") })

	m.Advance(500 * time.Millisecond)
	assert.Empty(t, got)
	assert.Equal(t, []time.Duration{2500 * time.Millisecond, 500 * time.Millisecond}, m.Pending())

	m.Advance(5 * time.Second)
	assert.Equal(t, []string{"early", "late"}, got)
	assert.Empty(t, m.Pending())
}

func TestManual_Cancel(t *testing.T) {
	m := clock.NewManual()
	fired := false
	cancel := m.AfterFunc(time.Second, func() { fired = true })
	cancel()
	m.Advance(time.Minute)
	assert.False(t, fired)
}

func TestSystem_Fires(t *testing.T) {
	done := make(chan struct{})
	clock.System{}.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("system scheduler did not fire")
	}
}
