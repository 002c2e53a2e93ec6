package relay_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/contact-form/internal/adapters/relay"
	"github.com/csg33k/contact-form/internal/domain"
)

var fields = []domain.FormFieldInput{
	{ID: "_subject", Value: "New contact"},
	{ID: "name", Value: "Ada"},
	{ID: "email", Value: "ada@example.com"},
	{ID: "message", Value: "Hello\nthere"},
}

func TestSubmit_PostsMultipartWithJSONAccept(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "New contact", r.FormValue("_subject"))
		assert.Equal(t, "Ada", r.FormValue("name"))
		assert.Equal(t, "ada@example.com", r.FormValue("email"))
		assert.Equal(t, "Hello\nthere", r.FormValue("message"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"next":"/thanks","ok":true}`))
	}))
	defer srv.Close()

	err := relay.New().Submit(context.Background(), srv.URL, fields)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSubmit_FailureBodyMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   []string
	}{
		{"errors joined in order", 422, `{"errors":[{"message":"bad"},{"message":"worse"}]}`, []string{"bad", "worse"}},
		{"empty errors", 400, `{"errors":[]}`, nil},
		{"no errors key", 400, `{"error":"something"}`, nil},
		{"html body", 502, `<html><body>Bad Gateway</body></html>`, nil},
		{"empty body", 500, ``, nil},
		{"text kept verbatim", 422, `{"errors":[{"message":"field <email> is required"},{"message":"use a<b"}]}`, []string{"field <email> is required", "use a<b"}},
		{"entities not decoded", 422, `{"errors":[{"message":"<b>bad</b> &amp; worse"}]}`, []string{"<b>bad</b> &amp; worse"}},
		{"blank messages dropped", 422, `{"errors":[{"message":"  bad "},{"message":"  "},{"message":""}]}`, []string{"bad"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := relay.New().Submit(context.Background(), srv.URL, fields)

			var relayErr *domain.RelayError
			require.ErrorAs(t, err, &relayErr)
			assert.Equal(t, tt.status, relayErr.StatusCode)
			assert.Equal(t, tt.want, relayErr.Messages)
		})
	}
}

func TestSubmit_TransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := relay.New().Submit(context.Background(), url, fields)

	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	var relayErr *domain.RelayError
	assert.False(t, errors.As(err, &relayErr))
}

func TestSubmit_InvalidEndpointIsNetworkError(t *testing.T) {
	err := relay.New().Submit(context.Background(), "://not a url", fields)
	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestSubmit_TimeoutOption(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	err := relay.New(relay.WithTimeout(50*time.Millisecond)).Submit(context.Background(), srv.URL, fields)
	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestSubmit_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := relay.New().Submit(ctx, srv.URL, fields)
	require.ErrorIs(t, err, context.Canceled)
}
