package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoRequestDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"bitcoin"}`))
	}))
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
	}
	c := NewClient(srv.URL)
	require.NoError(t, c.DoRequest(context.Background(), http.MethodGet, "/x", nil, &out))
	assert.Equal(t, "bitcoin", out.Name)
}

func TestDoRequestNon2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.DoRequest(context.Background(), http.MethodGet, "/missing", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 404")
}

func TestDoRequestFormWinsOverJSON(t *testing.T) {
	var contentType string
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	opt := &RequestOptions{
		Form: map[string]string{"type": "bitcoin"},
		JSON: map[string]string{"ignored": "yes"},
	}
	require.NoError(t, c.DoRequest(context.Background(), http.MethodPost, "/x", opt, nil))

	assert.Equal(t, "application/x-www-form-urlencoded", contentType)
	assert.Equal(t, "type=bitcoin", body)
}

func TestDoRequestRejectsUnknownMethod(t *testing.T) {
	c := NewClient("http://localhost:0")
	err := c.DoRequest(context.Background(), "DELETE", "/x", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported method")
}

func TestDoRequestIssuesExactlyOneAttempt(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "oops", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.Error(t, c.DoRequest(context.Background(), http.MethodGet, "/x", nil, nil))
	assert.Equal(t, 1, attempts, "failures must not be retried")
}
