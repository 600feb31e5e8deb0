package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/jsonld/errors"
	"github.com/c360/jsonld/pkg/json"
	"github.com/c360/jsonld/pkg/retry"
)

func mustParse(t *testing.T, src string) json.Value {
	t.Helper()
	v, err := json.Parse([]byte(src))
	require.NoError(t, err)
	return v
}

func TestStaticLoader(t *testing.T) {
	s := NewStatic()
	s.Add("http://example.com/ctx", mustParse(t, `{"@context":{}}`))

	doc, err := s.Load(context.Background(), "http://example.com/ctx")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/ctx", doc.URL)

	_, err = s.Load(context.Background(), "http://example.com/other")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.LoadingDocumentFailed))
}

func TestHTTPLoaderServesJSONLD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept"), "application/ld+json")
		w.Header().Set("Content-Type", "application/ld+json")
		_, _ = w.Write([]byte(`{"@context":{"name":"http://schema.org/name"}}`))
	}))
	defer srv.Close()

	doc, err := NewHTTP().Load(context.Background(), srv.URL+"/ctx")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/ctx", doc.URL)
	assert.Empty(t, doc.ContextURL)

	obj, ok := json.AsObject(doc.Content)
	require.True(t, ok)
	assert.True(t, obj.Has("@context"))
}

func TestHTTPLoaderContextLinkHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Add("Link", `</context.jsonld>; rel="http://www.w3.org/ns/json-ld#context"`)
		_, _ = w.Write([]byte(`{"name":"Anna"}`))
	}))
	defer srv.Close()

	doc, err := NewHTTP().Load(context.Background(), srv.URL+"/doc")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/context.jsonld", doc.ContextURL)
}

func TestHTTPLoaderMultipleContextLinksFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Add("Link", `</a.jsonld>; rel="http://www.w3.org/ns/json-ld#context"`)
		w.Header().Add("Link", `</b.jsonld>; rel="http://www.w3.org/ns/json-ld#context"`)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewHTTP().Load(context.Background(), srv.URL+"/doc")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.LoadingDocumentFailed))
}

func TestHTTPLoaderRejections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		case "/garbage":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{"))
		}
	}))
	defer srv.Close()

	l := NewHTTP()
	tests := []struct {
		name string
		url  string
	}{
		{name: "404", url: srv.URL + "/missing"},
		{name: "wrong media type", url: srv.URL + "/html"},
		{name: "malformed body", url: srv.URL + "/garbage"},
		{name: "relative URL", url: "no-scheme/doc"},
		{name: "unsupported scheme", url: "ftp://example.com/doc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Load(context.Background(), tt.url)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.LoadingDocumentFailed))
		})
	}
}

func TestCachingLoaderMemoizes(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/ld+json")
		_, _ = w.Write([]byte(`{"@context":{}}`))
	}))
	defer srv.Close()

	l, err := NewCaching(NewHTTP(), WithCacheSize(4))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := l.Load(context.Background(), srv.URL+"/ctx")
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, calls.Load())
	assert.EqualValues(t, 2, l.Stats().Hits())
}

func TestCachingLoaderDoesNotCacheFailures(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/ld+json")
		_, _ = w.Write([]byte(`{"@context":{}}`))
	}))
	defer srv.Close()

	l, err := NewCaching(NewHTTP())
	require.NoError(t, err)

	_, err = l.Load(context.Background(), srv.URL+"/ctx")
	require.Error(t, err)

	_, err = l.Load(context.Background(), srv.URL+"/ctx")
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestRetryingLoaderStopsOnGrammarFailure(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{name: "malformed body", contentType: "application/ld+json", body: `{not json`},
		{name: "wrong media type", contentType: "text/html", body: "<html></html>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int64
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Header().Set("Content-Type", tt.contentType)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			l := NewRetryingWithConfig(NewHTTP(), retry.Config{
				MaxAttempts:  3,
				InitialDelay: time.Millisecond,
				MaxDelay:     2 * time.Millisecond,
				Multiplier:   2.0,
			})

			// Refetching cannot fix broken content, so one attempt only.
			_, err := l.Load(context.Background(), srv.URL+"/ctx")
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.LoadingDocumentFailed))
			assert.EqualValues(t, 1, calls.Load())
		})
	}
}

func TestRetryingLoaderRecovers(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "not yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/ld+json")
		_, _ = w.Write([]byte(`{"@context":{}}`))
	}))
	defer srv.Close()

	l := NewRetryingWithConfig(NewHTTP(), retry.Config{
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2.0,
	})

	_, err := l.Load(context.Background(), srv.URL+"/ctx")
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
}
