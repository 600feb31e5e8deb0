package loader

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/c360/jsonld/errors"
	"github.com/c360/jsonld/pkg/json"
	"github.com/c360/jsonld/pkg/retry"
)

const (
	mediaTypeJSONLD = "application/ld+json"
	mediaTypeJSON   = "application/json"

	// linkRelContext is the link relation announcing an out-of-band
	// context for a plain-JSON response.
	linkRelContext = "http://www.w3.org/ns/json-ld#context"

	acceptHeader = mediaTypeJSONLD + ", " + mediaTypeJSON + ";q=0.9, */*;q=0.1"
)

// HTTP dereferences documents over HTTP(S) with JSON-LD content
// negotiation.
type HTTP struct {
	client *http.Client
}

// HTTPOption configures the HTTP loader.
type HTTPOption func(*HTTP)

// WithHTTPClient substitutes the underlying client, e.g. to set timeouts
// or a transport.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(l *HTTP) {
		if client != nil {
			l.client = client
		}
	}
}

// NewHTTP creates an HTTP loader using http.DefaultClient unless
// overridden.
func NewHTTP(opts ...HTTPOption) *HTTP {
	l := &HTTP{client: http.DefaultClient}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load implements Loader.
func (l *HTTP) Load(ctx context.Context, rawURL string) (*Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return nil, errors.Newf(errors.LoadingDocumentFailed, "URL %q is not absolute", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Newf(errors.LoadingDocumentFailed, "unsupported URL scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.LoadingDocumentFailed, err, rawURL)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.LoadingDocumentFailed, err, rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf(errors.LoadingDocumentFailed, "%s: unexpected status %d", rawURL, resp.StatusCode)
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, errors.Wrap(errors.LoadingDocumentFailed, err, rawURL)
	}
	if !acceptsMediaType(mediaType) {
		// Refetching cannot change the media type; don't retry.
		return nil, retry.NonRetryable(
			errors.Newf(errors.LoadingDocumentFailed, "%s: unsupported media type %q", rawURL, mediaType))
	}

	doc := &Document{URL: rawURL}
	if resp.Request != nil && resp.Request.URL != nil {
		doc.URL = resp.Request.URL.String()
	}

	// A context link header only applies to plain JSON responses; a
	// JSON-LD response carries its context inline.
	if mediaType != mediaTypeJSONLD {
		contextURLs := contextLinks(resp.Header.Values("Link"))
		switch {
		case len(contextURLs) > 1:
			return nil, retry.NonRetryable(
				errors.Newf(errors.LoadingDocumentFailed, "%s: multiple context link headers", rawURL))
		case len(contextURLs) == 1:
			ref, err := url.Parse(contextURLs[0])
			if err != nil {
				return nil, errors.Wrap(errors.LoadingDocumentFailed, err, rawURL)
			}
			base, _ := url.Parse(doc.URL)
			doc.ContextURL = base.ResolveReference(ref).String()
		}
	}

	content, err := json.ParseReader(resp.Body)
	if err != nil {
		// Malformed content is a permanent failure.
		return nil, retry.NonRetryable(errors.Wrap(errors.LoadingDocumentFailed, err, rawURL))
	}
	doc.Content = content
	return doc, nil
}

func acceptsMediaType(mediaType string) bool {
	return mediaType == mediaTypeJSONLD ||
		mediaType == mediaTypeJSON ||
		strings.HasSuffix(mediaType, "+json")
}

// contextLinks extracts the targets of Link header entries whose rel is
// the JSON-LD context relation.
func contextLinks(headers []string) []string {
	var targets []string
	for _, header := range headers {
		for _, entry := range strings.Split(header, ",") {
			parts := strings.Split(entry, ";")
			if len(parts) < 2 {
				continue
			}
			target := strings.TrimSpace(parts[0])
			if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
				continue
			}
			for _, param := range parts[1:] {
				key, value, found := strings.Cut(strings.TrimSpace(param), "=")
				if !found || strings.TrimSpace(key) != "rel" {
					continue
				}
				rel := strings.Trim(strings.TrimSpace(value), `"`)
				if rel == linkRelContext {
					targets = append(targets, strings.Trim(target, "<>"))
				}
			}
		}
	}
	return targets
}
