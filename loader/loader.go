package loader

import (
	"context"
	"sync"

	"github.com/c360/jsonld/errors"
	"github.com/c360/jsonld/pkg/json"
)

// Document is a dereferenced remote document.
type Document struct {
	// URL is the final document URL after redirects; relative references
	// inside the document resolve against it.
	URL string

	// ContextURL is the URL of an out-of-band context announced via an
	// HTTP Link header on a plain-JSON response. Empty for JSON-LD
	// responses.
	ContextURL string

	// Content is the parsed document body.
	Content json.Value
}

// Loader dereferences a URL to a document. Implementations must be safe
// for concurrent use.
type Loader interface {
	Load(ctx context.Context, url string) (*Document, error)
}

// Static serves documents from memory. It is the loader used in tests
// and for embedding well-known contexts.
type Static struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewStatic creates an empty static loader.
func NewStatic() *Static {
	return &Static{docs: make(map[string]*Document)}
}

// Add registers content under url.
func (s *Static) Add(url string, content json.Value) {
	s.mu.Lock()
	s.docs[url] = &Document{URL: url, Content: content}
	s.mu.Unlock()
}

// AddDocument registers a fully populated document under url.
func (s *Static) AddDocument(url string, doc *Document) {
	s.mu.Lock()
	s.docs[url] = doc
	s.mu.Unlock()
}

// Load implements Loader.
func (s *Static) Load(_ context.Context, url string) (*Document, error) {
	s.mu.RLock()
	doc, ok := s.docs[url]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.Newf(errors.LoadingDocumentFailed, "no document registered for %q", url)
	}
	return doc, nil
}
