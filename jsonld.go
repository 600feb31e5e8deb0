// Package jsonld implements JSON-LD 1.1 context resolution and
// expansion: turning context-dependent documents into their canonical
// expanded form, with remote contexts dereferenced through a pluggable
// document loader.
//
// The entry point is Expand:
//
//	expanded, err := jsonld.Expand(ctx, doc, jsonld.WithBase("http://example.com/"))
//
// Subpackages hold the moving parts: ldcontext resolves contexts,
// expansion rewrites documents, loader fetches remote contexts.
package jsonld

import (
	"context"
	"sync"

	"github.com/c360/jsonld/errors"
	"github.com/c360/jsonld/expansion"
	"github.com/c360/jsonld/keyword"
	"github.com/c360/jsonld/ldcontext"
	"github.com/c360/jsonld/loader"
	"github.com/c360/jsonld/pkg/json"
)

// defaultLoader is the shared loader used when none is configured: an
// HTTP loader behind an LRU document cache.
var defaultLoader = sync.OnceValue(func() loader.Loader {
	cached, err := loader.NewCaching(loader.NewHTTP())
	if err != nil {
		// Construction only fails on an invalid cache size; the
		// default size is valid.
		panic(err)
	}
	return cached
})

// Expand parses document and returns its expanded form. The top level
// of the document must be a JSON object or array.
func Expand(ctx context.Context, document []byte, opts ...Option) (json.Array, error) {
	parsed, err := json.Parse(document)
	if err != nil {
		return nil, errors.Wrap(errors.LoadingDocumentFailed, err, "document is not well-formed JSON")
	}
	switch parsed.(type) {
	case *json.Object, json.Array:
	default:
		return nil, errors.New(errors.LoadingDocumentFailed,
			"the top level of a document must be an object or array")
	}
	return ExpandValue(ctx, parsed, opts...)
}

// ExpandDocument expands an already-loaded document, honoring an
// out-of-band context announced by the loader (an HTTP Link header on a
// plain JSON response).
func ExpandDocument(ctx context.Context, doc *loader.Document, opts ...Option) (json.Array, error) {
	if doc == nil {
		return nil, errors.New(errors.LoadingDocumentFailed, "no document")
	}
	if doc.URL != "" {
		opts = append(opts, WithDocumentURL(doc.URL))
	}
	if doc.ContextURL != "" {
		opts = append(opts, WithExpandContext(json.String(doc.ContextURL)))
	}
	return ExpandValue(ctx, doc.Content, opts...)
}

// ExpandValue expands an already-parsed document.
func ExpandValue(ctx context.Context, element json.Value, opts ...Option) (json.Array, error) {
	o := applyOptions(opts)

	baseIRI := o.base
	if baseIRI == "" {
		baseIRI = o.documentURL
	}
	docLoader := o.loader
	if docLoader == nil {
		docLoader = defaultLoader()
	}
	active := ldcontext.New(baseIRI, o.documentURL, ldcontext.Options{
		Mode:              o.mode,
		Loader:            docLoader,
		MaxRemoteContexts: o.maxRemoteContexts,
	})

	if o.expandContext != nil {
		local := o.expandContext
		if obj, ok := json.AsObject(local); ok && obj.Has(keyword.Context) {
			local = obj.Value(keyword.Context)
		}
		derived, err := ldcontext.Process(ctx, active, local, o.documentURL)
		if err != nil {
			return nil, err
		}
		active = derived
	}

	expanded, err := expansion.Expand(ctx, active, "", element, o.documentURL, expansion.Flags{
		FrameExpansion: o.frameExpansion,
		Ordered:        o.ordered,
		NumericIDs:     o.numericIDs,
	})
	if err != nil {
		return nil, err
	}

	// A single top-level graph wrapper is unwrapped.
	if obj, ok := json.AsObject(expanded); ok && obj.Len() == 1 && obj.Has(keyword.Graph) {
		expanded = obj.Value(keyword.Graph)
	}
	if expanded == nil || json.IsNull(expanded) {
		return json.Array{}, nil
	}
	return json.ToArray(expanded), nil
}
