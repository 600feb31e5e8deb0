package ldcontext

import (
	stdcontext "context"
	"strings"

	"github.com/c360/jsonld/keyword"
	"github.com/c360/jsonld/pkg/json"
	"github.com/c360/jsonld/pkg/uri"
)

// ExpandIRI expands value against the context. With vocab set, term
// definitions and the vocabulary mapping apply; with documentRelative
// set, relative references resolve against the base IRI. A value that
// cannot be expanded to an IRI, blank node identifier, or keyword comes
// back as "", which callers treat as null.
func (c *ActiveContext) ExpandIRI(value string, vocab, documentRelative bool) string {
	// Without an in-flight local context no term creation can happen,
	// so no error path is reachable.
	expanded, _ := c.expandIRI(stdcontext.Background(), value, vocab, documentRelative, nil, nil, defParams{})
	return expanded
}

// expandIRI is the full IRI Expansion algorithm. During term definition
// creation, local and defined allow dependent terms to be defined on
// first use; both are nil otherwise.
func (c *ActiveContext) expandIRI(ctx stdcontext.Context, value string, vocab, documentRelative bool, local *json.Object, defined map[string]bool, p defParams) (string, error) {
	if value == "" {
		return "", nil
	}
	if keyword.IsKeyword(value) {
		return value, nil
	}
	// Keyword-shaped values are reserved for future revisions and
	// expand to null.
	if keyword.HasForm(value) {
		return "", nil
	}

	if local != nil && local.Has(value) && !defined[value] {
		if err := createTermDefinition(ctx, c, local, value, defined, p); err != nil {
			return "", err
		}
	}

	if def := c.Term(value); def != nil {
		if keyword.IsKeyword(def.IRI) {
			return def.IRI, nil
		}
		if vocab {
			return def.IRI, nil
		}
	}

	if i := strings.Index(value, ":"); i > 0 {
		prefix, suffix := value[:i], value[i+1:]
		// "_:" is a blank node, "//" marks an authority part; neither
		// is a compact IRI.
		if prefix != "_" && !strings.HasPrefix(suffix, "//") {
			if local != nil && local.Has(prefix) && !defined[prefix] {
				if err := createTermDefinition(ctx, c, local, prefix, defined, p); err != nil {
					return "", err
				}
			}
			if def := c.Term(prefix); def != nil && def.IRI != "" && def.Prefix {
				return def.IRI + suffix, nil
			}
		}
		if uri.IsAbsolute(value) {
			return value, nil
		}
	}
	if uri.IsBlankNode(value) {
		return value, nil
	}

	if vocab && c.vocabSet {
		return c.vocab + value, nil
	}
	if documentRelative {
		return uri.Resolve(c.baseIRI, value), nil
	}
	return "", nil
}
