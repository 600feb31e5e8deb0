package ldcontext

import (
	"slices"

	"github.com/c360/jsonld/pkg/json"
)

// TermDefinition is the resolved meaning of one context term. A
// definition with an empty IRI maps the term to nothing: the term is
// known but produces no output, which shadows any vocabulary mapping.
type TermDefinition struct {
	// IRI is the IRI mapping: an IRI, a blank node identifier, a
	// keyword, or "" for a term explicitly mapped to null.
	IRI string

	// Prefix marks the term as usable in compact IRIs.
	Prefix bool

	// Protected definitions may not be overridden except by a
	// property-scoped context.
	Protected bool

	// Reverse marks a reverse property.
	Reverse bool

	// TypeMapping coerces values, when non-empty: an IRI or one of
	// @id, @vocab, @json, @none.
	TypeMapping string

	// Language is meaningful only when LanguageSet is true; the pair
	// (true, "") records an explicit null that suppresses the default
	// language.
	Language    string
	LanguageSet bool

	// Direction mirrors the Language/LanguageSet convention.
	Direction    Direction
	DirectionSet bool

	// Containers is the sorted container mapping, e.g. ["@index",
	// "@set"]. Empty means no container mapping.
	Containers []string

	// Index is the property-based index for @container: @index terms.
	Index string

	// Nest is the nest target, either "@nest" or a term aliasing it.
	Nest string

	// Context is the raw property-scoped context, nil when absent.
	// A scoped "@context": null is kept as json.Null.
	Context json.Value

	// BaseURL records where the defining context was retrieved from,
	// for resolving relative references inside the scoped context.
	BaseURL string
}

// HasContainer reports whether the container mapping includes kw.
func (d *TermDefinition) HasContainer(kw string) bool {
	return d != nil && slices.Contains(d.Containers, kw)
}

// HasContext reports whether the term carries a scoped context,
// including an explicit null one.
func (d *TermDefinition) HasContext() bool {
	return d != nil && d.Context != nil
}

// sameAs compares two definitions ignoring the Protected flag. Used to
// decide whether redefining a protected term actually changes anything.
func (d *TermDefinition) sameAs(o *TermDefinition) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.IRI == o.IRI &&
		d.Prefix == o.Prefix &&
		d.Reverse == o.Reverse &&
		d.TypeMapping == o.TypeMapping &&
		d.Language == o.Language &&
		d.LanguageSet == o.LanguageSet &&
		d.Direction == o.Direction &&
		d.DirectionSet == o.DirectionSet &&
		slices.Equal(d.Containers, o.Containers) &&
		d.Index == o.Index &&
		d.Nest == o.Nest &&
		d.BaseURL == o.BaseURL &&
		sameContext(d.Context, o.Context)
}

func sameContext(a, b json.Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return json.Equal(a, b)
}
