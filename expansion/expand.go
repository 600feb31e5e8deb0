package expansion

import (
	stdcontext "context"

	"github.com/c360/jsonld/keyword"
	"github.com/c360/jsonld/ldcontext"
	"github.com/c360/jsonld/pkg/json"
)

// Flags tunes a single expansion run.
type Flags struct {
	// FrameExpansion relaxes the grammar for frame documents: value
	// patterns, default objects, and wildcard maps become legal.
	FrameExpansion bool

	// Ordered makes map iteration lexicographic everywhere the
	// algorithm leaves the order free, for deterministic output.
	Ordered bool

	// NumericIDs accepts JSON numbers as @id values, expanding their
	// lexical form. Off by default; this is an extension for data
	// sources that emit numeric identifiers.
	NumericIDs bool
}

// Expand expands element against the active context. activeProperty is
// the term the element appeared under, or "" at the document root. The
// result is nil (dropped), a value object, a node object, or an array.
func Expand(ctx stdcontext.Context, active *ldcontext.ActiveContext, activeProperty string, element json.Value, baseURL string, flags Flags) (json.Value, error) {
	return expandElement(ctx, active, activeProperty, element, baseURL, flags, false)
}

// expandElement dispatches on the element kind. fromMap is set when the
// element was a value inside an index or language map, which suppresses
// the previous-context reversion.
func expandElement(ctx stdcontext.Context, active *ldcontext.ActiveContext, activeProperty string, element json.Value, baseURL string, flags Flags, fromMap bool) (json.Value, error) {
	if element == nil || json.IsNull(element) {
		return nil, nil
	}
	// Values of @default are expanded with the normal grammar even
	// inside a frame.
	if activeProperty == keyword.Default {
		flags.FrameExpansion = false
	}

	def := active.Term(activeProperty)

	if json.IsScalar(element) {
		// Free-floating scalars are dropped.
		if activeProperty == "" || activeProperty == keyword.Graph {
			return nil, nil
		}
		if def.HasContext() {
			derived, err := ldcontext.ProcessWith(ctx, active, def.Context, def.BaseURL,
				ldcontext.ProcessFlags{OverrideProtected: true, Propagate: true})
			if err != nil {
				return nil, err
			}
			active = derived
		}
		return expandValue(active, activeProperty, element, flags)
	}

	if arr, ok := json.AsArray(element); ok {
		return expandArray(ctx, active, activeProperty, arr, baseURL, flags, fromMap)
	}

	obj, _ := json.AsObject(element)
	return expandObject(ctx, active, activeProperty, obj, baseURL, flags, fromMap)
}

func expandArray(ctx stdcontext.Context, active *ldcontext.ActiveContext, activeProperty string, element json.Array, baseURL string, flags Flags, fromMap bool) (json.Value, error) {
	def := active.Term(activeProperty)
	result := json.Array{}
	for _, item := range element {
		expanded, err := expandElement(ctx, active, activeProperty, item, baseURL, flags, fromMap)
		if err != nil {
			return nil, err
		}
		// A list of lists is only expressible through an explicit
		// @list container; nested arrays under one become list
		// objects themselves.
		if def.HasContainer(keyword.List) {
			if arr, ok := json.AsArray(expanded); ok {
				wrapped := json.NewObject()
				wrapped.Set(keyword.List, arr)
				expanded = wrapped
			}
		}
		switch t := expanded.(type) {
		case nil:
		case json.Array:
			result = append(result, t...)
		default:
			result = append(result, t)
		}
	}
	return result, nil
}
