package expansion

import (
	stdcontext "context"
	"sort"

	"github.com/c360/jsonld/errors"
	"github.com/c360/jsonld/keyword"
	"github.com/c360/jsonld/ldcontext"
	"github.com/c360/jsonld/pkg/json"
	"github.com/c360/jsonld/pkg/uri"
)

// expandObject expands one JSON object: it settles which context the
// object is read against (reversion, property-scoped, embedded,
// type-scoped, in that order), runs the key pass, and normalizes the
// result.
func expandObject(ctx stdcontext.Context, active *ldcontext.ActiveContext, activeProperty string, element *json.Object, baseURL string, flags Flags, fromMap bool) (json.Value, error) {
	propertyDef := active.Term(activeProperty)

	// Outside a non-propagating scope the parent context is restored,
	// unless the object is a value object or a bare identifier, which
	// still belong to the scope that produced them.
	if active.Previous() != nil && !fromMap {
		revert := true
		for _, key := range element.SortedKeys() {
			expandedKey := active.ExpandIRI(key, true, false)
			if expandedKey == keyword.Value || (expandedKey == keyword.ID && element.Len() == 1) {
				revert = false
				break
			}
		}
		if revert {
			active = active.Previous()
		}
	}

	if propertyDef.HasContext() {
		derived, err := ldcontext.ProcessWith(ctx, active, propertyDef.Context, propertyDef.BaseURL,
			ldcontext.ProcessFlags{OverrideProtected: true, Propagate: true})
		if err != nil {
			return nil, err
		}
		active = derived
	}

	if local, has := element.Get(keyword.Context); has {
		derived, err := ldcontext.Process(ctx, active, local, baseURL)
		if err != nil {
			return nil, err
		}
		active = derived
	}

	// Type-scoped contexts apply in lexicographic term order so the
	// outcome does not depend on document key order. typeContext is
	// kept for expanding the values of @type entries themselves.
	typeContext := active
	typeKey := ""
	for _, key := range element.SortedKeys() {
		if active.ExpandIRI(key, true, false) != keyword.Type {
			continue
		}
		if typeKey == "" {
			typeKey = key
		}
		for _, term := range sortedStrings(element.Value(key)) {
			scoped := typeContext.Term(term)
			if !scoped.HasContext() {
				continue
			}
			derived, err := ldcontext.ProcessWith(ctx, active, scoped.Context, scoped.BaseURL,
				ldcontext.ProcessFlags{Propagate: false})
			if err != nil {
				return nil, err
			}
			active = derived
		}
	}

	inputType := ""
	if typeKey != "" {
		if last := lastTypeValue(element.Value(typeKey)); last != "" {
			inputType = active.ExpandIRI(last, true, false)
		}
	}

	result := json.NewObject()
	if err := expandKeys(ctx, active, typeContext, element, activeProperty, baseURL, inputType, result, flags); err != nil {
		return nil, err
	}
	return normalize(result, activeProperty, flags)
}

// sortedStrings collects the string members of v in lexicographic
// order.
func sortedStrings(v json.Value) []string {
	var out []string
	for _, item := range json.ToArray(v) {
		if s, ok := json.AsString(item); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// lastTypeValue picks the input type candidate: the lexicographically
// last string of an array-valued @type, or the sole string value.
func lastTypeValue(v json.Value) string {
	if s, ok := json.AsString(v); ok {
		return s
	}
	values := sortedStrings(v)
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

// normalize applies the final shape rules to an expanded object: value
// object validation, @type coercion to array, list and set unwrapping,
// and dropping of degenerate objects.
func normalize(result *json.Object, activeProperty string, flags Flags) (json.Value, error) {
	if result.Has(keyword.Value) {
		return normalizeValueObject(result, activeProperty, flags)
	}
	if tv, has := result.Get(keyword.Type); has {
		if _, isArr := json.AsArray(tv); !isArr && !json.IsNull(tv) {
			result.Set(keyword.Type, json.Array{tv})
		}
		return normalizeTail(result, activeProperty, flags)
	}
	if result.Has(keyword.List) || result.Has(keyword.Set) {
		return normalizeContainerObject(result, activeProperty, flags)
	}
	return normalizeTail(result, activeProperty, flags)
}

// valueEntries is the closed set of keys a value object may carry.
var valueEntries = map[string]struct{}{
	keyword.Direction: {}, keyword.Index: {}, keyword.Language: {},
	keyword.Type: {}, keyword.Value: {},
}

func normalizeValueObject(result *json.Object, activeProperty string, flags Flags) (json.Value, error) {
	for _, key := range result.Keys() {
		if _, ok := valueEntries[key]; !ok {
			return nil, errors.Newf(errors.InvalidValueObject,
				"value object has unexpected entry %q", key)
		}
	}
	if (result.Has(keyword.Language) || result.Has(keyword.Direction)) && result.Has(keyword.Type) {
		return nil, errors.New(errors.InvalidValueObject,
			"@language and @direction cannot be combined with @type")
	}

	typeValue := result.Value(keyword.Type)
	if !json.Contains(typeValue, keyword.JSON) {
		value := result.Value(keyword.Value)
		if value == nil || json.IsNull(value) || emptyArray(value) {
			return nil, nil
		}
		if !json.IsString(value) && result.Has(keyword.Language) && !flags.FrameExpansion {
			return nil, errors.New(errors.InvalidLanguageTaggedValue,
				"only strings can carry @language")
		}
		if typeValue != nil && !flags.FrameExpansion && !validTypeIRI(typeValue) {
			return nil, errors.New(errors.InvalidTypedValue, "@type of a value object must be an IRI")
		}
	}
	return normalizeTail(result, activeProperty, flags)
}

func emptyArray(v json.Value) bool {
	arr, ok := json.AsArray(v)
	return ok && len(arr) == 0
}

func validTypeIRI(v json.Value) bool {
	s, ok := json.AsString(v)
	if !ok {
		return false
	}
	return uri.IsAbsolute(s) || uri.IsBlankNode(s)
}

func normalizeContainerObject(result *json.Object, activeProperty string, flags Flags) (json.Value, error) {
	// A list or set object tolerates exactly one companion entry,
	// @index.
	if result.Len() > 2 || (result.Len() == 2 && !result.Has(keyword.Index)) {
		return nil, errors.New(errors.InvalidSetOrListObject,
			"@set and @list allow only an @index companion entry")
	}
	if set, has := result.Get(keyword.Set); has {
		inner, ok := json.AsObject(set)
		if !ok {
			// Sets are transparent; the content replaces the object.
			return set, nil
		}
		return normalizeTail(inner, activeProperty, flags)
	}
	return normalizeTail(result, activeProperty, flags)
}

func normalizeTail(result *json.Object, activeProperty string, flags Flags) (json.Value, error) {
	if result.Len() == 1 && result.Has(keyword.Language) {
		return nil, nil
	}
	if activeProperty == "" || activeProperty == keyword.Graph {
		switch {
		case result.Len() == 0 && !flags.FrameExpansion:
			return nil, nil
		case result.Has(keyword.Value) || result.Has(keyword.List):
			// Free-floating values and lists are dropped.
			return nil, nil
		case result.Len() == 1 && result.Has(keyword.ID) && !flags.FrameExpansion:
			return nil, nil
		}
	}
	return result, nil
}
