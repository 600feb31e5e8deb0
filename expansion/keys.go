package expansion

import (
	stdcontext "context"
	"sort"
	"strings"

	"github.com/c360/jsonld/errors"
	"github.com/c360/jsonld/keyword"
	"github.com/c360/jsonld/ldcontext"
	"github.com/c360/jsonld/pkg/json"
)

// expandKeys runs the key pass over element, accumulating expanded
// entries into result. @nest values recurse through the same pass, so
// nested keys land on the same result object.
func expandKeys(ctx stdcontext.Context, active, typeContext *ldcontext.ActiveContext, element *json.Object, activeProperty, baseURL, inputType string, result *json.Object, flags Flags) error {
	var nests []string

	for _, key := range element.OrderedKeys(flags.Ordered) {
		if key == keyword.Context {
			continue
		}
		expandedProperty := active.ExpandIRI(key, true, false)
		// Keys that expand to neither a keyword nor an IRI-shaped
		// value are dropped.
		if expandedProperty == "" ||
			(!strings.Contains(expandedProperty, ":") && !keyword.IsKeyword(expandedProperty)) {
			continue
		}
		value := element.Value(key)

		if keyword.IsKeyword(expandedProperty) {
			if expandedProperty == keyword.Nest {
				nests = append(nests, key)
				continue
			}
			if err := expandKeywordEntry(ctx, active, typeContext, expandedProperty, value, activeProperty, baseURL, inputType, result, flags); err != nil {
				return err
			}
			continue
		}

		if err := expandPropertyEntry(ctx, active, key, expandedProperty, value, baseURL, result, flags); err != nil {
			return err
		}
	}

	sort.Strings(nests)
	for _, nestKey := range nests {
		for _, nested := range json.ToArray(element.Value(nestKey)) {
			nestedObj, ok := json.AsObject(nested)
			if !ok {
				return errors.New(errors.InvalidNestValue, "@nest values must be objects")
			}
			for _, k := range nestedObj.Keys() {
				if active.ExpandIRI(k, true, false) == keyword.Value {
					return errors.New(errors.InvalidNestValue, "nested objects cannot be value objects")
				}
			}
			if err := expandKeys(ctx, active, typeContext, nestedObj, activeProperty, baseURL, inputType, result, flags); err != nil {
				return err
			}
		}
	}
	return nil
}

// expandKeywordEntry handles one entry whose key expands to a keyword.
func expandKeywordEntry(ctx stdcontext.Context, active, typeContext *ldcontext.ActiveContext, expandedProperty string, value json.Value, activeProperty, baseURL, inputType string, result *json.Object, flags Flags) error {
	if activeProperty == keyword.Reverse {
		return errors.Newf(errors.InvalidReversePropertyMap,
			"%s cannot appear inside @reverse", expandedProperty)
	}
	if result.Has(expandedProperty) &&
		expandedProperty != keyword.Included && expandedProperty != keyword.Type {
		return errors.Newf(errors.CollidingKeywords,
			"two entries expand to %s", expandedProperty)
	}

	var expanded json.Value
	switch expandedProperty {
	case keyword.ID:
		v, err := expandIDEntry(active, value, flags)
		if err != nil {
			return err
		}
		expanded = v

	case keyword.Type:
		v, err := expandTypeEntry(typeContext, value, flags)
		if err != nil {
			return err
		}
		if existing, has := result.Get(keyword.Type); has {
			expanded = append(json.ToArray(existing), json.ToArray(v)...)
		} else {
			expanded = v
		}

	case keyword.Graph:
		v, err := expandElement(ctx, active, keyword.Graph, value, baseURL, flags, false)
		if err != nil {
			return err
		}
		expanded = json.ToArray(v)

	case keyword.Included:
		if active.Mode() == ldcontext.Mode10 {
			return nil
		}
		v, err := expandElement(ctx, active, "", value, baseURL, flags, false)
		if err != nil {
			return err
		}
		included := json.ToArray(v)
		for _, item := range included {
			if !isNodeObject(item) {
				return errors.New(errors.InvalidIncludedValue,
					"@included values must be node objects")
			}
		}
		if existing, has := result.Get(keyword.Included); has {
			included = append(json.ToArray(existing), included...)
		}
		expanded = included

	case keyword.Value:
		v, err := expandValueEntry(value, inputType, active.Mode(), flags)
		if err != nil {
			return err
		}
		expanded = v

	case keyword.Language:
		if _, ok := json.AsString(value); !ok && !frameStrings(value, flags) {
			return errors.New(errors.InvalidLanguageTaggedString, "@language must be a string")
		}
		expanded = value

	case keyword.Direction:
		if active.Mode() == ldcontext.Mode10 {
			return nil
		}
		if !validDirectionValue(value, flags) {
			return errors.New(errors.InvalidBaseDirection, `@direction must be "ltr" or "rtl"`)
		}
		expanded = value

	case keyword.Index:
		if _, ok := json.AsString(value); !ok {
			return errors.New(errors.InvalidIndexValue, "@index must be a string")
		}
		expanded = value

	case keyword.List:
		if activeProperty == "" || activeProperty == keyword.Graph {
			// Free-floating lists are dropped.
			return nil
		}
		v, err := expandElement(ctx, active, activeProperty, value, baseURL, flags, false)
		if err != nil {
			return err
		}
		expanded = json.ToArray(v)

	case keyword.Set:
		v, err := expandElement(ctx, active, activeProperty, value, baseURL, flags, false)
		if err != nil {
			return err
		}
		expanded = v

	case keyword.Reverse:
		return expandReverseEntry(ctx, active, value, baseURL, result, flags)

	case keyword.Default, keyword.Embed, keyword.Explicit, keyword.OmitDefault, keyword.RequireAll:
		if !flags.FrameExpansion {
			return nil
		}
		v, err := expandElement(ctx, active, expandedProperty, value, baseURL, flags, false)
		if err != nil {
			return err
		}
		expanded = v

	default:
		return nil
	}

	if expanded != nil || (expandedProperty == keyword.Value && inputType == keyword.JSON) {
		result.Set(expandedProperty, expanded)
	}
	return nil
}

func expandIDEntry(active *ldcontext.ActiveContext, value json.Value, flags Flags) (json.Value, error) {
	switch v := value.(type) {
	case json.String:
		return json.String(active.ExpandIRI(string(v), false, true)), nil
	case json.Number:
		if flags.NumericIDs {
			return json.String(active.ExpandIRI(v.String(), false, true)), nil
		}
	case *json.Object:
		// A frame may use an empty map as a wildcard.
		if flags.FrameExpansion && v.Len() == 0 {
			return json.Array{v}, nil
		}
	case json.Array:
		if flags.FrameExpansion {
			out := json.Array{}
			for _, item := range v {
				s, ok := json.AsString(item)
				if !ok {
					return nil, errors.New(errors.InvalidIDValue, "@id frame entries must be strings")
				}
				out = append(out, json.String(active.ExpandIRI(s, false, true)))
			}
			return out, nil
		}
	}
	return nil, errors.New(errors.InvalidIDValue, "@id must be a string")
}

func expandTypeEntry(typeContext *ldcontext.ActiveContext, value json.Value, flags Flags) (json.Value, error) {
	switch v := value.(type) {
	case json.String:
		return json.String(typeContext.ExpandIRI(string(v), true, true)), nil
	case json.Array:
		out := json.Array{}
		for _, item := range v {
			s, ok := json.AsString(item)
			if !ok {
				return nil, errors.New(errors.InvalidTypeValue, "@type entries must be strings")
			}
			out = append(out, json.String(typeContext.ExpandIRI(s, true, true)))
		}
		return out, nil
	case *json.Object:
		if flags.FrameExpansion && (v.Len() == 0 || v.Has(keyword.Default)) {
			return v, nil
		}
	}
	return nil, errors.New(errors.InvalidTypeValue, "@type must be a string or array of strings")
}

func expandValueEntry(value json.Value, inputType string, mode ldcontext.Mode, flags Flags) (json.Value, error) {
	if inputType == keyword.JSON && mode != ldcontext.Mode10 {
		// JSON literals take any value verbatim.
		return value, nil
	}
	switch v := value.(type) {
	case json.Null:
		return v, nil
	case json.Bool, json.Number, json.String:
		return v, nil
	case json.Array:
		if flags.FrameExpansion && allScalars(v) {
			return v, nil
		}
	case *json.Object:
		if flags.FrameExpansion && v.Len() == 0 {
			return v, nil
		}
	}
	return nil, errors.New(errors.InvalidValueObjectValue, "@value must be a scalar or null")
}

func allScalars(arr json.Array) bool {
	for _, item := range arr {
		if !json.IsScalar(item) {
			return false
		}
	}
	return true
}

func frameStrings(value json.Value, flags Flags) bool {
	if !flags.FrameExpansion {
		return false
	}
	arr, ok := json.AsArray(value)
	if !ok {
		return false
	}
	for _, item := range arr {
		if !json.IsString(item) {
			return false
		}
	}
	return true
}

func validDirectionValue(value json.Value, flags Flags) bool {
	if s, ok := json.AsString(value); ok {
		return s == string(ldcontext.DirectionLTR) || s == string(ldcontext.DirectionRTL)
	}
	if flags.FrameExpansion {
		if arr, ok := json.AsArray(value); ok {
			for _, item := range arr {
				if !validDirectionValue(item, flags) {
					return false
				}
			}
			return true
		}
	}
	return false
}

// expandReverseEntry expands an @reverse map, distributing forward
// entries it contains onto result and reverse entries onto result's
// @reverse map.
func expandReverseEntry(ctx stdcontext.Context, active *ldcontext.ActiveContext, value json.Value, baseURL string, result *json.Object, flags Flags) error {
	if _, ok := json.AsObject(value); !ok {
		return errors.New(errors.InvalidReverseValue, "@reverse must be an object")
	}
	expanded, err := expandElement(ctx, active, keyword.Reverse, value, baseURL, flags, false)
	if err != nil {
		return err
	}
	obj, ok := json.AsObject(expanded)
	if !ok {
		return nil
	}

	// Double reversal: entries under the inner @reverse are forward
	// properties of this node.
	if inner, has := obj.Get(keyword.Reverse); has {
		innerObj, _ := json.AsObject(inner)
		for _, property := range innerObj.Keys() {
			appendToEntry(result, property, json.ToArray(innerObj.Value(property))...)
		}
	}

	for _, property := range obj.Keys() {
		if property == keyword.Reverse {
			continue
		}
		reverseMap := entryObject(result, keyword.Reverse)
		for _, item := range json.ToArray(obj.Value(property)) {
			if isValueObject(item) || isListObject(item) {
				return errors.New(errors.InvalidReversePropertyValue,
					"reverse properties cannot point at values or lists")
			}
			appendToEntry(reverseMap, property, item)
		}
	}
	return nil
}

// expandPropertyEntry handles one entry whose key expands to an IRI.
func expandPropertyEntry(ctx stdcontext.Context, active *ldcontext.ActiveContext, key, expandedProperty string, value json.Value, baseURL string, result *json.Object, flags Flags) error {
	def := active.Term(key)

	var expanded json.Value
	var err error
	valueObj, isObj := json.AsObject(value)
	switch {
	case def != nil && def.TypeMapping == keyword.JSON:
		literal := json.NewObject()
		literal.Set(keyword.Value, value)
		literal.Set(keyword.Type, json.String(keyword.JSON))
		expanded = literal
	case def.HasContainer(keyword.Language) && isObj:
		expanded, err = expandLanguageMap(active, def, valueObj, flags)
	case isObj && (def.HasContainer(keyword.Index) || def.HasContainer(keyword.Type) || def.HasContainer(keyword.ID)):
		expanded, err = expandIndexMap(ctx, active, key, valueObj, baseURL, flags)
	default:
		expanded, err = expandElement(ctx, active, key, value, baseURL, flags, false)
	}
	if err != nil {
		return err
	}
	if expanded == nil {
		return nil
	}

	if def.HasContainer(keyword.List) && !isListObject(expanded) {
		wrapped := json.NewObject()
		wrapped.Set(keyword.List, json.ToArray(expanded))
		expanded = wrapped
	}

	// A bare @graph container wraps each item in its own named-graph
	// shell; combined with @id or @index the wrapping happened per map
	// entry already.
	if def.HasContainer(keyword.Graph) && !def.HasContainer(keyword.ID) && !def.HasContainer(keyword.Index) {
		wrapped := json.Array{}
		for _, item := range json.ToArray(expanded) {
			wrapped = append(wrapped, graphObject(item))
		}
		expanded = wrapped
	}

	if def != nil && def.Reverse {
		reverseMap := entryObject(result, keyword.Reverse)
		for _, item := range json.ToArray(expanded) {
			if isValueObject(item) || isListObject(item) {
				return errors.New(errors.InvalidReversePropertyValue,
					"reverse properties cannot point at values or lists")
			}
			appendToEntry(reverseMap, expandedProperty, item)
		}
		return nil
	}

	appendToEntry(result, expandedProperty, json.ToArray(expanded)...)
	return nil
}

// expandLanguageMap expands an entry whose term has an @language
// container: keys are language tags, values become tagged strings.
func expandLanguageMap(active *ldcontext.ActiveContext, def *ldcontext.TermDefinition, value *json.Object, flags Flags) (json.Value, error) {
	direction := active.DefaultDirection()
	if def.DirectionSet {
		direction = def.Direction
	}

	result := json.Array{}
	for _, lang := range value.OrderedKeys(flags.Ordered) {
		for _, item := range json.ToArray(value.Value(lang)) {
			if json.IsNull(item) {
				continue
			}
			if !json.IsString(item) {
				return nil, errors.Newf(errors.InvalidLanguageMapValue,
					"language map entry %q must hold strings", lang)
			}
			tagged := json.NewObject()
			tagged.Set(keyword.Value, item)
			if lang != keyword.None && active.ExpandIRI(lang, true, false) != keyword.None {
				tagged.Set(keyword.Language, json.String(lang))
			}
			if direction != "" {
				tagged.Set(keyword.Direction, json.String(direction))
			}
			result = append(result, tagged)
		}
	}
	return result, nil
}

// expandIndexMap expands an entry whose term has an @index, @id, or
// @type container: map keys become @index, @id, or @type entries of the
// expanded items.
func expandIndexMap(ctx stdcontext.Context, active *ldcontext.ActiveContext, key string, value *json.Object, baseURL string, flags Flags) (json.Value, error) {
	def := active.Term(key)
	indexKey := keyword.Index
	if def.Index != "" {
		indexKey = def.Index
	}

	result := json.Array{}
	for _, index := range value.OrderedKeys(flags.Ordered) {
		mapContext := active
		if def.HasContainer(keyword.ID) || def.HasContainer(keyword.Type) {
			if active.Previous() != nil {
				mapContext = active.Previous()
			}
		}
		if def.HasContainer(keyword.Type) {
			if indexDef := mapContext.Term(index); indexDef.HasContext() {
				derived, err := ldcontext.ProcessWith(ctx, mapContext, indexDef.Context, indexDef.BaseURL,
					ldcontext.ProcessFlags{Propagate: true})
				if err != nil {
					return nil, err
				}
				mapContext = derived
			}
		}

		expandedIndex := active.ExpandIRI(index, true, false)
		expanded, err := expandElement(ctx, mapContext, key, json.ToArray(value.Value(index)), baseURL, flags, true)
		if err != nil {
			return nil, err
		}

		for _, item := range json.ToArray(expanded) {
			if def.HasContainer(keyword.Graph) && !isGraphObject(item) {
				item = graphObject(item)
			}
			itemObj, ok := json.AsObject(item)
			if !ok {
				result = append(result, item)
				continue
			}
			switch {
			case def.HasContainer(keyword.Index) && indexKey != keyword.Index && expandedIndex != keyword.None:
				// Property-based index: the map key is data, recorded
				// under the index property.
				indexValue, err := expandValue(active, indexKey, json.String(index), flags)
				if err != nil {
					return nil, err
				}
				expandedIndexKey := active.ExpandIRI(indexKey, true, false)
				entries := append(json.Array{indexValue}, json.ToArray(itemObj.Value(expandedIndexKey))...)
				itemObj.Set(expandedIndexKey, entries)
				if itemObj.Has(keyword.Value) && itemObj.Len() > 1 {
					return nil, errors.New(errors.InvalidValueObject,
						"value objects cannot carry a property-based index")
				}
			case def.HasContainer(keyword.Index) && !itemObj.Has(keyword.Index) && expandedIndex != keyword.None:
				itemObj.Set(keyword.Index, json.String(index))
			case def.HasContainer(keyword.ID) && !itemObj.Has(keyword.ID) && expandedIndex != keyword.None:
				itemObj.Set(keyword.ID, json.String(active.ExpandIRI(index, false, true)))
			case def.HasContainer(keyword.Type) && expandedIndex != keyword.None:
				types := append(json.Array{json.String(expandedIndex)}, json.ToArray(itemObj.Value(keyword.Type))...)
				itemObj.Set(keyword.Type, types)
			}
			result = append(result, itemObj)
		}
	}
	return result, nil
}

// entryObject returns the object stored under key, creating it when
// absent.
func entryObject(result *json.Object, key string) *json.Object {
	if v, has := result.Get(key); has {
		if obj, ok := json.AsObject(v); ok {
			return obj
		}
	}
	obj := json.NewObject()
	result.Set(key, obj)
	return obj
}

// appendToEntry appends items to the array stored under key.
func appendToEntry(result *json.Object, key string, items ...json.Value) {
	existing := json.ToArray(result.Value(key))
	result.Set(key, append(existing, items...))
}

func graphObject(item json.Value) *json.Object {
	obj := json.NewObject()
	obj.Set(keyword.Graph, json.ToArray(item))
	return obj
}

func isValueObject(v json.Value) bool {
	obj, ok := json.AsObject(v)
	return ok && obj.Has(keyword.Value)
}

func isListObject(v json.Value) bool {
	obj, ok := json.AsObject(v)
	return ok && obj.Has(keyword.List)
}

func isGraphObject(v json.Value) bool {
	obj, ok := json.AsObject(v)
	return ok && obj.Has(keyword.Graph)
}

// isNodeObject reports whether v is a node object: a map that is
// neither a value, list, nor set object.
func isNodeObject(v json.Value) bool {
	obj, ok := json.AsObject(v)
	if !ok {
		return false
	}
	return !obj.Has(keyword.Value) && !obj.Has(keyword.List) && !obj.Has(keyword.Set)
}
