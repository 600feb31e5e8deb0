package expansion

import (
	"github.com/c360/jsonld/keyword"
	"github.com/c360/jsonld/ldcontext"
	"github.com/c360/jsonld/pkg/json"
)

// expandValue turns a scalar into a value object, applying the active
// property's type coercion or language/direction defaults.
func expandValue(active *ldcontext.ActiveContext, activeProperty string, value json.Value, flags Flags) (json.Value, error) {
	def := active.Term(activeProperty)
	typeMapping := ""
	if def != nil {
		typeMapping = def.TypeMapping
	}

	if s, ok := json.AsString(value); ok {
		switch typeMapping {
		case keyword.ID:
			result := json.NewObject()
			result.Set(keyword.ID, json.String(active.ExpandIRI(s, false, true)))
			return result, nil
		case keyword.Vocab:
			result := json.NewObject()
			result.Set(keyword.ID, json.String(active.ExpandIRI(s, true, true)))
			return result, nil
		}
	}

	result := json.NewObject()
	result.Set(keyword.Value, value)

	switch typeMapping {
	case "", keyword.ID, keyword.Vocab, keyword.None:
		// No type coercion; strings pick up language and direction.
		if !json.IsString(value) {
			return result, nil
		}
		if def != nil && def.LanguageSet {
			if def.Language != "" {
				result.Set(keyword.Language, json.String(def.Language))
			}
		} else if lang := active.DefaultLanguage(); lang != "" {
			result.Set(keyword.Language, json.String(lang))
		}
		if def != nil && def.DirectionSet {
			if def.Direction != "" {
				result.Set(keyword.Direction, json.String(def.Direction))
			}
		} else if dir := active.DefaultDirection(); dir != "" {
			result.Set(keyword.Direction, json.String(dir))
		}
	default:
		result.Set(keyword.Type, json.String(typeMapping))
	}
	return result, nil
}
