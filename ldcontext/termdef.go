package ldcontext

import (
	stdcontext "context"
	stderrors "errors"
	"sort"
	"strings"

	"github.com/c360/jsonld/errors"
	"github.com/c360/jsonld/keyword"
	"github.com/c360/jsonld/pkg/json"
	"github.com/c360/jsonld/pkg/uri"
)

// defParams carries the per-context-object state term definition
// creation threads through its recursion.
type defParams struct {
	baseURL           string
	protected         bool
	overrideProtected bool
	validateScoped    bool
	remote            []string
}

// termEntries is the closed set of keys a term definition object may
// carry.
var termEntries = map[string]struct{}{
	keyword.Container: {}, keyword.Context: {}, keyword.Direction: {},
	keyword.ID: {}, keyword.Index: {}, keyword.Language: {}, keyword.Nest: {},
	keyword.Prefix: {}, keyword.Protected: {}, keyword.Reverse: {},
	keyword.Type: {},
}

// createTermDefinition resolves one term of local into active.terms.
// defined is the per-context tri-state map: absent means not started,
// false means in progress, true means done. Re-entering an in-progress
// term is a dependency cycle.
func createTermDefinition(ctx stdcontext.Context, active *ActiveContext, local *json.Object, term string, defined map[string]bool, p defParams) error {
	if done, seen := defined[term]; seen {
		if done {
			return nil
		}
		return errors.Newf(errors.CyclicIRIMapping, "term %q depends on itself", term)
	}
	if term == "" {
		return errors.New(errors.InvalidTermDefinition, "the empty string cannot be a term")
	}

	value := local.Value(term)

	if term == keyword.Type {
		if err := validateTypeRedefinition(active, value); err != nil {
			return err
		}
	} else if keyword.IsKeyword(term) {
		return errors.Newf(errors.KeywordRedefinition, "%s cannot be redefined", term)
	} else if keyword.HasForm(term) {
		// Keyword-shaped terms are reserved; the definition is
		// silently ignored.
		return nil
	}

	defined[term] = false
	previous := active.terms[term]
	delete(active.terms, term)

	var entries *json.Object
	simpleTerm := false
	switch v := value.(type) {
	case json.Null:
		entries = json.NewObject()
		entries.Set(keyword.ID, json.Null{})
	case json.String:
		entries = json.NewObject()
		entries.Set(keyword.ID, v)
		simpleTerm = true
	case *json.Object:
		entries = v
	default:
		return errors.Newf(errors.InvalidTermDefinition,
			"term %q must map to a string, object, or null", term)
	}

	def := &TermDefinition{Protected: p.protected}

	if v, has := entries.Get(keyword.Protected); has {
		if active.opts.Mode == Mode10 {
			return errors.New(errors.InvalidTermDefinition, "@protected requires JSON-LD 1.1")
		}
		b, ok := json.AsBool(v)
		if !ok {
			return errors.New(errors.InvalidProtectedValue, "@protected must be a boolean")
		}
		def.Protected = b
	}

	if v, has := entries.Get(keyword.Type); has {
		s, ok := json.AsString(v)
		if !ok {
			return errors.Newf(errors.InvalidTypeMapping, "@type of term %q must be a string", term)
		}
		expanded, err := active.expandIRI(ctx, s, true, false, local, defined, p)
		if err != nil {
			return err
		}
		if (expanded == keyword.JSON || expanded == keyword.None) && active.opts.Mode == Mode10 {
			return errors.Newf(errors.InvalidTypeMapping, "%s type mapping requires JSON-LD 1.1", expanded)
		}
		switch expanded {
		case keyword.ID, keyword.Vocab, keyword.JSON, keyword.None:
		default:
			if !uri.IsAbsolute(expanded) && !uri.IsBlankNode(expanded) {
				return errors.Newf(errors.InvalidTypeMapping,
					"@type of term %q does not expand to an IRI", term)
			}
		}
		def.TypeMapping = expanded
	}

	if v, has := entries.Get(keyword.Reverse); has {
		return createReverseDefinition(ctx, active, local, term, entries, v, def, previous, defined, p)
	}

	if err := resolveIRIMapping(ctx, active, local, term, entries, def, simpleTerm, defined, p); err != nil {
		if stderrors.Is(err, errSkipDefinition) {
			return nil
		}
		return err
	}

	if v, has := entries.Get(keyword.Container); has {
		containers, err := validateContainer(v, active.opts.Mode)
		if err != nil {
			return err
		}
		def.Containers = containers
		if def.HasContainer(keyword.Type) {
			switch def.TypeMapping {
			case "":
				def.TypeMapping = keyword.ID
			case keyword.ID, keyword.Vocab:
			default:
				return errors.Newf(errors.InvalidTypeMapping,
					"@container: @type term %q requires an @id or @vocab type mapping", term)
			}
		}
	}

	if v, has := entries.Get(keyword.Index); has {
		if active.opts.Mode == Mode10 || !def.HasContainer(keyword.Index) {
			return errors.Newf(errors.InvalidTermDefinition,
				"@index on term %q requires an @index container in JSON-LD 1.1", term)
		}
		s, ok := json.AsString(v)
		if !ok {
			return errors.Newf(errors.InvalidTermDefinition, "@index of term %q must be a string", term)
		}
		expanded, err := active.expandIRI(ctx, s, true, false, local, defined, p)
		if err != nil {
			return err
		}
		if !uri.IsAbsolute(expanded) && !uri.IsBlankNode(expanded) {
			return errors.Newf(errors.InvalidTermDefinition,
				"@index %q of term %q does not expand to an IRI", s, term)
		}
		def.Index = s
	}

	if v, has := entries.Get(keyword.Context); has {
		if active.opts.Mode == Mode10 {
			return errors.New(errors.InvalidTermDefinition, "scoped contexts require JSON-LD 1.1")
		}
		// Trial resolution: surface malformed scoped contexts at
		// definition time instead of first use. Remote references
		// already on the chain are not re-fetched.
		trial := processFlags{overrideProtected: true, propagate: true, validateScoped: false}
		if _, err := processContext(ctx, active, v, p.baseURL, trial, p.remote); err != nil {
			return errors.Wrap(errors.InvalidScopedContext, err,
				"scoped context of term "+term)
		}
		def.Context = v
		def.BaseURL = p.baseURL
	}

	if v, has := entries.Get(keyword.Language); has && !entries.Has(keyword.Type) {
		switch t := v.(type) {
		case json.Null:
			def.LanguageSet = true
		case json.String:
			def.Language = string(t)
			def.LanguageSet = true
		default:
			return errors.Newf(errors.InvalidLanguageMapping,
				"@language of term %q must be a string or null", term)
		}
	}

	if v, has := entries.Get(keyword.Direction); has && !entries.Has(keyword.Type) {
		if active.opts.Mode == Mode10 {
			return errors.New(errors.InvalidTermDefinition, "@direction requires JSON-LD 1.1")
		}
		dir, err := parseDirection(v)
		if err != nil {
			return err
		}
		def.Direction = dir
		def.DirectionSet = true
	}

	if v, has := entries.Get(keyword.Nest); has {
		if active.opts.Mode == Mode10 {
			return errors.New(errors.InvalidTermDefinition, "@nest requires JSON-LD 1.1")
		}
		s, ok := json.AsString(v)
		if !ok || (keyword.IsKeyword(s) && s != keyword.Nest) {
			return errors.Newf(errors.InvalidNestValue,
				"@nest of term %q must be a string other than a keyword", term)
		}
		def.Nest = s
	}

	if v, has := entries.Get(keyword.Prefix); has {
		if active.opts.Mode == Mode10 || strings.Contains(term, ":") || strings.Contains(term, "/") {
			return errors.Newf(errors.InvalidTermDefinition,
				"@prefix is not allowed on term %q", term)
		}
		b, ok := json.AsBool(v)
		if !ok {
			return errors.New(errors.InvalidPrefixValue, "@prefix must be a boolean")
		}
		def.Prefix = b
		if def.Prefix && keyword.IsKeyword(def.IRI) {
			return errors.Newf(errors.InvalidTermDefinition,
				"term %q cannot be both a prefix and a keyword alias", term)
		}
	}

	for _, key := range entries.Keys() {
		if _, ok := termEntries[key]; !ok {
			return errors.Newf(errors.InvalidTermDefinition,
				"term %q has unexpected entry %q", term, key)
		}
	}

	return storeDefinition(active, term, def, previous, defined, p)
}

// validateTypeRedefinition checks the one legal keyword redefinition:
// @type may gain an @set container and protection, nothing else.
func validateTypeRedefinition(active *ActiveContext, value json.Value) error {
	if active.opts.Mode == Mode10 {
		return errors.New(errors.KeywordRedefinition, "@type cannot be redefined in JSON-LD 1.0")
	}
	obj, ok := json.AsObject(value)
	if !ok {
		return errors.New(errors.InvalidTermDefinition, "@type can only be redefined as an object")
	}
	if c, has := obj.Get(keyword.Container); !has || !equalsString(c, keyword.Set) {
		return errors.New(errors.InvalidTermDefinition,
			`redefining @type requires "@container": "@set"`)
	}
	for _, key := range obj.Keys() {
		if key != keyword.Container && key != keyword.Protected {
			return errors.Newf(errors.InvalidTermDefinition,
				"redefining @type does not allow the %q entry", key)
		}
	}
	return nil
}

func equalsString(v json.Value, want string) bool {
	s, ok := json.AsString(v)
	return ok && s == want
}

// createReverseDefinition finishes a definition carrying @reverse.
func createReverseDefinition(ctx stdcontext.Context, active *ActiveContext, local *json.Object, term string, entries *json.Object, value json.Value, def *TermDefinition, previous *TermDefinition, defined map[string]bool, p defParams) error {
	if entries.Has(keyword.ID) || entries.Has(keyword.Nest) {
		return errors.Newf(errors.InvalidReverseProperty,
			"term %q combines @reverse with @id or @nest", term)
	}
	s, ok := json.AsString(value)
	if !ok {
		return errors.Newf(errors.InvalidIRIMapping, "@reverse of term %q must be a string", term)
	}
	if !keyword.IsKeyword(s) && keyword.HasForm(s) {
		// Reserved for future keywords; drop the definition.
		defined[term] = true
		return nil
	}

	expanded, err := active.expandIRI(ctx, s, true, false, local, defined, p)
	if err != nil {
		return err
	}
	if !uri.IsAbsolute(expanded) && !uri.IsBlankNode(expanded) {
		return errors.Newf(errors.InvalidIRIMapping,
			"@reverse %q of term %q does not expand to an IRI", s, term)
	}
	def.IRI = expanded
	def.Reverse = true

	if v, has := entries.Get(keyword.Container); has {
		switch t := v.(type) {
		case json.Null:
		case json.String:
			if string(t) != keyword.Set && string(t) != keyword.Index {
				return errors.Newf(errors.InvalidReverseProperty,
					"reverse term %q only allows @set or @index containers", term)
			}
			def.Containers = []string{string(t)}
		default:
			return errors.Newf(errors.InvalidReverseProperty,
				"reverse term %q only allows @set or @index containers", term)
		}
	}
	return storeDefinition(active, term, def, previous, defined, p)
}

// resolveIRIMapping derives the IRI mapping from @id, a compact IRI
// form, the term shape, or the vocabulary mapping.
func resolveIRIMapping(ctx stdcontext.Context, active *ActiveContext, local *json.Object, term string, entries *json.Object, def *TermDefinition, simpleTerm bool, defined map[string]bool, p defParams) error {
	idValue, hasID := entries.Get(keyword.ID)
	if hasID && !equalsString(idValue, term) {
		switch v := idValue.(type) {
		case json.Null:
			// Explicitly decoupled from any vocabulary mapping.
			return nil
		case json.String:
			return resolveExplicitID(ctx, active, local, term, string(v), def, simpleTerm, defined, p)
		default:
			return errors.Newf(errors.InvalidIRIMapping, "@id of term %q must be a string or null", term)
		}
	}

	if i := strings.Index(term[1:], ":"); i >= 0 {
		prefix, suffix := term[:i+1], term[i+2:]
		if local.Has(prefix) {
			if err := createTermDefinition(ctx, active, local, prefix, defined, p); err != nil {
				return err
			}
		}
		if pd := active.terms[prefix]; pd != nil && pd.IRI != "" {
			def.IRI = pd.IRI + suffix
		} else {
			// No prefix definition: the term is itself an IRI or
			// blank node identifier.
			def.IRI = term
		}
		return nil
	}

	if strings.Contains(term, "/") {
		expanded, err := active.expandIRI(ctx, term, true, false, local, defined, p)
		if err != nil {
			return err
		}
		if !uri.IsAbsolute(expanded) {
			return errors.Newf(errors.InvalidIRIMapping,
				"relative term %q does not expand to an IRI", term)
		}
		def.IRI = expanded
		return nil
	}

	if term == keyword.Type {
		def.IRI = keyword.Type
		return nil
	}
	if vocab, ok := active.VocabMapping(); ok {
		def.IRI = vocab + term
		return nil
	}
	return errors.Newf(errors.InvalidIRIMapping,
		"term %q has no @id and no vocabulary mapping applies", term)
}

func resolveExplicitID(ctx stdcontext.Context, active *ActiveContext, local *json.Object, term, id string, def *TermDefinition, simpleTerm bool, defined map[string]bool, p defParams) error {
	if !keyword.IsKeyword(id) && keyword.HasForm(id) {
		// Reserved for future keywords; drop the definition.
		defined[term] = true
		return errSkipDefinition
	}
	expanded, err := active.expandIRI(ctx, id, true, false, local, defined, p)
	if err != nil {
		return err
	}
	if !keyword.IsKeyword(expanded) && !uri.IsAbsolute(expanded) && !uri.IsBlankNode(expanded) {
		return errors.Newf(errors.InvalidIRIMapping,
			"@id %q of term %q does not expand to an IRI or keyword", id, term)
	}
	if expanded == keyword.Context {
		return errors.New(errors.InvalidKeywordAlias, "@context cannot be aliased")
	}
	def.IRI = expanded

	if hasInnerColon(term) || strings.Contains(term, "/") {
		// The term itself could be read as a compact IRI or relative
		// IRI; its expansion must agree with the declared mapping.
		defined[term] = true
		check, err := active.expandIRI(ctx, term, true, false, local, defined, p)
		if err != nil {
			return err
		}
		if check != def.IRI {
			return errors.Newf(errors.InvalidIRIMapping,
				"term %q expands to %q, conflicting with its @id %q", term, check, def.IRI)
		}
		return nil
	}

	if simpleTerm && (uri.EndsWithGenDelim(def.IRI) || uri.IsBlankNode(def.IRI)) {
		def.Prefix = true
	}
	return nil
}

// hasInnerColon reports whether term contains a colon after its first
// character, the shape that makes it a potential compact IRI.
func hasInnerColon(term string) bool {
	return strings.Contains(term[1:], ":")
}

// errSkipDefinition signals that a definition was intentionally dropped
// (keyword-shaped @id); it never escapes createTermDefinition.
var errSkipDefinition = stderrors.New("definition dropped")

// storeDefinition runs the protected-redefinition check and publishes
// the definition.
func storeDefinition(active *ActiveContext, term string, def *TermDefinition, previous *TermDefinition, defined map[string]bool, p defParams) error {
	if previous != nil && previous.Protected && !p.overrideProtected {
		if !def.sameAs(previous) {
			return errors.Newf(errors.ProtectedTermRedefinition,
				"term %q is protected", term)
		}
		// Identical redefinition keeps the protected original.
		def = previous
	}
	active.terms[term] = def
	defined[term] = true
	return nil
}

// validateContainer checks a raw @container value against the legal
// combinations and returns the sorted container set.
func validateContainer(v json.Value, mode Mode) ([]string, error) {
	var vals []string
	switch t := v.(type) {
	case json.String:
		vals = []string{string(t)}
	case json.Array:
		if mode == Mode10 {
			return nil, errors.New(errors.InvalidContainerMapping,
				"array @container requires JSON-LD 1.1")
		}
		for _, item := range t {
			s, ok := json.AsString(item)
			if !ok {
				return nil, errors.New(errors.InvalidContainerMapping,
					"@container entries must be strings")
			}
			vals = append(vals, s)
		}
	default:
		return nil, errors.New(errors.InvalidContainerMapping,
			"@container must be a string or array of strings")
	}

	set := make(map[string]struct{}, len(vals))
	for _, kw := range vals {
		switch kw {
		case keyword.Graph, keyword.ID, keyword.Index, keyword.Language,
			keyword.List, keyword.Set, keyword.Type:
		default:
			return nil, errors.Newf(errors.InvalidContainerMapping,
				"%q is not a container keyword", kw)
		}
		if mode == Mode10 {
			switch kw {
			case keyword.Graph, keyword.ID, keyword.Type:
				return nil, errors.Newf(errors.InvalidContainerMapping,
					"%s container requires JSON-LD 1.1", kw)
			}
		}
		set[kw] = struct{}{}
	}

	if err := checkContainerCombination(set); err != nil {
		return nil, err
	}

	containers := make([]string, 0, len(set))
	for kw := range set {
		containers = append(containers, kw)
	}
	sort.Strings(containers)
	return containers, nil
}

// checkContainerCombination enforces the legal container combinations:
// any single container; @set with any of @graph, @id, @index,
// @language, @type; and @graph paired with @id or @index, optionally
// with @set.
func checkContainerCombination(set map[string]struct{}) error {
	if len(set) == 1 {
		return nil
	}
	if _, ok := set[keyword.List]; ok {
		return errors.New(errors.InvalidContainerMapping, "@list cannot be combined")
	}

	rest := make(map[string]struct{}, len(set))
	for kw := range set {
		if kw != keyword.Set {
			rest[kw] = struct{}{}
		}
	}
	if len(rest) <= 1 {
		return nil
	}
	if len(rest) == 2 {
		_, hasGraph := rest[keyword.Graph]
		_, hasID := rest[keyword.ID]
		_, hasIndex := rest[keyword.Index]
		if hasGraph && (hasID || hasIndex) {
			return nil
		}
	}
	return errors.New(errors.InvalidContainerMapping, "illegal container combination")
}
