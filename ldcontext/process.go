package ldcontext

import (
	stdcontext "context"
	"slices"

	"github.com/c360/jsonld/errors"
	"github.com/c360/jsonld/keyword"
	"github.com/c360/jsonld/pkg/json"
	"github.com/c360/jsonld/pkg/uri"
)

// ProcessFlags tunes a single Process call. The zero value is never
// what callers want; use Process for the defaults.
type ProcessFlags struct {
	// OverrideProtected allows redefining protected terms. Set when
	// applying property-scoped contexts.
	OverrideProtected bool

	// Propagate controls whether the derived context survives into
	// nested nodes. Type-scoped contexts pass false.
	Propagate bool
}

// Process resolves the local context against active and returns the
// derived context. active is never modified. baseURL is the retrieval
// URL of the document the local context appeared in, used to resolve
// relative context references.
func Process(ctx stdcontext.Context, active *ActiveContext, local json.Value, baseURL string) (*ActiveContext, error) {
	return ProcessWith(ctx, active, local, baseURL, ProcessFlags{Propagate: true})
}

// ProcessWith is Process with explicit flags.
func ProcessWith(ctx stdcontext.Context, active *ActiveContext, local json.Value, baseURL string, flags ProcessFlags) (*ActiveContext, error) {
	return processContext(ctx, active, local, baseURL, processFlags{
		overrideProtected: flags.OverrideProtected,
		propagate:         flags.Propagate,
		validateScoped:    true,
	}, nil)
}

type processFlags struct {
	overrideProtected bool
	propagate         bool

	// validateScoped is cleared during trial validation of scoped
	// contexts, where already-dereferenced remote references are
	// skipped instead of re-fetched.
	validateScoped bool
}

// processContext implements the Context Processing algorithm. remote is
// the chain of remote context URLs already being dereferenced, shared
// down the recursion to bound it.
func processContext(ctx stdcontext.Context, active *ActiveContext, local json.Value, baseURL string, flags processFlags, remote []string) (*ActiveContext, error) {
	result := active.clone()

	// An @propagate entry in the outermost context object overrides
	// the caller's propagate flag.
	if obj, ok := json.AsObject(local); ok {
		if p, has := obj.Get(keyword.Propagate); has {
			if b, ok := json.AsBool(p); ok {
				flags.propagate = b
			}
		}
	}
	if !flags.propagate && result.previous == nil {
		result.previous = active
	}

	for _, item := range json.ToArray(local) {
		switch it := item.(type) {
		case json.Null:
			if !flags.overrideProtected && result.hasProtectedTerm() {
				return nil, errors.New(errors.InvalidContextNullification,
					"cannot nullify a context with protected terms")
			}
			parent := result
			result = New(parent.baseIRI, parent.baseURL, parent.opts)
			if !flags.propagate {
				result.previous = parent
			}

		case json.String:
			next, err := processRemoteContext(ctx, result, string(it), baseURL, flags, remote)
			if err != nil {
				return nil, err
			}
			if next != nil {
				result = next
			}

		case *json.Object:
			if err := processContextObject(ctx, result, it, baseURL, flags, remote); err != nil {
				return nil, err
			}

		default:
			return nil, errors.Newf(errors.InvalidLocalContext,
				"context entries must be null, strings, or objects, got %T", item)
		}
	}
	return result, nil
}

// processRemoteContext dereferences a context reference and folds the
// fetched context into result. It returns (nil, nil) when the reference
// is skipped during trial validation.
func processRemoteContext(ctx stdcontext.Context, result *ActiveContext, ref, baseURL string, flags processFlags, remote []string) (*ActiveContext, error) {
	target := uri.Resolve(baseURL, ref)
	if !uri.IsAbsolute(target) {
		return nil, errors.Newf(errors.LoadingRemoteContextFailed,
			"context reference %q does not resolve to an absolute IRI", ref)
	}

	if slices.Contains(remote, target) && !flags.validateScoped {
		return nil, nil
	}
	if len(remote) >= result.opts.MaxRemoteContexts {
		return nil, errors.Newf(errors.ContextOverflow,
			"more than %d remote contexts in one resolution", result.opts.MaxRemoteContexts)
	}
	remote = append(remote, target)

	content, docURL, err := dereferenceContext(ctx, result, target)
	if err != nil {
		return nil, err
	}
	obj, ok := json.AsObject(content)
	if !ok || !obj.Has(keyword.Context) {
		return nil, errors.Newf(errors.InvalidRemoteContext,
			"%s is not a JSON object with an @context entry", target)
	}
	return processContext(ctx, result, obj.Value(keyword.Context), docURL, processFlags{
		propagate:      true,
		validateScoped: flags.validateScoped,
	}, remote)
}

// dereferenceContext fetches a remote context document.
func dereferenceContext(ctx stdcontext.Context, active *ActiveContext, target string) (json.Value, string, error) {
	if active.opts.Loader == nil {
		return nil, "", errors.Newf(errors.LoadingRemoteContextFailed,
			"no document loader configured, cannot dereference %s", target)
	}
	doc, err := active.opts.Loader.Load(ctx, target)
	if err != nil {
		return nil, "", errors.Wrap(errors.LoadingRemoteContextFailed, err, target)
	}
	return doc.Content, doc.URL, nil
}

// processContextObject folds one context object into result in place.
func processContextObject(ctx stdcontext.Context, result *ActiveContext, obj *json.Object, baseURL string, flags processFlags, remote []string) error {
	if v, has := obj.Get(keyword.Version); has {
		if n, ok := v.(json.Number); !ok || n.String() != "1.1" {
			return errors.Newf(errors.InvalidVersionValue, "@version must be the number 1.1")
		}
		if result.opts.Mode == Mode10 {
			return errors.New(errors.ProcessingModeConflict,
				"@version 1.1 context processed in 1.0 mode")
		}
	}

	obj, err := mergeImport(ctx, result, obj, baseURL)
	if err != nil {
		return err
	}

	// @base applies only in the document's own contexts, never in a
	// dereferenced remote one.
	if v, has := obj.Get(keyword.Base); has && len(remote) == 0 {
		if err := applyBase(result, v); err != nil {
			return err
		}
	}
	if v, has := obj.Get(keyword.Vocab); has {
		if err := applyVocab(result, v); err != nil {
			return err
		}
	}
	if v, has := obj.Get(keyword.Language); has {
		switch t := v.(type) {
		case json.Null:
			result.defaultLanguage = ""
		case json.String:
			result.defaultLanguage = string(t)
		default:
			return errors.New(errors.InvalidDefaultLanguage, "@language must be a string or null")
		}
	}
	if v, has := obj.Get(keyword.Direction); has {
		if result.opts.Mode == Mode10 {
			return errors.New(errors.InvalidContextEntry, "@direction requires JSON-LD 1.1")
		}
		dir, err := parseDirection(v)
		if err != nil {
			return err
		}
		result.defaultDirection = dir
	}
	if v, has := obj.Get(keyword.Propagate); has {
		if result.opts.Mode == Mode10 {
			return errors.New(errors.InvalidContextEntry, "@propagate requires JSON-LD 1.1")
		}
		if _, ok := json.AsBool(v); !ok {
			return errors.New(errors.InvalidPropagateValue, "@propagate must be a boolean")
		}
	}

	protectedDefault := false
	if v, has := obj.Get(keyword.Protected); has {
		if result.opts.Mode == Mode10 {
			return errors.New(errors.InvalidContextEntry, "@protected requires JSON-LD 1.1")
		}
		b, ok := json.AsBool(v)
		if !ok {
			return errors.New(errors.InvalidProtectedValue, "@protected must be a boolean")
		}
		protectedDefault = b
	}

	defined := make(map[string]bool)
	p := defParams{
		baseURL:           baseURL,
		protected:         protectedDefault,
		overrideProtected: flags.overrideProtected,
		validateScoped:    flags.validateScoped,
		remote:            remote,
	}
	for _, term := range obj.Keys() {
		switch term {
		case keyword.Base, keyword.Direction, keyword.Import, keyword.Language,
			keyword.Propagate, keyword.Protected, keyword.Version, keyword.Vocab:
			continue
		}
		if err := createTermDefinition(ctx, result, obj, term, defined, p); err != nil {
			return err
		}
	}
	return nil
}

// mergeImport resolves an @import entry and merges the local context
// object over the imported one. Without @import it returns obj as is.
func mergeImport(ctx stdcontext.Context, result *ActiveContext, obj *json.Object, baseURL string) (*json.Object, error) {
	v, has := obj.Get(keyword.Import)
	if !has {
		return obj, nil
	}
	if result.opts.Mode == Mode10 {
		return nil, errors.New(errors.InvalidContextEntry, "@import requires JSON-LD 1.1")
	}
	ref, ok := json.AsString(v)
	if !ok {
		return nil, errors.New(errors.InvalidImportValue, "@import must be a string")
	}
	target := uri.Resolve(baseURL, ref)

	content, _, err := dereferenceContext(ctx, result, target)
	if err != nil {
		return nil, err
	}
	wrapper, ok := json.AsObject(content)
	if !ok || !wrapper.Has(keyword.Context) {
		return nil, errors.Newf(errors.InvalidRemoteContext,
			"%s is not a JSON object with an @context entry", target)
	}
	imported, ok := json.AsObject(wrapper.Value(keyword.Context))
	if !ok {
		return nil, errors.Newf(errors.InvalidRemoteContext,
			"imported context %s must be a context object", target)
	}
	if imported.Has(keyword.Import) {
		return nil, errors.Newf(errors.InvalidContextEntry,
			"imported context %s must not itself use @import", target)
	}

	merged := imported.Clone()
	for _, key := range obj.Keys() {
		if key == keyword.Import {
			continue
		}
		merged.Set(key, obj.Value(key))
	}
	return merged, nil
}

func applyBase(result *ActiveContext, v json.Value) error {
	switch t := v.(type) {
	case json.Null:
		result.baseIRI = ""
	case json.String:
		ref := string(t)
		switch {
		case uri.IsAbsolute(ref):
			result.baseIRI = ref
		case result.baseIRI != "":
			result.baseIRI = uri.Resolve(result.baseIRI, ref)
		default:
			return errors.Newf(errors.InvalidBaseIRI,
				"relative @base %q with no base IRI to resolve against", ref)
		}
	default:
		return errors.New(errors.InvalidBaseIRI, "@base must be a string or null")
	}
	return nil
}

func applyVocab(result *ActiveContext, v json.Value) error {
	switch t := v.(type) {
	case json.Null:
		result.vocab = ""
		result.vocabSet = false
	case json.String:
		// "@vocab": "" makes terms resolve against the base IRI.
		if string(t) == "" {
			result.vocab = uri.Resolve(result.baseIRI, "")
			result.vocabSet = true
			return nil
		}
		expanded := result.ExpandIRI(string(t), true, true)
		if !uri.IsAbsolute(expanded) && !uri.IsBlankNode(expanded) {
			return errors.Newf(errors.InvalidVocabMapping,
				"@vocab %q does not expand to an IRI", string(t))
		}
		result.vocab = expanded
		result.vocabSet = true
	default:
		return errors.New(errors.InvalidVocabMapping, "@vocab must be a string or null")
	}
	return nil
}

func parseDirection(v json.Value) (Direction, error) {
	switch t := v.(type) {
	case json.Null:
		return "", nil
	case json.String:
		switch Direction(t) {
		case DirectionLTR, DirectionRTL:
			return Direction(t), nil
		}
	}
	return "", errors.New(errors.InvalidBaseDirection, `@direction must be "ltr", "rtl", or null`)
}
