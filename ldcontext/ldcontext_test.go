package ldcontext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/jsonld/errors"
	"github.com/c360/jsonld/loader"
	"github.com/c360/jsonld/pkg/json"
)

func mustParse(t *testing.T, src string) json.Value {
	t.Helper()
	v, err := json.Parse([]byte(src))
	require.NoError(t, err)
	return v
}

func process(t *testing.T, src string) (*ActiveContext, error) {
	t.Helper()
	active := New("", "", Options{})
	return Process(context.Background(), active, mustParse(t, src), "")
}

func mustProcess(t *testing.T, src string) *ActiveContext {
	t.Helper()
	result, err := process(t, src)
	require.NoError(t, err)
	return result
}

func TestProcessSimpleTerms(t *testing.T) {
	active := mustProcess(t, `{
		"name": "http://schema.org/name",
		"schema": "http://schema.org/",
		"image": {"@id": "schema:image", "@type": "@id"}
	}`)

	name := active.Term("name")
	require.NotNil(t, name)
	assert.Equal(t, "http://schema.org/name", name.IRI)
	assert.False(t, name.Prefix, "term ending in a non gen-delim is not a prefix")

	schema := active.Term("schema")
	require.NotNil(t, schema)
	assert.True(t, schema.Prefix)

	image := active.Term("image")
	require.NotNil(t, image)
	assert.Equal(t, "http://schema.org/image", image.IRI)
	assert.Equal(t, "@id", image.TypeMapping)
}

func TestProcessVocabAndDefaults(t *testing.T) {
	active := mustProcess(t, `{
		"@vocab": "http://example.com/vocab/",
		"@language": "en",
		"@direction": "rtl"
	}`)

	vocab, ok := active.VocabMapping()
	require.True(t, ok)
	assert.Equal(t, "http://example.com/vocab/", vocab)
	assert.Equal(t, "en", active.DefaultLanguage())
	assert.Equal(t, DirectionRTL, active.DefaultDirection())

	cleared, err := Process(context.Background(), active, mustParse(t, `{
		"@vocab": null, "@language": null, "@direction": null
	}`), "")
	require.NoError(t, err)
	_, ok = cleared.VocabMapping()
	assert.False(t, ok)
	assert.Empty(t, cleared.DefaultLanguage())
	assert.Empty(t, cleared.DefaultDirection())
}

func TestProcessBase(t *testing.T) {
	active := New("http://example.com/doc", "http://example.com/doc", Options{})

	derived, err := Process(context.Background(), active, mustParse(t, `{"@base": "child/"}`), "")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/child/", derived.BaseIRI())

	derived, err = Process(context.Background(), derived, mustParse(t, `{"@base": null}`), "")
	require.NoError(t, err)
	assert.Empty(t, derived.BaseIRI())
}

func TestProcessNullResetsTerms(t *testing.T) {
	active := mustProcess(t, `{"name": "http://schema.org/name"}`)
	require.NotNil(t, active.Term("name"))

	reset, err := Process(context.Background(), active, json.Null{}, "")
	require.NoError(t, err)
	assert.Nil(t, reset.Term("name"))
}

func TestProcessNullWithProtectedTermsFails(t *testing.T) {
	active := mustProcess(t, `{"@protected": true, "name": "http://schema.org/name"}`)

	_, err := Process(context.Background(), active, json.Null{}, "")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.InvalidContextNullification))
}

func TestProcessErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{name: "numeric context", src: `42`, code: errors.InvalidLocalContext},
		{name: "bad version", src: `{"@version": 1.0}`, code: errors.InvalidVersionValue},
		{name: "non-string base", src: `{"@base": true}`, code: errors.InvalidBaseIRI},
		{name: "relative base without base", src: `{"@base": "child/"}`, code: errors.InvalidBaseIRI},
		{name: "non-IRI vocab", src: `{"@vocab": true}`, code: errors.InvalidVocabMapping},
		{name: "numeric language", src: `{"@language": 7}`, code: errors.InvalidDefaultLanguage},
		{name: "bad direction", src: `{"@direction": "up"}`, code: errors.InvalidBaseDirection},
		{name: "non-bool propagate", src: `{"@propagate": "yes"}`, code: errors.InvalidPropagateValue},
		{name: "non-bool protected", src: `{"@protected": "yes"}`, code: errors.InvalidProtectedValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := process(t, tt.src)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestCreateTermDefinitionErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{
			name: "keyword redefinition",
			src:  `{"@id": "http://example.com/id"}`,
			code: errors.KeywordRedefinition,
		},
		{
			name: "type redefined with language container",
			src:  `{"@type": {"@container": "@language"}}`,
			code: errors.InvalidTermDefinition,
		},
		{
			name: "type redefined without set container",
			src:  `{"@type": {"@protected": true}}`,
			code: errors.InvalidTermDefinition,
		},
		{
			name: "term without id or vocab",
			src:  `{"name": {"@type": "@id"}}`,
			code: errors.InvalidIRIMapping,
		},
		{
			name: "context alias",
			src:  `{"ctx": {"@id": "@context"}}`,
			code: errors.InvalidKeywordAlias,
		},
		{
			name: "non-string type mapping",
			src:  `{"name": {"@id": "http://example.com/name", "@type": 4}}`,
			code: errors.InvalidTypeMapping,
		},
		{
			name: "unresolvable type mapping",
			src:  `{"name": {"@id": "http://example.com/name", "@type": "plain"}}`,
			code: errors.InvalidTypeMapping,
		},
		{
			name: "reverse with id",
			src:  `{"r": {"@reverse": "http://example.com/p", "@id": "http://example.com/q"}}`,
			code: errors.InvalidReverseProperty,
		},
		{
			name: "reverse with list container",
			src:  `{"r": {"@reverse": "http://example.com/p", "@container": "@list"}}`,
			code: errors.InvalidReverseProperty,
		},
		{
			name: "unknown container",
			src:  `{"t": {"@id": "http://example.com/t", "@container": "@bag"}}`,
			code: errors.InvalidContainerMapping,
		},
		{
			name: "list combined with set",
			src:  `{"t": {"@id": "http://example.com/t", "@container": ["@list", "@set"]}}`,
			code: errors.InvalidContainerMapping,
		},
		{
			name: "id combined with type",
			src:  `{"t": {"@id": "http://example.com/t", "@container": ["@id", "@type"]}}`,
			code: errors.InvalidContainerMapping,
		},
		{
			name: "type container with string coercion",
			src:  `{"t": {"@id": "http://example.com/t", "@container": "@type", "@type": "http://example.com/T"}}`,
			code: errors.InvalidTypeMapping,
		},
		{
			name: "index without index container",
			src:  `{"t": {"@id": "http://example.com/t", "@index": "http://example.com/i"}}`,
			code: errors.InvalidTermDefinition,
		},
		{
			name: "nest set to keyword",
			src:  `{"t": {"@id": "http://example.com/t", "@nest": "@id"}}`,
			code: errors.InvalidNestValue,
		},
		{
			name: "prefix on compact term",
			src:  `{"ex": "http://example.com/", "ex:t": {"@prefix": true}}`,
			code: errors.InvalidTermDefinition,
		},
		{
			name: "unexpected entry",
			src:  `{"t": {"@id": "http://example.com/t", "@color": "red"}}`,
			code: errors.InvalidTermDefinition,
		},
		{
			name: "malformed scoped context",
			src:  `{"t": {"@id": "http://example.com/t", "@context": {"@version": 2}}}`,
			code: errors.InvalidScopedContext,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := process(t, tt.src)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestCyclicTermDefinitions(t *testing.T) {
	_, err := process(t, `{"a": "b:x", "b": "a:y"}`)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CyclicIRIMapping))
}

func TestCompactIRITermDependsOnPrefix(t *testing.T) {
	// Declaration order is irrelevant: the prefix is defined on first
	// use even when it appears later in the context object.
	active := mustProcess(t, `{
		"foaf:name": {"@type": "@id"},
		"foaf": "http://xmlns.com/foaf/0.1/"
	}`)
	def := active.Term("foaf:name")
	require.NotNil(t, def)
	assert.Equal(t, "http://xmlns.com/foaf/0.1/name", def.IRI)
}

func TestNullMappedTermShadowsVocab(t *testing.T) {
	active := mustProcess(t, `{
		"@vocab": "http://example.com/vocab/",
		"hidden": null
	}`)
	require.True(t, active.HasTerm("hidden"))
	assert.Empty(t, active.Term("hidden").IRI)
	assert.Empty(t, active.ExpandIRI("hidden", true, false))
	assert.Equal(t, "http://example.com/vocab/shown", active.ExpandIRI("shown", true, false))
}

func TestKeywordShapedTermsAreIgnored(t *testing.T) {
	active := mustProcess(t, `{"@future": "http://example.com/future"}`)
	assert.False(t, active.HasTerm("@future"))
}

func TestTypeRedefinition(t *testing.T) {
	active := mustProcess(t, `{"@type": {"@container": "@set", "@protected": true}}`)
	def := active.Term("@type")
	require.NotNil(t, def)
	assert.Equal(t, "@type", def.IRI)
	assert.True(t, def.HasContainer("@set"))
	assert.True(t, def.Protected)
}

func TestProtectedTermRedefinition(t *testing.T) {
	active := mustProcess(t, `{"@protected": true, "name": "http://schema.org/name"}`)

	// A different mapping is rejected.
	_, err := Process(context.Background(), active, mustParse(t, `{"name": "http://example.com/name"}`), "")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ProtectedTermRedefinition))

	// An identical one is allowed and keeps protection.
	derived, err := Process(context.Background(), active, mustParse(t, `{"name": "http://schema.org/name"}`), "")
	require.NoError(t, err)
	assert.True(t, derived.Term("name").Protected)

	// Override allows replacement.
	derived, err = ProcessWith(context.Background(), active, mustParse(t, `{"name": "http://example.com/name"}`), "", ProcessFlags{OverrideProtected: true, Propagate: true})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/name", derived.Term("name").IRI)
}

func TestNonPropagatingContextKeepsPrevious(t *testing.T) {
	parent := mustProcess(t, `{"name": "http://schema.org/name"}`)

	scoped, err := ProcessWith(context.Background(), parent, mustParse(t, `{"name": "http://example.com/name"}`), "", ProcessFlags{Propagate: false})
	require.NoError(t, err)
	require.NotNil(t, scoped.Previous())
	assert.Equal(t, "http://schema.org/name", scoped.Previous().Term("name").IRI)
}

func TestPropagateEntryOverridesFlag(t *testing.T) {
	parent := mustProcess(t, `{"name": "http://schema.org/name"}`)

	derived, err := Process(context.Background(), parent, mustParse(t, `{"@propagate": false, "name": "http://example.com/name"}`), "")
	require.NoError(t, err)
	assert.NotNil(t, derived.Previous())
}

func TestRemoteContext(t *testing.T) {
	docs := loader.NewStatic()
	docs.Add("http://example.com/ctx", mustParse(t, `{
		"@context": {"name": "http://schema.org/name"}
	}`))

	active := New("", "", Options{Loader: docs})
	derived, err := Process(context.Background(), active, json.String("http://example.com/ctx"), "")
	require.NoError(t, err)
	assert.Equal(t, "http://schema.org/name", derived.Term("name").IRI)
}

func TestRemoteContextWithoutLoaderFails(t *testing.T) {
	active := New("", "", Options{})
	_, err := Process(context.Background(), active, json.String("http://example.com/ctx"), "")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.LoadingRemoteContextFailed))
}

func TestRemoteContextOverflow(t *testing.T) {
	docs := loader.NewStatic()
	// a and b reference each other forever.
	docs.Add("http://example.com/a", mustParse(t, `{"@context": "http://example.com/b"}`))
	docs.Add("http://example.com/b", mustParse(t, `{"@context": "http://example.com/a"}`))

	active := New("", "", Options{Loader: docs, MaxRemoteContexts: 8})
	_, err := Process(context.Background(), active, json.String("http://example.com/a"), "")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ContextOverflow))
}

func TestRemoteContextNotAnObjectFails(t *testing.T) {
	docs := loader.NewStatic()
	docs.Add("http://example.com/ctx", mustParse(t, `["not", "a", "context"]`))

	active := New("", "", Options{Loader: docs})
	_, err := Process(context.Background(), active, json.String("http://example.com/ctx"), "")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.InvalidRemoteContext))
}

func TestImportMergesContext(t *testing.T) {
	docs := loader.NewStatic()
	docs.Add("http://example.com/base-ctx", mustParse(t, `{
		"@context": {
			"name": "http://schema.org/name",
			"age": "http://schema.org/age"
		}
	}`))

	active := New("", "", Options{Loader: docs})
	derived, err := Process(context.Background(), active, mustParse(t, `{
		"@import": "http://example.com/base-ctx",
		"age": "http://example.com/age"
	}`), "")
	require.NoError(t, err)
	assert.Equal(t, "http://schema.org/name", derived.Term("name").IRI)
	assert.Equal(t, "http://example.com/age", derived.Term("age").IRI, "local entries win over imported ones")
}

func TestImportErrors(t *testing.T) {
	docs := loader.NewStatic()
	docs.Add("http://example.com/array-ctx", mustParse(t, `{"@context": ["http://example.com/other"]}`))
	docs.Add("http://example.com/nested-import", mustParse(t, `{"@context": {"@import": "http://example.com/other"}}`))

	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{name: "non-string import", src: `{"@import": 7}`, code: errors.InvalidImportValue},
		{name: "imported context not an object", src: `{"@import": "http://example.com/array-ctx"}`, code: errors.InvalidRemoteContext},
		{name: "nested import", src: `{"@import": "http://example.com/nested-import"}`, code: errors.InvalidContextEntry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active := New("", "", Options{Loader: docs})
			_, err := Process(context.Background(), active, mustParse(t, tt.src), "")
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestMode10RejectsNewerFeatures(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{name: "version", src: `{"@version": 1.1}`, code: errors.ProcessingModeConflict},
		{name: "direction", src: `{"@direction": "ltr"}`, code: errors.InvalidContextEntry},
		{name: "propagate", src: `{"@propagate": true}`, code: errors.InvalidContextEntry},
		{name: "import", src: `{"@import": "http://example.com/ctx"}`, code: errors.InvalidContextEntry},
		{name: "protected term", src: `{"t": {"@id": "http://example.com/t", "@protected": true}}`, code: errors.InvalidTermDefinition},
		{name: "nest", src: `{"t": {"@id": "http://example.com/t", "@nest": "@nest"}}`, code: errors.InvalidTermDefinition},
		{name: "scoped context", src: `{"t": {"@id": "http://example.com/t", "@context": {}}}`, code: errors.InvalidTermDefinition},
		{name: "container array", src: `{"t": {"@id": "http://example.com/t", "@container": ["@set"]}}`, code: errors.InvalidContainerMapping},
		{name: "graph container", src: `{"t": {"@id": "http://example.com/t", "@container": "@graph"}}`, code: errors.InvalidContainerMapping},
		{name: "type redefinition", src: `{"@type": {"@container": "@set"}}`, code: errors.KeywordRedefinition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active := New("", "", Options{Mode: Mode10})
			_, err := Process(context.Background(), active, mustParse(t, tt.src), "")
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestExpandIRI(t *testing.T) {
	active := mustProcess(t, `{
		"@vocab": "http://example.com/vocab/",
		"schema": "http://schema.org/",
		"name": "http://schema.org/name",
		"noprefix": {"@id": "http://example.com/ns", "@prefix": false}
	}`)
	active.baseIRI = "http://example.com/doc/"

	tests := []struct {
		name     string
		value    string
		vocab    bool
		relative bool
		want     string
	}{
		{name: "keyword", value: "@type", vocab: true, want: "@type"},
		{name: "keyword shaped", value: "@future", vocab: true, want: ""},
		{name: "defined term", value: "name", vocab: true, want: "http://schema.org/name"},
		{name: "term ignored without vocab flag", value: "name", want: ""},
		{name: "compact IRI", value: "schema:age", vocab: true, want: "http://schema.org/age"},
		{name: "non-prefix term is no compact IRI", value: "noprefix:x", vocab: true, want: "noprefix:x"},
		{name: "absolute IRI", value: "http://example.com/x", want: "http://example.com/x"},
		{name: "blank node", value: "_:b0", want: "_:b0"},
		{name: "vocab fallback", value: "age", vocab: true, want: "http://example.com/vocab/age"},
		{name: "document relative", value: "child", relative: true, want: "http://example.com/doc/child"},
		{name: "unresolvable", value: "plain", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, active.ExpandIRI(tt.value, tt.vocab, tt.relative))
		})
	}
}

func TestExpandIRIVocabBeatsBase(t *testing.T) {
	active := New("http://example.com/doc/", "", Options{})
	derived, err := Process(context.Background(), active, mustParse(t, `{"@vocab": "http://vocab.example/"}`), "")
	require.NoError(t, err)
	assert.Equal(t, "http://vocab.example/name", derived.ExpandIRI("name", true, true))
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	parent := mustProcess(t, `{"name": "http://schema.org/name"}`)

	_, err := Process(context.Background(), parent, mustParse(t, `{"name": "http://example.com/name", "extra": "http://example.com/extra"}`), "")
	require.NoError(t, err)
	assert.Equal(t, "http://schema.org/name", parent.Term("name").IRI)
	assert.False(t, parent.HasTerm("extra"))
}
