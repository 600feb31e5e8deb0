package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreservesKeyOrder(t *testing.T) {
	v, err := Parse([]byte(`{"z":1,"a":2,"m":{"y":true,"b":null}}`))
	require.NoError(t, err)

	obj, ok := AsObject(v)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())
	assert.Equal(t, []string{"a", "m", "z"}, obj.SortedKeys())

	inner, ok := AsObject(obj.Value("m"))
	require.True(t, ok)
	assert.Equal(t, []string{"y", "b"}, inner.Keys())
}

func TestParsePreservesNumberLexeme(t *testing.T) {
	v, err := Parse([]byte(`[1, 1.0, 1e10, -0.5]`))
	require.NoError(t, err)

	arr, ok := AsArray(v)
	require.True(t, ok)
	require.Len(t, arr, 4)
	assert.Equal(t, Number("1"), arr[0])
	assert.Equal(t, Number("1.0"), arr[1])
	assert.Equal(t, Number("1e10"), arr[2])
	assert.Equal(t, Number("-0.5"), arr[3])
}

func TestParseRejectsTrailingData(t *testing.T) {
	_, err := Parse([]byte(`{} {}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`1 2`))
	assert.Error(t, err)
}

func TestParseDistinguishesNullFromAbsent(t *testing.T) {
	v, err := Parse([]byte(`{"present":null}`))
	require.NoError(t, err)

	obj, _ := AsObject(v)
	got, ok := obj.Get("present")
	require.True(t, ok)
	assert.True(t, IsNull(got))

	_, ok = obj.Get("absent")
	assert.False(t, ok)
	assert.Nil(t, obj.Value("absent"))
}

func TestEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "object key order", input: `{"z":1,"a":"x","list":[true,null,1.5]}`},
		{name: "nested", input: `{"@context":{"name":"http://schema.org/name"},"name":"Anna"}`},
		{name: "escapes", input: `{"a":"line\nbreak"}`},
		{name: "empty structures", input: `[{},[]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.input))
			require.NoError(t, err)

			again, err := Parse(Encode(v))
			require.NoError(t, err)
			assert.True(t, Equal(v, again))
		})
	}
}

func TestObjectSetDeleteOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Number("1"))
	obj.Set("b", Number("2"))
	obj.Set("c", Number("3"))

	// Overwrite keeps position.
	obj.Set("b", Number("20"))
	assert.Equal(t, []string{"a", "b", "c"}, obj.Keys())

	assert.True(t, obj.Delete("b"))
	assert.False(t, obj.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, obj.Keys())
	assert.Equal(t, 2, obj.Len())
}

func TestObjectClone(t *testing.T) {
	obj := NewObject()
	obj.Set("a", String("x"))

	clone := obj.Clone()
	clone.Set("b", String("y"))

	assert.False(t, obj.Has("b"))
	assert.True(t, clone.Has("a"))
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected bool
	}{
		{name: "object key order irrelevant", a: `{"a":1,"b":2}`, b: `{"b":2,"a":1}`, expected: true},
		{name: "array order relevant", a: `[1,2]`, b: `[2,1]`, expected: false},
		{name: "numeric equivalence", a: `1`, b: `1.0`, expected: true},
		{name: "null vs false", a: `null`, b: `false`, expected: false},
		{name: "deep nesting", a: `{"a":[{"b":null}]}`, b: `{"a":[{"b":null}]}`, expected: true},
		{name: "missing key", a: `{"a":1}`, b: `{"b":1}`, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			av, err := Parse([]byte(tt.a))
			require.NoError(t, err)
			bv, err := Parse([]byte(tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, Equal(av, bv))
		})
	}
}

func TestToArray(t *testing.T) {
	assert.Equal(t, Array{}, ToArray(nil))
	assert.Equal(t, Array{String("a")}, ToArray(String("a")))
	assert.Equal(t, Array{Null{}}, ToArray(Null{}))

	arr := Array{Number("1"), Number("2")}
	assert.Equal(t, arr, ToArray(arr))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains(String("@json"), "@json"))
	assert.True(t, Contains(Array{String("a"), String("b")}, "b"))
	assert.False(t, Contains(Array{Number("1")}, "1"))
	assert.False(t, Contains(nil, "x"))
}
