package json

import "strconv"

// Kind identifies the JSON type of a Value.
type Kind int

// The six JSON value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is one JSON value. The implementations are exactly Null, Bool,
// Number, String, Array, and *Object; the set is closed.
type Value interface {
	// Kind returns the JSON type tag of the value.
	Kind() Kind
}

// Null is the JSON null literal.
type Null struct{}

// Kind implements Value.
func (Null) Kind() Kind { return KindNull }

// Bool is a JSON boolean.
type Bool bool

// Kind implements Value.
func (Bool) Kind() Kind { return KindBool }

// Number is a JSON number, stored as its lexical form so values survive
// a parse/serialize round trip without losing precision.
type Number string

// Kind implements Value.
func (Number) Kind() Kind { return KindNumber }

// Float64 returns the number as a float64.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// Int64 returns the number as an int64 if it is an integer lexeme.
func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

// String returns the lexical form.
func (n Number) String() string { return string(n) }

// String is a JSON string.
type String string

// Kind implements Value.
func (String) Kind() Kind { return KindString }

// Array is an ordered JSON array.
type Array []Value

// Kind implements Value.
func (Array) Kind() Kind { return KindArray }
