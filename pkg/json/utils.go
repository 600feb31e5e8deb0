package json

// IsNull reports whether v is an explicit JSON null. A nil (absent)
// value is not null.
func IsNull(v Value) bool {
	_, ok := v.(Null)
	return ok
}

// IsScalar reports whether v is a string, number, or boolean.
func IsScalar(v Value) bool {
	switch v.(type) {
	case Bool, Number, String:
		return true
	default:
		return false
	}
}

// IsString reports whether v is a JSON string.
func IsString(v Value) bool {
	_, ok := v.(String)
	return ok
}

// AsString returns the Go string behind v when v is a JSON string.
func AsString(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// AsObject returns v as an object when it is one.
func AsObject(v Value) (*Object, bool) {
	o, ok := v.(*Object)
	return o, ok
}

// AsArray returns v as an array when it is one.
func AsArray(v Value) (Array, bool) {
	a, ok := v.(Array)
	return a, ok
}

// AsBool returns the Go bool behind v when v is a JSON boolean.
func AsBool(v Value) (bool, bool) {
	b, ok := v.(Bool)
	return bool(b), ok
}

// ToArray coerces v to array form: an array stays itself, nil becomes an
// empty array, anything else becomes a one-element array.
func ToArray(v Value) Array {
	switch t := v.(type) {
	case nil:
		return Array{}
	case Array:
		return t
	default:
		return Array{v}
	}
}

// Contains reports whether v is the string needle, or an array containing
// it.
func Contains(v Value, needle string) bool {
	switch t := v.(type) {
	case String:
		return string(t) == needle
	case Array:
		for _, item := range t {
			if s, ok := item.(String); ok && string(s) == needle {
				return true
			}
		}
	}
	return false
}
