package json

import stdjson "encoding/json"

// Encode serializes v without insignificant whitespace. Object keys are
// written in declaration order, so two structurally identical values
// encode to identical bytes.
func Encode(v Value) []byte {
	return appendValue(nil, v)
}

func appendValue(dst []byte, v Value) []byte {
	switch t := v.(type) {
	case nil, Null:
		return append(dst, "null"...)
	case Bool:
		if t {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case Number:
		return append(dst, string(t)...)
	case String:
		b, _ := stdjson.Marshal(string(t))
		return append(dst, b...)
	case Array:
		dst = append(dst, '[')
		for i, item := range t {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendValue(dst, item)
		}
		return append(dst, ']')
	case *Object:
		dst = append(dst, '{')
		for i, key := range t.keys {
			if i > 0 {
				dst = append(dst, ',')
			}
			kb, _ := stdjson.Marshal(key)
			dst = append(dst, kb...)
			dst = append(dst, ':')
			dst = appendValue(dst, t.entries[key])
		}
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}
