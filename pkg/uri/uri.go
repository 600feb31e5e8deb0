package uri

import (
	"net/url"
	"strings"
)

// IsAbsolute reports whether value parses as an absolute IRI, i.e. it
// carries a scheme.
func IsAbsolute(value string) bool {
	if value == "" {
		return false
	}
	u, err := url.Parse(value)
	return err == nil && u.IsAbs()
}

// IsBlankNode reports whether value is a blank node identifier ("_:"
// prefixed). Blank node identifiers are never resolved against a base.
func IsBlankNode(value string) bool {
	return strings.HasPrefix(value, "_:")
}

// Resolve resolves ref against base per RFC 3986. When base is absent or
// unparsable the reference is returned untouched; callers treat the
// result as unresolvable if it is still relative.
func Resolve(base, ref string) string {
	if base == "" {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// EndsWithGenDelim reports whether the last byte of value is one of the
// URI generic delimiters ":/?#[]@". A term may only act as a compact-IRI
// prefix when its mapping ends in a gen-delim or is a blank node.
func EndsWithGenDelim(value string) bool {
	if value == "" {
		return false
	}
	return strings.ContainsRune(":/?#[]@", rune(value[len(value)-1]))
}
