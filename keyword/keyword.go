package keyword

// Reserved JSON-LD keywords.
const (
	Base      = "@base"
	Container = "@container"
	Context   = "@context"
	Direction = "@direction"
	Graph     = "@graph"
	ID        = "@id"
	Import    = "@import"
	Included  = "@included"
	Index     = "@index"
	JSON      = "@json"
	Language  = "@language"
	List      = "@list"
	Nest      = "@nest"
	None      = "@none"
	Prefix    = "@prefix"
	Propagate = "@propagate"
	Protected = "@protected"
	Reverse   = "@reverse"
	Set       = "@set"
	Type      = "@type"
	Value     = "@value"
	Version   = "@version"
	Vocab     = "@vocab"
)

// Framing keywords, recognized only when expanding a frame document.
const (
	Default     = "@default"
	Embed       = "@embed"
	Explicit    = "@explicit"
	OmitDefault = "@omitDefault"
	RequireAll  = "@requireAll"
)

// keywords holds every reserved token, including framing keywords.
var keywords = map[string]struct{}{
	Base: {}, Container: {}, Context: {}, Direction: {}, Graph: {},
	ID: {}, Import: {}, Included: {}, Index: {}, JSON: {}, Language: {},
	List: {}, Nest: {}, None: {}, Prefix: {}, Propagate: {}, Protected: {},
	Reverse: {}, Set: {}, Type: {}, Value: {}, Version: {}, Vocab: {},
	Default: {}, Embed: {}, Explicit: {}, OmitDefault: {}, RequireAll: {},
}

// IsKeyword reports whether value is one of the reserved JSON-LD
// keywords.
func IsKeyword(value string) bool {
	_, ok := keywords[value]
	return ok
}

// HasForm reports whether value looks like a keyword: an "@" followed by
// one or more ASCII letters. Values with keyword form that are not actual
// keywords must be ignored by processors so future keywords can be
// introduced without breaking existing documents.
func HasForm(value string) bool {
	if len(value) < 2 || value[0] != '@' {
		return false
	}
	for i := 1; i < len(value); i++ {
		c := value[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
