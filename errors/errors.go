package errors

import (
	stderrors "errors"
	"fmt"
)

// Code identifies one rule of the JSON-LD grammar that a document or
// context violated. The set of codes is closed; processing never invents
// ad-hoc failures.
type Code string

// Context processing and term definition codes.
const (
	InvalidLocalContext         Code = "invalid local context"
	InvalidContextNullification Code = "invalid context nullification"
	LoadingRemoteContextFailed  Code = "loading remote context failed"
	InvalidRemoteContext        Code = "invalid remote context"
	ContextOverflow             Code = "context overflow"
	InvalidVersionValue         Code = "invalid @version value"
	ProcessingModeConflict      Code = "processing mode conflict"
	InvalidContextEntry         Code = "invalid context entry"
	InvalidImportValue          Code = "invalid @import value"
	InvalidBaseIRI              Code = "invalid base IRI"
	InvalidVocabMapping         Code = "invalid vocab mapping"
	InvalidDefaultLanguage      Code = "invalid default language"
	InvalidBaseDirection        Code = "invalid base direction"
	InvalidPropagateValue       Code = "invalid @propagate value"
	InvalidProtectedValue       Code = "invalid @protected value"
	InvalidTermDefinition       Code = "invalid term definition"
	KeywordRedefinition         Code = "keyword redefinition"
	ProtectedTermRedefinition   Code = "protected term redefinition"
	CyclicIRIMapping            Code = "cyclic IRI mapping"
	InvalidIRIMapping           Code = "invalid IRI mapping"
	InvalidTypeMapping          Code = "invalid type mapping"
	InvalidContainerMapping     Code = "invalid container mapping"
	InvalidKeywordAlias         Code = "invalid keyword alias"
	InvalidReverseProperty      Code = "invalid reverse property"
	InvalidPrefixValue          Code = "invalid @prefix value"
	InvalidNestValue            Code = "invalid @nest value"
	InvalidScopedContext        Code = "invalid scoped context"
	InvalidLanguageMapping      Code = "invalid language mapping"
)

// Expansion codes.
const (
	CollidingKeywords           Code = "colliding keywords"
	InvalidIDValue              Code = "invalid @id value"
	InvalidTypeValue            Code = "invalid type value"
	InvalidValueObject          Code = "invalid value object"
	InvalidValueObjectValue     Code = "invalid value object value"
	InvalidTypedValue           Code = "invalid typed value"
	InvalidLanguageTaggedString Code = "invalid language-tagged string"
	InvalidLanguageTaggedValue  Code = "invalid language-tagged value"
	InvalidLanguageMapValue     Code = "invalid language map value"
	InvalidIndexValue           Code = "invalid @index value"
	InvalidSetOrListObject      Code = "invalid set or list object"
	InvalidReverseValue         Code = "invalid @reverse value"
	InvalidReversePropertyMap   Code = "invalid reverse property map"
	InvalidReversePropertyValue Code = "invalid reverse property value"
	InvalidIncludedValue        Code = "invalid @included value"
)

// Document loading codes.
const (
	LoadingDocumentFailed Code = "loading document failed"
)

// String returns the specification error key for the code.
func (c Code) String() string {
	return string(c)
}

// Error is a JSON-LD processing failure. It pairs a Code with optional
// detail describing the offending value, and optionally wraps a lower
// level cause (for example the transport error behind a failed remote
// context dereference).
type Error struct {
	Code   Code
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Detail, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	default:
		return string(e.Code)
	}
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error carrying the same code, which
// makes sentinel-style comparisons work through wrapped chains:
//
//	errors.Is(err, &Error{Code: InvalidIRIMapping})
func (e *Error) Is(target error) bool {
	var t *Error
	if !stderrors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New creates an error for the given code with a detail message.
func New(code Code, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}

// Newf creates an error for the given code with a formatted detail
// message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// Wrap creates an error for the given code wrapping an underlying cause.
func Wrap(code Code, err error, detail string) *Error {
	return &Error{Code: code, Detail: detail, Err: err}
}

// CodeOf extracts the JSON-LD error code from err. It reports false when
// err carries no code (for example a bare transport error).
func CodeOf(err error) (Code, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// HasCode reports whether err carries the given code anywhere in its
// chain.
func HasCode(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}
