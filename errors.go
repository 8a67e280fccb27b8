package envcast

import (
	"fmt"
	"strings"
)

// CoercionCause identifies why a raw string could not be coerced into the
// kind a field declared.
type CoercionCause int

const (
	// InvalidValue covers failures of registered parsers (URLs, durations,
	// decimals and so on) where the underlying error carries the detail.
	InvalidValue CoercionCause = iota
	// InvalidNumber means the raw string did not parse as the declared
	// integer or float width.
	InvalidNumber
	// InvalidBool means the raw string is outside the active Truth
	// vocabulary.
	InvalidBool
	// InvalidChar means the raw string is not exactly one codepoint.
	InvalidChar
	// InvalidAddress means the raw string did not parse as a network
	// address.
	InvalidAddress
)

func (c CoercionCause) String() string {
	switch c {
	case InvalidNumber:
		return "number"
	case InvalidBool:
		return "boolean"
	case InvalidChar:
		return "character"
	case InvalidAddress:
		return "address"
	default:
		return "value"
	}
}

// CoercionError reports that the raw string of a single environment entry
// could not be converted into the kind its field declared. Name is the full
// environment variable name, including any map or sequence suffix.
type CoercionError struct {
	Name  string
	Raw   string
	Cause CoercionCause
	err   error
}

func (e *CoercionError) Error() string {
	msg := fmt.Sprintf("%s: `%s` is not a valid %s", e.Name, e.Raw, e.Cause)
	if e.err != nil {
		msg += ": " + e.err.Error()
	}
	return msg
}

func (e *CoercionError) Unwrap() error { return e.err }

// MissingFieldError reports a required field with no matching environment
// entry.
type MissingFieldError struct {
	Name string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing environment variable `%s`", e.Name)
}

// UnknownVariantError reports an enum value that matched none of the
// registered variant names.
type UnknownVariantError struct {
	Name       string
	Raw        string
	Candidates []string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("%s: `%s` matches no variant, expected one of %s",
		e.Name, e.Raw, strings.Join(e.Candidates, ", "))
}

// UnsupportedVariantShapeError reports an enum registration on a type whose
// kind cannot carry a unit variant (anything but an integer or string kind).
type UnsupportedVariantShapeError struct {
	Type string
}

func (e *UnsupportedVariantShapeError) Error() string {
	return fmt.Sprintf("`%s` cannot hold unit variants, only integer- and string-kinded types can", e.Type)
}

// UnsupportedShapeError reports a field whose declared shape cannot be
// rebuilt from flat string entries: nested structs, nested maps or
// sequences, channels, funcs and the like.
type UnsupportedShapeError struct {
	Name  string
	Shape string
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("%s: `%s` cannot be deserialized from environment variables", e.Name, e.Shape)
}

// DuplicateKeyError reports two entries of a map field whose suffixes
// coerced to the same key.
type DuplicateKeyError struct {
	Name string
	Key  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: duplicate map key `%s`", e.Name, e.Key)
}

// SequenceIndexError reports sequence entries whose suffixes are not a
// dense run of indices starting at zero.
type SequenceIndexError struct {
	Name   string
	Detail string
}

func (e *SequenceIndexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Detail)
}
