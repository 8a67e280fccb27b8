package envcast

import (
	"reflect"
	"strings"
)

// registry of enum variant names, keyed by the named Go type that stands in
// for the enum. Populated through RegisterEnum, usually from init().
var enumVariants = make(map[reflect.Type][]string)

// RegisterEnum declares the unit-variant vocabulary of a named type. For an
// integer-kinded type the resolved value is the variant's position in the
// declared order; for a string-kinded type it is the canonical variant name.
// Call this in your init() or main() before running a driver.
//
//	type Level int
//
//	const (
//	    Low Level = iota
//	    Medium
//	    High
//	)
//
//	envcast.RegisterEnum(reflect.TypeOf(Level(0)), "low", "medium", "high")
func RegisterEnum(typ reflect.Type, variants ...string) {
	enumVariants[typ] = variants
}

// resolveVariant matches raw case-insensitively against the declared
// variant names. Matching is exact: no prefixes, no fuzzing.
func resolveVariant(raw string, variants []string) (int, bool) {
	for i, v := range variants {
		if strings.EqualFold(raw, v) {
			return i, true
		}
	}
	return 0, false
}

// decodeEnum resolves raw into dst, a settable value of a registered enum
// type. A registration on a type that is neither integer- nor string-kinded
// cannot describe a unit variant and fails before any matching is
// attempted.
func decodeEnum(name, raw string, dst reflect.Value, variants []string) error {
	t := dst.Type()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.String:
	default:
		return &UnsupportedVariantShapeError{Type: t.String()}
	}

	idx, ok := resolveVariant(raw, variants)
	if !ok {
		return &UnknownVariantError{Name: name, Raw: raw, Candidates: variants}
	}

	switch t.Kind() {
	case reflect.String:
		dst.SetString(variants[idx])
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		dst.SetUint(uint64(idx))
	default:
		dst.SetInt(int64(idx))
	}
	return nil
}
