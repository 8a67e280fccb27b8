package envcast

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// fieldName computes the environment variable name for a struct field: the
// `env` tag wins, then the `secret` tag, then the rename policy applied to
// the field identifier.
func fieldName(sf reflect.StructField, o *options) string {
	if name := sf.Tag.Get("env"); name != "" {
		return name
	}
	if name := sf.Tag.Get("secret"); name != "" {
		return name
	}
	return o.rename(sf.Name)
}

// optionalField reports whether absence of the field's entries is allowed.
// Pointer fields are optional the way Option<T> would be; the `optional`
// tag opts maps and slices out of the required-by-default rule.
func optionalField(sf reflect.StructField) bool {
	return sf.Type.Kind() == reflect.Pointer || sf.Tag.Get("optional") == "true"
}

// rawFor resolves the raw string for a field: the snapshot entry if one
// exists, otherwise the `default` tag.
func rawFor(s *snapshot, name string, sf reflect.StructField) (string, bool) {
	if raw, ok := s.lookup(name); ok {
		return raw, true
	}
	if def, ok := sf.Tag.Lookup("default"); ok {
		return def, true
	}
	return "", false
}

// isLeafType reports whether a single raw string can be coerced into t.
func isLeafType(t reflect.Type) bool {
	if _, ok := enumVariants[t]; ok {
		return true
	}
	if leafParser(t) != nil {
		return true
	}
	if t.Kind() == reflect.Pointer {
		return isLeafType(t.Elem())
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// shapeOf names the offending shape of a non-leaf type for error reporting.
func shapeOf(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return t.Elem().Kind().String()
	}
	return t.Kind().String()
}

// decodeStruct walks the fields of v in declaration order and fills each
// one from the snapshot. The walk is fail-fast: the first error aborts the
// whole deserialization.
func decodeStruct(s *snapshot, v reflect.Value, o *options) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)

		// Skip unexported fields
		if !fv.CanSet() {
			continue
		}

		name := fieldName(sf, o)
		ft := sf.Type

		switch {
		case ft.Kind() == reflect.Map:
			if err := decodeMap(s, name, fv, sf, o); err != nil {
				return err
			}

		case ft.Kind() == reflect.Slice && leafParser(ft) == nil:
			if err := decodeSeq(s, name, fv, sf, o); err != nil {
				return err
			}

		default:
			// Nested structs and any other non-leaf shape are rejected
			// before looking anything up: only one level is ever resolved.
			if !isLeafType(ft) {
				return &UnsupportedShapeError{Name: name, Shape: shapeOf(ft)}
			}
			raw, ok := rawFor(s, name, sf)
			if !ok {
				if optionalField(sf) {
					continue
				}
				return &MissingFieldError{Name: name}
			}
			if err := decodeValue(name, raw, fv, o); err != nil {
				return err
			}
		}
	}

	return nil
}

// decodeValue decodes one raw string into dst, a settable value of a leaf
// type: a registered enum, a registered parser type, or a scalar.
func decodeValue(name, raw string, dst reflect.Value, o *options) error {
	t := dst.Type()

	if variants, ok := enumVariants[t]; ok {
		return decodeEnum(name, raw, dst, variants)
	}
	if t.Kind() == reflect.Pointer && leafParser(t) == nil {
		if variants, ok := enumVariants[t.Elem()]; ok {
			p := reflect.New(t.Elem())
			if err := decodeEnum(name, raw, p.Elem(), variants); err != nil {
				return err
			}
			dst.Set(p)
			return nil
		}
	}

	v, err := coerce(name, raw, t, o)
	if err != nil {
		return err
	}
	dst.Set(v)
	return nil
}

// decodeMap rebuilds a map field from every entry sharing the
// name+separator prefix. The suffix becomes the key, coerced when the
// declared key kind is not a string; values are decoded per the declared
// value type. Keys must stay unique after coercion.
func decodeMap(s *snapshot, name string, fv reflect.Value, sf reflect.StructField, o *options) error {
	t := fv.Type()
	kt, vt := t.Key(), t.Elem()

	switch kt.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return &UnsupportedShapeError{Name: name, Shape: "map keyed by " + kt.Kind().String()}
	}
	if !isLeafType(vt) {
		return &UnsupportedShapeError{Name: name, Shape: "map of " + shapeOf(vt)}
	}

	entries := s.scanPrefix(name + o.sep)
	if len(entries) == 0 {
		if optionalField(sf) {
			return nil
		}
		return &MissingFieldError{Name: name}
	}

	m := reflect.MakeMapWithSize(t, len(entries))
	for _, e := range entries {
		entryName := name + o.sep + e.Name
		key, err := coerce(entryName, e.Name, kt, o)
		if err != nil {
			return err
		}
		if m.MapIndex(key).IsValid() {
			return &DuplicateKeyError{Name: name, Key: e.Name}
		}
		val := reflect.New(vt).Elem()
		if err := decodeValue(entryName, e.Value, val, o); err != nil {
			return err
		}
		m.SetMapIndex(key, val)
	}
	fv.Set(m)
	return nil
}

// decodeSeq rebuilds a slice field. When the exact variable exists its
// value parses as a comma-separated list; otherwise the entries under the
// name+separator prefix are collected by index. Indices must be exactly
// 0..n-1 (dense), and elements are assembled in ascending index order.
func decodeSeq(s *snapshot, name string, fv reflect.Value, sf reflect.StructField, o *options) error {
	t := fv.Type()
	et := t.Elem()

	if !isLeafType(et) {
		return &UnsupportedShapeError{Name: name, Shape: "slice of " + shapeOf(et)}
	}

	if raw, ok := rawFor(s, name, sf); ok {
		return decodeCSV(name, raw, fv, o)
	}

	entries := s.scanPrefix(name + o.sep)
	if len(entries) == 0 {
		if optionalField(sf) {
			return nil
		}
		return &MissingFieldError{Name: name}
	}

	byIndex := make(map[int]Pair, len(entries))
	for _, e := range entries {
		idx, err := strconv.ParseUint(e.Name, 10, strconv.IntSize-1)
		if err != nil {
			return &SequenceIndexError{Name: name, Detail: fmt.Sprintf("`%s` is not a sequence index", e.Name)}
		}
		if _, dup := byIndex[int(idx)]; dup {
			return &SequenceIndexError{Name: name, Detail: fmt.Sprintf("duplicate index %d", idx)}
		}
		byIndex[int(idx)] = e
	}

	slice := reflect.MakeSlice(t, len(byIndex), len(byIndex))
	for i := 0; i < len(byIndex); i++ {
		e, ok := byIndex[i]
		if !ok {
			return &SequenceIndexError{Name: name, Detail: fmt.Sprintf("missing index %d, indices must be contiguous from 0", i)}
		}
		if err := decodeValue(name+o.sep+e.Name, e.Value, slice.Index(i), o); err != nil {
			return err
		}
	}
	fv.Set(slice)
	return nil
}

// decodeCSV parses a comma-separated list into a slice field. Empty parts
// are skipped, so an empty string yields an empty slice.
func decodeCSV(name, raw string, fv reflect.Value, o *options) error {
	t := fv.Type()
	slice := reflect.MakeSlice(t, 0, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		elem := reflect.New(t.Elem()).Elem()
		if err := decodeValue(name, part, elem, o); err != nil {
			return err
		}
		slice = reflect.Append(slice, elem)
	}
	fv.Set(slice)
	return nil
}
