package envcast

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// mask returns a masked version of the secret string. It keeps the first 3
// characters visible and replaces the rest with asterisks; strings of 3 or
// fewer characters are fully masked.
func mask(secret string) string {
	const keep = 3
	n := len(secret)
	if n <= keep {
		return strings.Repeat("*", n)
	}
	return secret[:keep] + strings.Repeat("*", n-keep)
}

// maskURLPassword replaces the password component of a URL value for safe
// logging.
func maskURLPassword(u url.URL) string {
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "***")
		}
	}
	return u.String()
}

// PrettyString returns a JSON-formatted rendering of a deserialized struct
// with secret fields masked, keyed by environment variable name. Intended
// for logging the effective configuration at startup.
func PrettyString(c any, opts ...Option) string {
	rv := reflect.ValueOf(c)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Sprintf("%T is not a struct", c)
	}

	o := newOptions(opts)
	t := rv.Type()
	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := rv.Field(i)
		if !fv.CanInterface() {
			continue
		}
		out[fieldName(sf, o)] = renderField(fv, sf.Tag.Get("secret") != "")
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Sprintf("error pretty-printing value: %v", err)
	}
	return string(b)
}

func renderField(fv reflect.Value, secret bool) any {
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return nil
		}
		fv = fv.Elem()
	}

	if u, ok := fv.Interface().(url.URL); ok {
		return maskURLPassword(u)
	}

	switch {
	case secret && fv.Kind() == reflect.String:
		return mask(fv.String())
	case secret:
		return "***"
	case fv.Kind() == reflect.Slice && fv.Type() != reflect.TypeOf([]byte(nil)):
		items := make([]any, fv.Len())
		for i := range items {
			items[i] = renderField(fv.Index(i), false)
		}
		return items
	case fv.Kind() == reflect.Map:
		m := make(map[string]any, fv.Len())
		iter := fv.MapRange()
		for iter.Next() {
			m[fmt.Sprint(iter.Key().Interface())] = renderField(iter.Value(), false)
		}
		return m
	default:
		return fv.Interface()
	}
}

// FieldSetting describes one field of a target struct: where its value
// comes from and how absence is treated.
type FieldSetting struct {
	FieldName string // struct field name
	EnvVar    string // environment variable name after tags and rename
	Type      string // Go type name
	Default   string // default tag value, if any
	Required  bool   // absence is an error
	Secret    bool   // masked in PrettyString output
}

// Settings returns metadata about every field the drivers would try to
// fill, in declaration order. Useful for generating --help style listings
// of an application's environment surface.
func Settings(config any, opts ...Option) []FieldSetting {
	rv := reflect.ValueOf(config)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	o := newOptions(opts)
	t := rv.Type()
	settings := make([]FieldSetting, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !rv.Field(i).CanInterface() {
			continue
		}
		_, hasDefault := sf.Tag.Lookup("default")
		settings = append(settings, FieldSetting{
			FieldName: sf.Name,
			EnvVar:    fieldName(sf, o),
			Type:      sf.Type.String(),
			Default:   sf.Tag.Get("default"),
			Required:  !optionalField(sf) && !hasDefault,
			Secret:    sf.Tag.Get("secret") != "",
		})
	}
	return settings
}

// FilterSettings returns the settings matching the predicate.
func FilterSettings(settings []FieldSetting, predicate func(FieldSetting) bool) []FieldSetting {
	var filtered []FieldSetting
	for _, setting := range settings {
		if predicate(setting) {
			filtered = append(filtered, setting)
		}
	}
	return filtered
}

// SecretFields returns all fields marked as secrets.
func SecretFields(config any) []FieldSetting {
	return FilterSettings(Settings(config), func(s FieldSetting) bool {
		return s.Secret
	})
}

// RequiredFields returns all fields whose absence fails the walk.
func RequiredFields(config any) []FieldSetting {
	return FilterSettings(Settings(config), func(s FieldSetting) bool {
		return s.Required
	})
}
