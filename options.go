package envcast

import (
	"strings"
	"unicode"
)

// RenameFunc maps a struct field identifier to the environment variable
// name looked up for it. An `env` or `secret` struct tag overrides the
// rename policy for individual fields.
type RenameFunc func(field string) string

type options struct {
	sep    string
	truth  Truth
	rename RenameFunc
}

func newOptions(opts []Option) *options {
	o := &options{
		sep:    "_",
		truth:  Permissive,
		rename: ScreamingSnake,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures a single driver call. Options are construction-time
// values; there is no process-wide configuration.
type Option func(*options)

// WithSeparator sets the string between a field's variable name and the
// key or index suffix of its map and sequence entries. Default "_".
func WithSeparator(sep string) Option {
	return func(o *options) { o.sep = sep }
}

// WithTruth selects the boolean vocabulary. Default Permissive.
func WithTruth(t Truth) Option {
	return func(o *options) { o.truth = t }
}

// WithRename sets the field-name-to-variable-name policy. Default
// ScreamingSnake.
func WithRename(fn RenameFunc) Option {
	return func(o *options) { o.rename = fn }
}

// ScreamingSnake converts a Go field identifier to SCREAMING_SNAKE_CASE:
// "Port" -> "PORT", "LogLevel" -> "LOG_LEVEL", "HTTPTimeout" ->
// "HTTP_TIMEOUT". It is the default rename policy.
func ScreamingSnake(field string) string {
	var b strings.Builder
	runes := []rune(field)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			// Break before a new word: lower->Upper, or the last
			// upper of an acronym run followed by a lower.
			if !unicode.IsUpper(prev) || (i+1 < len(runes) && unicode.IsLower(runes[i+1])) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
