package envcast

import "strings"

// Truth selects the vocabulary accepted when coercing a string into a bool.
// Comparison is always case-insensitive. Exactly one Truth is active per
// driver call; it is a pure set-membership check with no state.
type Truth int

const (
	// Permissive accepts the usual shorthand: true/t/yes/y/on/1 and
	// false/f/no/n/off/0. This is the default.
	Permissive Truth = iota
	// Strict accepts only "true" and "false".
	Strict
)

// parse reports the boolean value of raw and whether raw belongs to the
// vocabulary at all.
func (t Truth) parse(raw string) (value, ok bool) {
	switch strings.ToLower(raw) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	if t == Strict {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "t", "yes", "y", "on", "1":
		return true, true
	case "f", "no", "n", "off", "0":
		return false, true
	}
	return false, false
}
