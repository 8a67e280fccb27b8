package envcast

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// FromPairs deserializes an instance of T from an ordered list of
// name/value pairs. This is the core entry point; everything else wraps it.
//
// The pair list is snapshotted before the walk begins: the walk itself does
// no I/O and never observes later changes to the source. When a name
// appears twice the first occurrence wins. On error the zero value of T is
// returned, never a partially filled one.
func FromPairs[T any](pairs []Pair, opts ...Option) (T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	if rv.Kind() != reflect.Struct {
		return out, fmt.Errorf("target must be a struct, got %T", out)
	}
	if err := decodeStruct(newSnapshot(pairs), rv, newOptions(opts)); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// FromEnv deserializes an instance of T from the environment variables of
// the current process.
//
//	type Config struct {
//	    Timeout time.Duration // TIMEOUT
//	    Host    netip.Addr    // HOST
//	}
//
//	cfg, err := envcast.FromEnv[Config]()
func FromEnv[T any](opts ...Option) (T, error) {
	return FromPairs[T](environPairs(), opts...)
}

// FromEnvPrefixed deserializes an instance of T from the environment
// variables of the current process that carry the given prefix. The prefix
// is stripped before field names are matched, so with prefix "APP_" the
// field Timeout reads APP_TIMEOUT.
func FromEnvPrefixed[T any](prefix string, opts ...Option) (T, error) {
	var pairs []Pair
	for _, p := range environPairs() {
		if name, ok := strings.CutPrefix(p.Name, prefix); ok {
			pairs = append(pairs, Pair{Name: name, Value: p.Value})
		}
	}
	return FromPairs[T](pairs, opts...)
}

// FromDotenv deserializes an instance of T from the process environment
// merged with a .env file. Process variables take precedence; a missing or
// unreadable .env file is ignored and the process environment is used
// alone. Path defaults to ".env".
func FromDotenv[T any](path string, opts ...Option) (T, error) {
	if path == "" {
		path = ".env"
	}

	pairs := environPairs()
	if fileVars, err := godotenv.Read(path); err == nil {
		names := make([]string, 0, len(fileVars))
		for name := range fileVars {
			names = append(names, name)
		}
		sort.Strings(names)
		// Appended after the process environment, so first-wins keeps the
		// process value for any name defined in both.
		for _, name := range names {
			pairs = append(pairs, Pair{Name: name, Value: fileVars[name]})
		}
	}
	return FromPairs[T](pairs, opts...)
}

func environPairs() []Pair {
	environ := os.Environ()
	pairs := make([]Pair, 0, len(environ))
	for _, kv := range environ {
		name, value, _ := strings.Cut(kv, "=")
		pairs = append(pairs, Pair{Name: name, Value: value})
	}
	return pairs
}
