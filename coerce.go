package envcast

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net"
	"net/mail"
	"net/netip"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/shopspring/decimal"
	"k8s.io/apimachinery/pkg/api/resource"
)

// Char is the character kind: a field of this type accepts exactly one
// codepoint. Go's rune is an int32 alias, so a distinct type is needed to
// tell "single character" apart from "32-bit integer" by reflection.
type Char rune

// parserFunc takes the raw string and returns the parsed value or an error.
type parserFunc func(raw string) (any, error)

// parserFactory generates a parser function for a given type, or returns
// nil if not supported.
type parserFactory func(t reflect.Type) parserFunc

// registry of custom parsers
var customParsers = make(map[reflect.Type]parserFunc)

// registry of parser factories (checked in order)
var parserFactories []parserFactory

// RegisterParser lets users plug in custom leaf-type parsers.
// Call this in your init() or main() before running a driver.
func RegisterParser(typ reflect.Type, fn parserFunc) {
	customParsers[typ] = fn
}

// RegisterParserFactory lets users plug in factory functions that can
// generate parsers for entire categories of types (e.g., anything
// implementing TextUnmarshaler). Explicit parsers are consulted first.
func RegisterParserFactory(factory parserFactory) {
	parserFactories = append(parserFactories, factory)
}

// leafParser returns the registered or factory-generated parser for t, or
// nil when t has none.
func leafParser(t reflect.Type) parserFunc {
	if fn, ok := customParsers[t]; ok {
		return fn
	}
	for _, factory := range parserFactories {
		if fn := factory(t); fn != nil {
			return fn
		}
	}
	return nil
}

// coerce converts raw into a value assignable to t. Pointer types coerce
// their element and allocate; everything else resolves through the parser
// registry or the scalar kinds. Deterministic: same (raw, t, truth) always
// yields the same result.
func coerce(name, raw string, t reflect.Type, o *options) (reflect.Value, error) {
	if fn := leafParser(t); fn != nil {
		parsed, err := fn(raw)
		if err != nil {
			return reflect.Value{}, coercionError(name, raw, err)
		}
		rv := reflect.ValueOf(parsed)
		if rv.Type() != t && rv.Type().ConvertibleTo(t) {
			rv = rv.Convert(t)
		}
		return rv, nil
	}

	if t.Kind() == reflect.Pointer {
		ev, err := coerce(name, raw, t.Elem(), o)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(ev)
		return p, nil
	}

	parsed, err := parseScalar(raw, t, o.truth)
	if err != nil {
		return reflect.Value{}, coercionError(name, raw, err)
	}
	return reflect.ValueOf(parsed).Convert(t), nil
}

// parseScalar parses a string value into the appropriate primitive based on
// reflect.Kind. Non-leaf kinds (structs without a parser, nested maps,
// slices, channels, funcs) are structural errors, not parse errors.
func parseScalar(raw string, t reflect.Type, truth Truth) (any, error) {
	switch t.Kind() {
	case reflect.String:
		return raw, nil
	case reflect.Bool:
		v, ok := truth.parse(raw)
		if !ok {
			return nil, &CoercionError{Cause: InvalidBool}
		}
		return v, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return nil, &CoercionError{Cause: InvalidNumber, err: err}
		}
		return n, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, t.Bits())
		if err != nil {
			return nil, &CoercionError{Cause: InvalidNumber, err: err}
		}
		return n, nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return nil, &CoercionError{Cause: InvalidNumber, err: err}
		}
		return f, nil
	default:
		return nil, &UnsupportedShapeError{Shape: t.Kind().String()}
	}
}

// coercionError attaches the entry name and raw string to a parse failure,
// preserving the cause when the parser already produced a CoercionError.
// Structural errors pass through untouched apart from the name.
func coercionError(name, raw string, err error) error {
	var shape *UnsupportedShapeError
	if errors.As(err, &shape) {
		return &UnsupportedShapeError{Name: name, Shape: shape.Shape}
	}
	var ce *CoercionError
	if errors.As(err, &ce) {
		return &CoercionError{Name: name, Raw: raw, Cause: ce.Cause, err: ce.err}
	}
	return &CoercionError{Name: name, Raw: raw, Cause: InvalidValue, err: err}
}

// parsePrivateKey decodes a PEM block and extracts a private key of type K,
// accepting both the algorithm-specific PEM type and PKCS#8.
func parsePrivateKey[K any](raw, blockType string, parse func([]byte) (K, error)) (K, error) {
	var zero K
	block, _ := pem.Decode([]byte(raw))
	if block == nil {
		return zero, fmt.Errorf("invalid PEM block")
	}
	switch block.Type {
	case blockType:
		return parse(block.Bytes)
	case "PRIVATE KEY":
		keyAny, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return zero, err
		}
		key, ok := keyAny.(K)
		if !ok {
			return zero, fmt.Errorf("PKCS#8 key is not a %T", zero)
		}
		return key, nil
	default:
		return zero, fmt.Errorf("unsupported PEM block type %q", block.Type)
	}
}

func init() {
	// TextUnmarshaler factory: unlocks dozens of std-lib and third-party
	// types (uuid.UUID among them). Pointer types are left to coerce's
	// element unwrapping.
	textUnmarshalerType := reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	RegisterParserFactory(func(t reflect.Type) parserFunc {
		if t.Kind() == reflect.Pointer || !reflect.PointerTo(t).Implements(textUnmarshalerType) {
			return nil
		}
		return func(raw string) (any, error) {
			v := reflect.New(t).Interface().(encoding.TextUnmarshaler)
			if err := v.UnmarshalText([]byte(raw)); err != nil {
				return nil, err
			}
			return reflect.ValueOf(v).Elem().Interface(), nil
		}
	})

	// Char: exactly one codepoint.
	RegisterParser(reflect.TypeOf(Char(0)), func(raw string) (any, error) {
		r, size := utf8.DecodeRuneInString(raw)
		if size == 0 || size != len(raw) || (r == utf8.RuneError && size == 1) {
			return nil, &CoercionError{Cause: InvalidChar}
		}
		return Char(r), nil
	})

	RegisterParser(reflect.TypeOf(time.Duration(0)), func(raw string) (any, error) {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", raw, err)
		}
		return d, nil
	})

	// time.Time: RFC3339, with Unix seconds as fallback.
	RegisterParser(reflect.TypeOf(time.Time{}), func(raw string) (any, error) {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
		if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return time.Unix(unix, 0), nil
		}
		return nil, fmt.Errorf("invalid time %q: must be RFC3339 format or Unix seconds", raw)
	})

	RegisterParser(reflect.TypeOf(url.URL{}), func(raw string) (any, error) {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid URL %q: %w", raw, err)
		}
		return *u, nil
	})

	RegisterParser(reflect.TypeOf(slog.Level(0)), func(raw string) (any, error) {
		switch strings.ToLower(raw) {
		case "debug":
			return slog.LevelDebug, nil
		case "info":
			return slog.LevelInfo, nil
		case "warn", "warning":
			return slog.LevelWarn, nil
		case "error":
			return slog.LevelError, nil
		default:
			if level, err := strconv.Atoi(raw); err == nil {
				return slog.Level(level), nil
			}
			return nil, fmt.Errorf("invalid slog level %q: must be debug|info|warn|error or integer", raw)
		}
	})

	RegisterParser(reflect.TypeOf(big.Int{}), func(raw string) (any, error) {
		bi := new(big.Int)
		if _, ok := bi.SetString(raw, 10); !ok {
			return nil, &CoercionError{Cause: InvalidNumber}
		}
		return *bi, nil
	})

	RegisterParser(reflect.TypeOf(decimal.Decimal{}), func(raw string) (any, error) {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, &CoercionError{Cause: InvalidNumber, err: err}
		}
		return d, nil
	})

	// Network-address kinds. net.IP is a []byte under the hood, so it must
	// be registered before slice handling ever sees it.
	RegisterParser(reflect.TypeOf(net.IP{}), func(raw string) (any, error) {
		ip := net.ParseIP(raw)
		if ip == nil {
			return nil, &CoercionError{Cause: InvalidAddress}
		}
		return ip, nil
	})

	RegisterParser(reflect.TypeOf(netip.Addr{}), func(raw string) (any, error) {
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, &CoercionError{Cause: InvalidAddress, err: err}
		}
		return addr, nil
	})

	RegisterParser(reflect.TypeOf(netip.AddrPort{}), func(raw string) (any, error) {
		ap, err := netip.ParseAddrPort(raw)
		if err != nil {
			return nil, &CoercionError{Cause: InvalidAddress, err: err}
		}
		return ap, nil
	})

	RegisterParser(reflect.TypeOf(mail.Address{}), func(raw string) (any, error) {
		addr, err := mail.ParseAddress(raw)
		if err != nil {
			return nil, &CoercionError{Cause: InvalidAddress, err: err}
		}
		return *addr, nil
	})

	// Kubernetes resource units like 250m or 1.5Gi.
	RegisterParser(reflect.TypeOf(resource.Quantity{}), func(raw string) (any, error) {
		q, err := resource.ParseQuantity(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q: %w", raw, err)
		}
		return q, nil
	})

	// Private keys from PEM (for signers delivered through secrets).
	// Registered as pointers since that is their working form.
	RegisterParser(reflect.TypeOf(&rsa.PrivateKey{}), func(raw string) (any, error) {
		return parsePrivateKey(raw, "RSA PRIVATE KEY", x509.ParsePKCS1PrivateKey)
	})

	RegisterParser(reflect.TypeOf(&ecdsa.PrivateKey{}), func(raw string) (any, error) {
		return parsePrivateKey(raw, "EC PRIVATE KEY", x509.ParseECPrivateKey)
	})

	// Compiled expressions for business rules and validation.
	RegisterParser(reflect.TypeOf(&vm.Program{}), func(raw string) (any, error) {
		program, err := expr.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to compile expression %q: %w", raw, err)
		}
		return program, nil
	})
}
