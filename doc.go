// Package envcast deserializes a flat table of environment-variable
// name/value pairs into a strongly-typed struct, guided entirely by the
// shape of the target type.
//
// The source format carries no type information at all, so every conversion
// is inferred from the requested field type and validated deterministically:
// numbers through the strconv parsers at the declared width, booleans
// through a pluggable truthy/falsy vocabulary, network addresses through
// the net and netip parsers, enums by case-insensitive variant matching,
// and maps and slices by scanning the entries that share the field's
// name prefix.
//
// # Drivers
//
//   - FromPairs: the core entry point, deserializes from an explicit pair
//     list (a snapshot; the process environment is never consulted)
//   - FromEnv: reads os.Environ() and calls FromPairs
//   - FromEnvPrefixed: like FromEnv, with a fixed name prefix stripped
//   - FromDotenv: merges a .env file below the process environment
//
// # Field naming
//
// A field's variable name is its identifier converted by the rename policy
// (ScreamingSnake by default: LogLevel reads LOG_LEVEL), overridable per
// field with an `env:"NAME"` or `secret:"NAME"` tag. Map and sequence
// fields read every variable named <NAME><SEP><SUFFIX>, with the separator
// set by WithSeparator (default "_").
//
// # Required and optional fields
//
// Fields are required: a missing variable is a MissingFieldError. A field
// is optional when it is a pointer (left nil when absent), carries a
// `default:"value"` tag, or carries `optional:"true"`.
//
// # Supported field types
//
//   - string, bool, all int/uint widths, float32, float64
//   - Char (exactly one codepoint)
//   - maps and slices of the above (one level; slices accept either
//     indexed variables NAME_0, NAME_1, ... or a comma-separated NAME)
//   - time.Duration, time.Time, url.URL, mail.Address, slog.Level
//   - net.IP, netip.Addr, netip.AddrPort
//   - big.Int, decimal.Decimal, resource.Quantity, uuid.UUID
//   - *rsa.PrivateKey, *ecdsa.PrivateKey (PEM), *vm.Program (expr)
//   - enums registered with RegisterEnum
//   - any type implementing encoding.TextUnmarshaler
//
// Nested structs are deliberately not resolved; a struct field that is not
// a registered leaf type fails with UnsupportedShapeError.
//
// # Errors
//
// The walk is fail-fast: the first mismatch in declaration order aborts the
// whole deserialization and is returned as the sole result, never a
// partially filled struct. Every failure is one of the exported error
// types (MissingFieldError, CoercionError, UnknownVariantError,
// UnsupportedVariantShapeError, UnsupportedShapeError, DuplicateKeyError,
// SequenceIndexError), so callers can match with errors.As.
//
// # Quick start
//
//	type Config struct {
//	    Host    netip.Addr     // HOST
//	    Port    uint16         // PORT
//	    Debug   bool           `default:"false"`
//	    Timeout time.Duration  `env:"TIMEOUT" default:"30s"`
//	    APIKey  string         `secret:"API_KEY"`
//	    Tags    map[string]int `optional:"true"` // TAGS_A, TAGS_B, ...
//	    Origins []url.URL      `optional:"true"` // ORIGINS_0, ORIGINS_1, ...
//	}
//
//	cfg, err := envcast.FromEnv[Config]()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Println(envcast.PrettyString(cfg))
package envcast
