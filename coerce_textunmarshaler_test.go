package envcast

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// logFormat implements encoding.TextUnmarshaler and picks up parsing
// through the factory without any explicit registration.
type logFormat struct {
	kind string
}

func (f *logFormat) UnmarshalText(text []byte) error {
	switch s := strings.ToLower(string(text)); s {
	case "json", "text", "logfmt":
		f.kind = s
		return nil
	default:
		return fmt.Errorf("unknown log format %q", text)
	}
}

func TestTextUnmarshalerField(t *testing.T) {
	type config struct {
		Format logFormat
	}

	cfg, err := FromPairs[config]([]Pair{{"FORMAT", "JSON"}})
	if err != nil {
		t.Fatalf("FromPairs failed: %v", err)
	}
	if cfg.Format.kind != "json" {
		t.Errorf("Format = %q; want %q", cfg.Format.kind, "json")
	}

	_, err = FromPairs[config]([]Pair{{"FORMAT", "xml"}})
	if err == nil {
		t.Error("FromPairs should have failed with unknown format")
	}
}

func TestUUIDField(t *testing.T) {
	type config struct {
		RequestID uuid.UUID  `env:"REQUEST_ID"`
		TraceID   *uuid.UUID `env:"TRACE_ID"`
	}

	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	cfg, err := FromPairs[config]([]Pair{
		{"REQUEST_ID", id.String()},
		{"TRACE_ID", id.String()},
	})
	if err != nil {
		t.Fatalf("FromPairs failed: %v", err)
	}
	if cfg.RequestID != id {
		t.Errorf("RequestID = %v; want %v", cfg.RequestID, id)
	}
	if cfg.TraceID == nil || *cfg.TraceID != id {
		t.Errorf("TraceID = %v; want %v", cfg.TraceID, id)
	}
}

func TestUUIDInvalid(t *testing.T) {
	type config struct {
		RequestID uuid.UUID `env:"REQUEST_ID"`
	}

	_, err := FromPairs[config]([]Pair{{"REQUEST_ID", "not-a-uuid"}})
	if err == nil {
		t.Error("FromPairs should have failed with invalid UUID")
	}
}
