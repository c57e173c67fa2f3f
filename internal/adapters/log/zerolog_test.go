package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/keycalc/internal/ports"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf))

	z.Info("calculated",
		ports.String("op", "Add"),
		ports.Float64("result", 2.5),
		ports.Int("attempt", 1),
		ports.Bool("offline", true),
		ports.Duration("took", time.Millisecond),
		ports.Err(errors.New("boom")),
	)

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal log line: %v (%s)", err, buf.String())
	}

	if got["message"] != "calculated" || got["level"] != "info" {
		t.Errorf("unexpected envelope: %v", got)
	}
	if got["op"] != "Add" || got["result"] != 2.5 || got["attempt"] != float64(1) || got["offline"] != true {
		t.Errorf("unexpected fields: %v", got)
	}
	if got["error"] != "boom" {
		t.Errorf("error field = %v, want boom", got["error"])
	}
}

func TestZerologAdapter_With(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf)).With(ports.String("session", "s-1"))

	z.Warn("tripped")

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if got["session"] != "s-1" || got["level"] != "warn" {
		t.Errorf("unexpected log line: %v", got)
	}
}
