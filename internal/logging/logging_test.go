package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "hr-service")

	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered at warn level")
	}
	log.Warn().Str("user_id", "u1").Msg("visible")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if line["service"] != "hr-service" || line["user_id"] != "u1" || line["level"] != "warn" {
		t.Fatalf("unexpected line: %v", line)
	}
	if _, ok := line["time"]; !ok {
		t.Fatalf("expected timestamp")
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "chatty", "hr-service")
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	if bytes.Count(buf.Bytes(), []byte("\n")) != 1 {
		t.Fatalf("expected exactly one line, got %q", buf.String())
	}
}
