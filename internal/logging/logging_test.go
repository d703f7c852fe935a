package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestConfigureAndWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test-svc"})

	log := WithComponent("solver")
	log.Info().Int("yield", 42).Msg("done")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output not JSON: %v (%q)", err, buf.String())
	}
	if entry["service"] != "test-svc" {
		t.Fatalf("service field missing: %v", entry)
	}
	if entry["component"] != "solver" {
		t.Fatalf("component field missing: %v", entry)
	}
	if entry["message"] != "done" {
		t.Fatalf("message mismatch: %v", entry)
	}
}
