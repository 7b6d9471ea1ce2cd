package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"umabank.org/internal/obs"
)

func TestLogEvent(t *testing.T) {
	logger := obs.Logger()
	original := logger.Writer()
	logger.SetFlags(0)
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(original)

	ctx := WithSessionID(context.Background(), "sess-123")

	if err := LogEvent(ctx, "ledger.transfer", map[string]any{"from": 1000, "to": 1001}); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	line := buf.String()
	if line == "" {
		t.Fatal("expected log output")
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log not valid JSON: %v", err)
	}
	if entry["type"] != "audit" {
		t.Fatalf("unexpected type: %v", entry["type"])
	}
	if entry["event"] != "ledger.transfer" {
		t.Fatalf("unexpected event: %v", entry["event"])
	}
	if entry["session_id"] != "sess-123" {
		t.Fatalf("unexpected session id: %v", entry["session_id"])
	}
	if id, _ := entry["id"].(string); len(id) != 26 {
		t.Fatalf("expected 26-char ULID event id, got %v", entry["id"])
	}
	fields, ok := entry["fields"].(map[string]any)
	if !ok || fields["from"] != float64(1000) {
		t.Fatalf("fields missing or incorrect: %v", entry["fields"])
	}
}

func TestLogEventRequiresName(t *testing.T) {
	if err := LogEvent(context.Background(), "  ", nil); err == nil {
		t.Fatal("expected error for blank event name")
	}
}
