//go:build !integration

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	ctx := WithTraceID(context.Background(), "trace-1")
	ctx = WithSessionID(ctx, "sess-1")
	ctx = WithFlow(ctx, "passcode")
	With(ctx, &base).Info().Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	for k, want := range map[string]string{"trace_id": "trace-1", "session_id": "sess-1", "flow": "passcode"} {
		if line[k] != want {
			t.Errorf("expected %s=%q, got %v", k, want, line[k])
		}
	}
	if TraceIDFrom(ctx) != "trace-1" {
		t.Errorf("unexpected trace id %q", TraceIDFrom(ctx))
	}
}

func TestRedact(t *testing.T) {
	if got := Redact("someone@example.com", true); got != "someone@example.com" {
		t.Errorf("dev mode must not redact, got %q", got)
	}
	if got := Redact("a@b.com", false); got != "***" {
		t.Errorf("expected short values to be masked, got %q", got)
	}
	if got := Redact("someone@example.com", false); got != "some...om" {
		t.Errorf("unexpected preview %q", got)
	}
}
