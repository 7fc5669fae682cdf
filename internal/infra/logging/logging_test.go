//go:build !integration

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestWith_AttachesContextIDs(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	ctx := WithTgID(WithTraceID(context.Background(), "trace-1"), 1001)
	With(ctx, &base).Info().Msg("hello")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if got["trace_id"] != "trace-1" {
		t.Errorf("expected trace_id, got %v", got["trace_id"])
	}
	if got["tg_id"] != float64(1001) {
		t.Errorf("expected tg_id 1001, got %v", got["tg_id"])
	}
}

func TestRedact(t *testing.T) {
	if got := Redact("short", false); got != "***" {
		t.Errorf("wanted ***, got %s", got)
	}
	if got := Redact("averylongsecret", false); got != "aver...et" {
		t.Errorf("wanted aver...et, got %s", got)
	}
	if got := Redact("averylongsecret", true); got != "averylongsecret" {
		t.Errorf("dev mode must not redact, got %s", got)
	}
}
