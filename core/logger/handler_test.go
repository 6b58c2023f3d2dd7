package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"log/slog"
)

func newTestLogger(buf *bytes.Buffer, format logFormat) *slog.Logger {
	handler := newStructuredHandler(handlerConfig{
		level:  slog.LevelDebug,
		writer: newSyncWriter(buf),
		format: format,
	})
	return slog.New(handler)
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newTestLogger(buf, formatKV).With("component", "app")

	ctx := WithRID(context.Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)

	log.LogAttrs(ctx, slog.LevelInfo, "",
		slog.String("event", "test.event"),
		slog.String("status", "ok"),
		slog.String("cause", "unit"),
	)

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected log line")
	}
	tokens := strings.Split(line, " ")
	if len(tokens) < 6 {
		t.Fatalf("unexpected token count: %d (%s)", len(tokens), line)
	}
	expected := []string{"ts=", "level=INFO", "component=app", "event=test.event", "status=ok", "rid=rid-123"}
	for i, prefix := range expected {
		if !strings.HasPrefix(tokens[i], prefix) {
			t.Fatalf("token %d = %s, expected prefix %s", i, tokens[i], prefix)
		}
	}
}

func TestStructuredHandlerJSONFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newTestLogger(buf, formatJSON).With("component", "service.test")

	ctx := WithRID(context.Background(), "rid-json")
	ctx = WithUpdateMeta(ctx, 11, 22, 33)

	log.LogAttrs(ctx, slog.LevelError, "",
		slog.String("event", "service.failed"),
		slog.String("status", "fail"),
		slog.String("err", "boom"),
	)

	line := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(line, "{") {
		t.Fatalf("expected JSON, got %s", line)
	}
	for _, want := range []string{
		`"level":"ERROR"`,
		`"component":"service.test"`,
		`"event":"service.failed"`,
		`"status":"fail"`,
		`"rid":"rid-json"`,
		`"user_id":22`,
		`"chat_id":33`,
		`"update_id":11`,
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("missing %s in %s", want, line)
		}
	}
}

func TestStructuredHandlerContextHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newTestLogger(buf, formatKV)

	ctx := WithHandler(context.Background(), "register")
	log.LogAttrs(ctx, slog.LevelInfo, "",
		slog.String("event", "handler.handled"),
	)

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "handler=register") {
		t.Fatalf("expected handler attr, got %s", line)
	}
}

func TestStructuredHandlerDefaultsEventAndComponent(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newTestLogger(buf, formatKV)

	log.LogAttrs(context.Background(), slog.LevelInfo, "plain message")

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, `event="plain message"`) {
		t.Fatalf("expected message promoted to event, got %s", line)
	}
	if !strings.Contains(line, "component=app") {
		t.Fatalf("expected default component, got %s", line)
	}
}

func TestStructuredHandlerLevelGate(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := newStructuredHandler(handlerConfig{
		level:  slog.LevelInfo,
		writer: newSyncWriter(buf),
		format: formatKV,
	})
	log := slog.New(handler)

	log.LogAttrs(context.Background(), slog.LevelDebug, "",
		slog.String("event", "suppressed"),
	)
	if buf.Len() != 0 {
		t.Fatalf("debug record should be suppressed, got %s", buf.String())
	}
}
