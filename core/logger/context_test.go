package logger

import (
	"context"
	"testing"
)

func TestBuildRID(t *testing.T) {
	if got := BuildRID(42, 7, 9); got != "42:7:9" {
		t.Fatalf("BuildRID = %s", got)
	}
}

func TestUpdateMetaRoundTrip(t *testing.T) {
	ctx := WithUpdateMeta(context.Background(), 5, 10, 15)
	if UpdateIDFrom(ctx) != 5 {
		t.Fatalf("update id = %d", UpdateIDFrom(ctx))
	}
	if UserIDFrom(ctx) != 10 {
		t.Fatalf("user id = %d", UserIDFrom(ctx))
	}
	if ChatIDFrom(ctx) != 15 {
		t.Fatalf("chat id = %d", ChatIDFrom(ctx))
	}
}

func TestMetaFromEmptyContext(t *testing.T) {
	ctx := context.Background()
	if RIDFrom(ctx) != "" || UpdateIDFrom(ctx) != 0 || UserIDFrom(ctx) != 0 || ChatIDFrom(ctx) != 0 {
		t.Fatal("empty context should yield zero values")
	}
}

func TestSanitizeLimit(t *testing.T) {
	in := "line one\nline two\ttabbed"
	got := Sanitize(in)
	if got != "line one line two tabbed" {
		t.Fatalf("Sanitize = %q", got)
	}

	if got := SanitizeLimit("abcdef", 3); got != "abc" {
		t.Fatalf("SanitizeLimit = %q", got)
	}
	if got := SanitizeLimit("abc", 10); got != "abc" {
		t.Fatalf("SanitizeLimit short = %q", got)
	}
	if got := SanitizeLimit("abc", 0); got != "" {
		t.Fatalf("SanitizeLimit zero = %q", got)
	}
}
