package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyHandler_Structural(t *testing.T) {
	var buf bytes.Buffer
	opts := &slog.HandlerOptions{Level: LevelDebug}
	h := NewPrettyHandler(&buf, opts, false)
	l := slog.New(h)

	t.Run("WithAttrs", func(t *testing.T) {
		buf.Reset()
		l2 := l.With("session_id", "abc-123")
		l2.Info("test message", "field", "importName")

		output := buf.String()
		if !strings.Contains(output, "session_id=") || !strings.Contains(output, "abc-123") {
			t.Errorf("output missing persistent attr: %q", output)
		}
		if !strings.Contains(output, "field=") || !strings.Contains(output, "importName") {
			t.Errorf("output missing record attr: %q", output)
		}
	})

	t.Run("WithGroup", func(t *testing.T) {
		buf.Reset()
		l2 := l.WithGroup("submit").With("fields", 10)
		l2.Info("form submitted", "client", "Corporate")

		output := buf.String()
		if !strings.Contains(output, "submit.fields=") || !strings.Contains(output, "10") {
			t.Errorf("output missing grouped persistent attr: %q", output)
		}
		if !strings.Contains(output, "submit.client=") || !strings.Contains(output, "Corporate") {
			t.Errorf("output missing grouped record attr: %q", output)
		}
	})

	t.Run("NestedGroups", func(t *testing.T) {
		buf.Reset()
		l2 := l.WithGroup("outer").WithGroup("inner").With("key", "val")
		l2.Info("msg")

		output := buf.String()
		if !strings.Contains(output, "outer.inner.key=") || !strings.Contains(output, "val") {
			t.Errorf("output missing nested grouped attr: %q", output)
		}
	})
}

func TestAnonymizeAttr(t *testing.T) {
	origHome := userHome
	userHome = func() string { return "/home/tester" }
	defer func() { userHome = origHome }()

	t.Run("SensitiveKey", func(t *testing.T) {
		attr := slog.String("password", "hunter2")
		got := AnonymizeAttr(nil, attr)
		if got.Value.String() != "[REDACTED]" {
			t.Fatalf("expected redaction, got %q", got.Value.String())
		}
	})

	t.Run("HomePathShortened", func(t *testing.T) {
		attr := slog.String("path", "/home/tester/imports/manifest.csv")
		got := AnonymizeAttr(nil, attr)
		if got.Value.String() != "~/imports/manifest.csv" {
			t.Fatalf("expected shortened path, got %q", got.Value.String())
		}
	})

	t.Run("HomeItself", func(t *testing.T) {
		attr := slog.String("dir", "/home/tester")
		got := AnonymizeAttr(nil, attr)
		if got.Value.String() != "~" {
			t.Fatalf("expected ~, got %q", got.Value.String())
		}
	})

	t.Run("SiblingPrefixUntouched", func(t *testing.T) {
		attr := slog.String("path", "/home/tester2/manifest.csv")
		got := AnonymizeAttr(nil, attr)
		if got.Value.String() != "/home/tester2/manifest.csv" {
			t.Fatalf("unexpected rewrite: %q", got.Value.String())
		}
	})

	t.Run("NonSensitive", func(t *testing.T) {
		attr := slog.String("client", "Academic")
		got := AnonymizeAttr(nil, attr)
		if got.Value.String() != "Academic" {
			t.Fatalf("unexpected redaction: %q", got.Value.String())
		}
	})
}
