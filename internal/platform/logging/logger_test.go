package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf)

	logger.InfoContext(context.Background(), "feed fetched", "feed", "usl-one", "records", 12, "error", errors.New("boom"))

	var line map[string]any
	if err := sonic.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if line["msg"] != "feed fetched" {
		t.Fatalf("unexpected msg: %v", line["msg"])
	}
	if line["feed"] != "usl-one" {
		t.Fatalf("unexpected feed field: %v", line["feed"])
	}
	if got, _ := line["records"].(float64); got != 12 {
		t.Fatalf("unexpected records field: %v", line["records"])
	}
	if line["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", line["error"])
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelWarn, &buf)

	logger.Info("dropped")
	logger.Debug("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}

	logger.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestLogger_OddArgsAndNilReceiver(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf).With("component", "test")
	logger.Info("odd", "dangling")

	if !strings.Contains(buf.String(), `"dangling":null`) {
		t.Fatalf("expected dangling key with null value, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"component":"test"`) {
		t.Fatalf("expected With fields, got %q", buf.String())
	}

	var nilLogger *Logger
	nilLogger.Info("does not panic")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%s want %s", in, got, want)
		}
	}
}

func TestSetMirror_ReceivesWrittenEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf)

	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("below level")
	logger.Warn("roster built", "players", 3)

	if len(got) != 1 || got[0] != "warn:roster built" {
		t.Fatalf("unexpected mirrored entries: %v", got)
	}

	SetMirror(nil)
	logger.Warn("after reset")
	if len(got) != 1 {
		t.Fatalf("mirror must stop after reset, got %v", got)
	}
}
