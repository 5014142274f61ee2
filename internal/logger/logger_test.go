package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInit_DebugLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Output: buf})

	Debug("debug message", "key", "value")

	if !strings.Contains(buf.String(), "debug message") {
		t.Errorf("expected debug message in output, got %q", buf.String())
	}
}

func TestInit_DefaultLevelDropsDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})

	Debug("hidden")
	Info("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message should be suppressed at info level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("expected info message in output, got %q", out)
	}
}

func TestInit_QuietOnlyErrors(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Quiet: true, Output: buf})

	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	if strings.Contains(out, "info message") || strings.Contains(out, "warn message") {
		t.Errorf("quiet mode should only show errors: %q", out)
	}
	if !strings.Contains(out, "error message") {
		t.Errorf("expected error message in output, got %q", out)
	}
}

func TestInit_JSONHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})

	Info("structured", "study_id", "CBS0001")

	out := buf.String()
	if !strings.Contains(out, `"msg":"structured"`) {
		t.Errorf("expected JSON output, got %q", out)
	}
	if !strings.Contains(out, `"study_id":"CBS0001"`) {
		t.Errorf("expected attribute in JSON output, got %q", out)
	}
}

func TestWith_CarriesAttributes(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})

	l := With("component", "runner")
	l.Info("hello")

	if !strings.Contains(buf.String(), "component=runner") {
		t.Errorf("expected attribute in output, got %q", buf.String())
	}
}
