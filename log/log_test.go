package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}

	if logger.Format() != FormatText {
		t.Errorf("expected default format text, got %v", logger.Format())
	}

	if !logger.pretty {
		t.Error("expected pretty enabled by default")
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	tests := []struct {
		level  Level
		logged []string
		quiet  []string
	}{
		{LevelTrace, []string{"trace", "debug", "info", "warn", "error"}, nil},
		{LevelDebug, []string{"debug", "info", "warn", "error"}, []string{"trace"}},
		{LevelWarn, []string{"warn", "error"}, []string{"trace", "debug", "info"}},
		{LevelError, []string{"error"}, []string{"trace", "debug", "info", "warn"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf, WithLevel(tt.level), WithPretty(false))
			logger.Trace("trace message")
			logger.Debug("debug message")
			logger.Info("info message")
			logger.Warn("warn message")
			logger.Error("error message")

			output := buf.String()
			for _, name := range tt.logged {
				if !strings.Contains(output, name+" message") {
					t.Errorf("expected %s message in output: %s", name, output)
				}
			}

			for _, name := range tt.quiet {
				if strings.Contains(output, name+" message") {
					t.Errorf("expected no %s message in output: %s", name, output)
				}
			}
		})
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON)).Trace("x")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if entry["level"] != "TRACE" {
		t.Errorf("expected level TRACE, got %v", entry["level"])
	}
}

func TestLogger_Make_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithFormat(FormatJSON)).Info("test message")

	if !strings.Contains(buf.String(), `"source"`) {
		t.Errorf("expected source when caller enabled, got: %s", buf.String())
	}

	buf.Reset()
	Make(&buf, WithCaller(false), WithFormat(FormatJSON)).Info("test message")

	if strings.Contains(buf.String(), `"source"`) {
		t.Errorf("expected no source when caller disabled, got: %s", buf.String())
	}
}

func TestLogger_Make_WithFormat_SetsOutputFormat(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatJSON))
		logger.Info("test message", slog.String("key", "value"))

		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to parse JSON output: %v", err)
		}

		if result["msg"] != "test message" {
			t.Errorf("expected msg=test message, got %v", result["msg"])
		}

		if result["key"] != "value" {
			t.Errorf("expected key=value, got %v", result["key"])
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatText), WithPretty(false))
		logger.Info("test message", slog.String("key", "value"))

		output := buf.String()
		if !strings.Contains(output, `msg="test message"`) {
			t.Errorf("message not found in text output: %s", output)
		}

		if !strings.Contains(output, "key=value") {
			t.Errorf("key=value not found in text output: %s", output)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithTimeLayout("none"))
		logger.Info("test message",
			slog.String("key", "value"),
			slog.Group("g", slog.Int("n", 1)),
		)

		output := buf.String()
		for _, want := range []string{"INFO", "test message", "key=", "value", "g.n=", "1"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in pretty output: %q", want, output)
			}
		}

		if strings.Count(output, "\n") != 1 {
			t.Errorf("expected one line, got: %q", output)
		}
	})
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON)).With(slog.String("key", "value"))
	logger.Info("test message")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to unmarshal log entry: %v", err)
	}

	if val, ok := entry["key"]; !ok || val != "value" {
		t.Errorf("expected key=value in log entry, got %v", val)
	}
}

func TestLogger_Wrap_OverridesConfiguration(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError))
	wrapped := base.Wrap(WithLevel(LevelDebug), WithPretty(false))

	if base.Level() != LevelError {
		t.Errorf("expected base logger unchanged, got %v", base.Level())
	}

	wrapped.Debug("wrapped message")

	if !strings.Contains(buf.String(), "wrapped message") {
		t.Errorf("expected wrapped logger to log at debug, got: %s", buf.String())
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var l Logger

	l.Trace("test")
	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Error("test")
	l.InfoContext(context.Background(), "test")

	if l.With(slog.String("key", "value")).Logger != nil {
		t.Error("expected nil logger from zero value With")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Error("expected zero value to report defaults")
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	var (
		buf bytes.Buffer
		mu  sync.Mutex
		wg  sync.WaitGroup
	)

	logger := Make(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()

		return buf.Write(p)
	}))

	for i := range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			logger.With(slog.Int("worker", i)).Info("concurrent message")
		}()
	}

	wg.Wait()

	if got := strings.Count(buf.String(), "concurrent message"); got != 20 {
		t.Errorf("expected 20 messages, got %d", got)
	}
}

func TestPackage_FunctionsUseDefaultLogger(t *testing.T) {
	original := Default()
	defer func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	}()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelTrace), WithFormat(FormatJSON))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
		{"ErrorContext", func(msg string, attrs ...slog.Attr) {
			ErrorContext(context.Background(), msg, attrs...)
		}, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("package message", slog.String("key", "value"))

			output := buf.String()
			for _, want := range []string{"package message", tt.level, `"key":"value"`} {
				if !strings.Contains(output, want) {
					t.Errorf("expected output to contain %q, got: %s", want, output)
				}
			}
		})
	}
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
