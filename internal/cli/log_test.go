package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func testLogger(buf *bytes.Buffer, level log.Level) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: level})
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := testLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	if prog == nil {
		t.Fatal("newProgress() returned nil")
	}

	// Small delay to ensure measurable duration
	time.Sleep(10 * time.Millisecond)

	prog.done("built mesh")

	if !bytes.Contains(buf.Bytes(), []byte("built mesh")) {
		t.Error("progress.done() output should contain message")
	}
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	logger := log.Default()

	ctxWithLogger := withLogger(ctx, logger)

	retrieved := loggerFromContext(ctxWithLogger)
	if retrieved != logger {
		t.Error("loggerFromContext should return the same logger")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	ctx := context.Background()

	// Without logger in context, should return default
	logger := loggerFromContext(ctx)
	if logger == nil {
		t.Error("loggerFromContext should return default logger when none set")
	}
}

func TestLoggerFromContextWithValue(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	customLogger := testLogger(&buf, log.InfoLevel)

	ctx = withLogger(ctx, customLogger)
	retrieved := loggerFromContext(ctx)

	if retrieved != customLogger {
		t.Error("loggerFromContext should return the custom logger")
	}

	retrieved.Info("test")
	if buf.Len() == 0 {
		t.Error("custom logger should write to buffer")
	}
}

func TestNewRespectsLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*CLI)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   LogInfo,
			logFunc: func(c *CLI) { c.Logger.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   LogInfo,
			logFunc: func(c *CLI) { c.Logger.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   LogDebug,
			logFunc: func(c *CLI) { c.Logger.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := New(&buf, tt.level)
			tt.logFunc(c)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}
