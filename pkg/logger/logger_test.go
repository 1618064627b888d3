package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"devscout/pkg/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LoggingConfig
		wantErr bool
	}{
		{name: "info level", cfg: &config.LoggingConfig{Level: "info"}},
		{name: "debug level", cfg: &config.LoggingConfig{Level: "debug"}},
		{name: "invalid level", cfg: &config.LoggingConfig{Level: "invalid"}, wantErr: true},
		{name: "file output", cfg: &config.LoggingConfig{Level: "info", File: filepath.Join(t.TempDir(), "logs", "devscout.log")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
		wantErr  bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"fatal", zerolog.FatalLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"invalid", zerolog.InfoLevel, true},
		{"", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			level, err := parseLogLevel(tt.level)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func newBufferLogger(buf *bytes.Buffer) *zerologLogger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zlog := zerolog.New(buf).Level(zerolog.DebugLevel)
	return &zerologLogger{logger: &zlog, fields: make(map[string]interface{})}
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	for level, logFn := range map[string]func(string){
		"debug": l.Debug,
		"info":  l.Info,
		"warn":  l.Warn,
		"error": l.Error,
	} {
		buf.Reset()
		logFn(level + " message")
		entry := decodeLine(t, &buf)
		assert.Equal(t, level, entry["level"])
		assert.Equal(t, level+" message", entry["message"])
	}
}

func TestWithFieldsDoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newBufferLogger(&buf)

	child := parent.WithField("source", "r/webdev").WithFields(map[string]interface{}{
		"count": 3,
		"took":  2 * time.Second,
	})

	child.Info("fetched")
	entry := decodeLine(t, &buf)
	assert.Equal(t, "r/webdev", entry["source"])
	assert.Equal(t, float64(3), entry["count"])

	buf.Reset()
	parent.Info("plain")
	entry = decodeLine(t, &buf)
	assert.NotContains(t, entry, "source")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	assert.Same(t, l, l.WithError(nil))

	l.WithError(errors.New("boom")).ErrorWithFields("failed", map[string]interface{}{"attempt": 2})
	entry := decodeLine(t, &buf)
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, float64(2), entry["attempt"])
}

func TestFileOutputWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devscout.log")
	var console bytes.Buffer

	l, err := newWithConsole(&config.LoggingConfig{Level: "info", File: path}, &console)
	require.NoError(t, err)

	l.InfoWithFields("run started", map[string]interface{}{"kind": "posts"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"posts"`)
	assert.Contains(t, string(data), `"app":"devscout"`)
	assert.Contains(t, console.String(), "run started")
}

func TestHelpers(t *testing.T) {
	tl := NewTestLogger()

	LogRequest(tl, "GET", "https://example.test", 200, 10*time.Millisecond)
	LogRequest(tl, "GET", "https://example.test", 404, time.Millisecond)
	LogRequest(tl, "GET", "https://example.test", 503, time.Millisecond)
	LogSourceResult(tl, "r/webdev", 25, 3, nil)
	LogSourceResult(tl, "Lobsters", 0, 0, errors.New("timeout"))
	LogRunProgress(tl, "posts", 2, 4, 10)
	LogComponentStart(tl, "aggregator", map[string]interface{}{"sources": 4})
	LogComponentStop(tl, "aggregator", "completed")
	LogMetrics(tl, "posts", map[string]interface{}{"records": 10})

	assert.Len(t, tl.GetMessagesByLevel("DEBUG"), 2)
	assert.Len(t, tl.GetMessagesByLevel("ERROR"), 1)
	assert.True(t, tl.HasMessage("HTTP request client error"))

	warnings := tl.GetMessagesByLevel("WARN")
	require.Len(t, warnings, 2)
	assert.Equal(t, "Source fetch failed", warnings[1].Message)
	assert.EqualError(t, warnings[1].Error, "timeout")
	assert.Equal(t, "Lobsters", warnings[1].Fields["source"])

	for _, msg := range tl.GetMessages() {
		if msg.Message == "Aggregation progress" {
			assert.Equal(t, "50.0%", msg.Fields["percentage"])
		}
	}
}

func TestTestLoggerChildrenShareStore(t *testing.T) {
	tl := NewTestLogger()
	child := tl.WithField("component", "replies").WithError(errors.New("x"))
	child.Warn("one")
	tl.Info("two")

	msgs := tl.GetMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "replies", msgs[0].Fields["component"])
	assert.Error(t, msgs[0].Error)
	assert.Nil(t, msgs[1].Fields)
	assert.True(t, tl.HasError() == false)

	tl.Clear()
	assert.Empty(t, tl.GetMessages())
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.WithField("a", 1).WithError(errors.New("x")).Error("ignored")
	assert.NotNil(t, l.GetZerolog())
}

func TestGlobalLogger(t *testing.T) {
	tl := NewTestLogger()
	SetLogger(tl)
	t.Cleanup(func() { SetLogger(nil) })

	WithField("k", "v").Info("global")
	assert.True(t, tl.HasMessage("global"))
	assert.True(t, strings.HasPrefix(tl.GetMessages()[0].Level, "INFO"))
}
