package logger

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// LogMessage represents a captured log message
type LogMessage struct {
	Level   string
	Message string
	Fields  map[string]interface{}
	Error   error
}

// TestLogger captures every message so tests can assert on them
type TestLogger struct {
	capture *captureLogger
}

// capturedStore is shared by a TestLogger and all children derived from it
type capturedStore struct {
	mu       sync.Mutex
	messages []LogMessage
}

// captureLogger is a Logger view onto a capturedStore with its own fields
type captureLogger struct {
	store  *capturedStore
	fields map[string]interface{}
	err    error
}

// NewTestLogger creates a new test logger
func NewTestLogger() *TestLogger {
	return &TestLogger{capture: &captureLogger{store: &capturedStore{}}}
}

func (l *TestLogger) Debug(msg string)                                { l.capture.Debug(msg) }
func (l *TestLogger) Info(msg string)                                 { l.capture.Info(msg) }
func (l *TestLogger) Warn(msg string)                                 { l.capture.Warn(msg) }
func (l *TestLogger) Error(msg string)                                { l.capture.Error(msg) }
func (l *TestLogger) Fatal(msg string)                                { l.capture.Fatal(msg) }
func (l *TestLogger) WithField(key string, value interface{}) Logger  { return l.capture.WithField(key, value) }
func (l *TestLogger) WithFields(fields map[string]interface{}) Logger { return l.capture.WithFields(fields) }
func (l *TestLogger) WithError(err error) Logger                      { return l.capture.WithError(err) }
func (l *TestLogger) WithContext(ctx context.Context) Logger          { return l }
func (l *TestLogger) GetZerolog() *zerolog.Logger                     { return l.capture.GetZerolog() }

func (l *TestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.capture.DebugWithFields(msg, fields)
}

func (l *TestLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	l.capture.InfoWithFields(msg, fields)
}

func (l *TestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.capture.WarnWithFields(msg, fields)
}

func (l *TestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.capture.ErrorWithFields(msg, fields)
}

func (l *TestLogger) FatalWithFields(msg string, fields map[string]interface{}) {
	l.capture.FatalWithFields(msg, fields)
}

// GetMessages returns a copy of all captured log messages
func (l *TestLogger) GetMessages() []LogMessage {
	s := l.capture.store
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]LogMessage, len(s.messages))
	copy(messages, s.messages)
	return messages
}

// GetMessagesByLevel returns all messages of a specific level
func (l *TestLogger) GetMessagesByLevel(level string) []LogMessage {
	var filtered []LogMessage
	for _, msg := range l.GetMessages() {
		if msg.Level == level {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

// HasMessage checks if a message with the given text was logged
func (l *TestLogger) HasMessage(text string) bool {
	for _, msg := range l.GetMessages() {
		if msg.Message == text {
			return true
		}
	}
	return false
}

// HasError checks if an error-level message was logged
func (l *TestLogger) HasError() bool {
	return len(l.GetMessagesByLevel("ERROR")) > 0
}

// Clear drops all captured messages
func (l *TestLogger) Clear() {
	s := l.capture.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

func (c *captureLogger) record(level, msg string, extra map[string]interface{}) {
	var fields map[string]interface{}
	if len(c.fields) > 0 || len(extra) > 0 {
		fields = make(map[string]interface{}, len(c.fields)+len(extra))
		for k, v := range c.fields {
			fields[k] = v
		}
		for k, v := range extra {
			fields[k] = v
		}
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.messages = append(c.store.messages, LogMessage{
		Level:   level,
		Message: msg,
		Fields:  fields,
		Error:   c.err,
	})
}

func (c *captureLogger) Debug(msg string) { c.record("DEBUG", msg, nil) }
func (c *captureLogger) Info(msg string)  { c.record("INFO", msg, nil) }
func (c *captureLogger) Warn(msg string)  { c.record("WARN", msg, nil) }
func (c *captureLogger) Error(msg string) { c.record("ERROR", msg, nil) }
func (c *captureLogger) Fatal(msg string) { c.record("FATAL", msg, nil) }

func (c *captureLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	c.record("DEBUG", msg, fields)
}

func (c *captureLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	c.record("INFO", msg, fields)
}

func (c *captureLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	c.record("WARN", msg, fields)
}

func (c *captureLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	c.record("ERROR", msg, fields)
}

func (c *captureLogger) FatalWithFields(msg string, fields map[string]interface{}) {
	c.record("FATAL", msg, fields)
}

func (c *captureLogger) WithField(key string, value interface{}) Logger {
	return c.WithFields(map[string]interface{}{key: value})
}

func (c *captureLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(c.fields)+len(fields))
	for k, v := range c.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &captureLogger{store: c.store, fields: merged, err: c.err}
}

func (c *captureLogger) WithError(err error) Logger {
	return &captureLogger{store: c.store, fields: c.fields, err: err}
}

func (c *captureLogger) WithContext(ctx context.Context) Logger { return c }

func (c *captureLogger) GetZerolog() *zerolog.Logger {
	nop := zerolog.Nop()
	return &nop
}
