package log

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
)

// TestLogger captures log events in a buffer so tests can assert on them.
type TestLogger struct {
	*ZerologLogger
	buf *bytes.Buffer
}

// NewTestLogger creates a TestLogger recording all events at debug level.
func NewTestLogger() *TestLogger {
	buf := &bytes.Buffer{}
	return &TestLogger{
		ZerologLogger: NewZerologLogger(buf, zerolog.DebugLevel),
		buf:           buf,
	}
}

// Buffer returns the raw captured output.
func (t *TestLogger) Buffer() *bytes.Buffer {
	return t.buf
}

// Entries decodes the captured output into one map per event.
func (t *TestLogger) Entries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(t.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage reports whether any captured event has the given message.
func (t *TestLogger) ContainsMessage(message string) bool {
	entries, err := t.Entries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if msg, ok := entry["message"].(string); ok && msg == message {
			return true
		}
	}
	return false
}
