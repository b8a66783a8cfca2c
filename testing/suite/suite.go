package suite

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

const maxWaitDuration = 10 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger

	logs *syncBuffer
}

// New returns a context bound to the test's lifetime and a debug-level JSON
// logger whose output the test can inspect.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logs := &syncBuffer{}
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return ctx, &Suite{
		T:      t,
		Logger: logger,
		logs:   logs,
	}
}

// LogEntries decodes every JSON log line written so far.
func (that *Suite) LogEntries() []map[string]any {
	that.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(that.logs.String()), "\n") {
		if line == "" {
			continue
		}

		entry := map[string]any{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			that.Fatalf("could not decode log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}

	return entries
}

// FindLog returns the first entry with the given message.
func (that *Suite) FindLog(msg string) (map[string]any, bool) {
	that.Helper()

	for _, entry := range that.LogEntries() {
		if entry["msg"] == msg {
			return entry, true
		}
	}

	return nil, false
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (that *syncBuffer) Write(p []byte) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.buf.Write(p)
}

func (that *syncBuffer) String() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.buf.String()
}
