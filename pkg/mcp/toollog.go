package mcp

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// CallEntry is the schema for one JSONL line written per tool call.
type CallEntry struct {
	Ts            string         `json:"ts"`
	Tool          string         `json:"tool"`
	Params        map[string]any `json:"params"`
	DurationMs    int64          `json:"duration_ms"`
	ResponseBytes int            `json:"response_bytes"`
	TokensEst     int            `json:"tokens_est"`
	Error         *string        `json:"error"`
}

// CallLogger appends structured JSONL entries to a file. Safe for
// concurrent use.
type CallLogger struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

// NewCallLogger opens (or creates) the file at path for append-only
// writing, creating parent directories as needed. An empty path returns
// nil, nil — callers treat a nil CallLogger as disabled.
func NewCallLogger(path string) (*CallLogger, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create tool log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open tool log file: %w", err)
	}
	return &CallLogger{f: f, enc: json.NewEncoder(f)}, nil
}

// Write appends a single entry. Errors are returned but callers
// typically drop them so log failures never affect tool results.
func (l *CallLogger) Write(entry CallEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enc.Encode(entry)
}

// Close closes the underlying log file.
func (l *CallLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

// sanitizeParams copies args for logging. String values longer than
// shortStringMax bytes are replaced with a "{key}_len" entry so large
// payloads never land in the log file.
func sanitizeParams(args map[string]any) map[string]any {
	const shortStringMax = 64
	out := make(map[string]any, len(args))
	for k, v := range args {
		if s, ok := v.(string); ok && len(s) > shortStringMax {
			out[k+"_len"] = len(s)
		} else {
			out[k] = v
		}
	}
	return out
}

// responseBytes returns the serialized length of a result's content, 0
// for nil results or marshal errors.
func responseBytes(result *mcp.CallToolResult) int {
	if result == nil {
		return 0
	}
	b, err := json.Marshal(result.Content)
	if err != nil {
		return 0
	}
	return len(b)
}

// now is a replaceable clock for testing.
var now = func() time.Time { return time.Now() }
