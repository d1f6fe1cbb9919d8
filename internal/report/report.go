// Package report writes timestamped JSON report files.
//
// Reports are saved to a directory (DefaultDir unless told otherwise) with
// filenames of the form {prefix}-{YYYYMMDD-HHMMSS}.json so successive runs
// can be compared over time.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultDir is relative to the working directory.
const DefaultDir = "reports"

// WriteJSON pretty-prints data into a timestamped file under dir and
// returns the path written.
func WriteJSON(dir, prefix string, data any) (string, error) {
	return writeJSON(dir, prefix, data, time.Now())
}

func writeJSON(dir, prefix string, data any, now time.Time) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if prefix == "" {
		prefix = "report"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	ts := now.UTC().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", prefix, ts))

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}
