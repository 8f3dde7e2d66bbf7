// Package inspect is the read side of the capture log directory:
// recency-ordered listings and bounded summaries for bug reports.
package inspect

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/renderforge/logcap/internal/rotate"
)

// DefaultTailLines is how many body lines a summary shows when the
// caller doesn't say otherwise.
const DefaultTailLines = 20

// Entry is one capture log in a listing.
type Entry struct {
	Path    string
	Name    string
	ModTime time.Time
}

// Exists reports whether the entry's file is still present. Listings
// race with rotation; callers use this to mark an entry as no longer
// present instead of failing on it.
func (e Entry) Exists() bool {
	_, err := os.Stat(e.Path)
	return err == nil
}

// ListRecent returns up to count log entries from dir, newest first
// by modification time. count is clamped to the same [1, 100] bounds
// as the rotation limit.
func ListRecent(dir string, count int) ([]Entry, error) {
	count = rotate.ClampLimit(count)

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	var entries []Entry
	for _, e := range dirEntries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Deleted between listing and stat.
			continue
		}
		entries = append(entries, Entry{
			Path:    filepath.Join(dir, e.Name()),
			Name:    e.Name(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.After(entries[j].ModTime)
	})

	if len(entries) > count {
		entries = entries[:count]
	}
	return entries, nil
}

// Summarize writes the log's metadata header plus its last tailLines
// body lines to w, with an elision marker for anything skipped.
// Content that is not valid UTF-8 is decoded permissively with a
// visible warning instead of being rejected. The output is a pure
// function of the file content, so summarizing a closed log twice
// yields identical output.
func Summarize(w io.Writer, path string, tailLines int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	if tailLines <= 0 {
		tailLines = DefaultTailLines
	}

	text := string(data)
	if !utf8.ValidString(text) {
		fmt.Fprintln(w, "warning: log contains invalid UTF-8; bytes replaced")
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}

	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	end := headerEnd(lines)
	for _, line := range lines[:end] {
		fmt.Fprintln(w, line)
	}

	body := lines[end:]
	if len(body) > tailLines {
		fmt.Fprintf(w, "\n... (%d lines omitted) ...\n\n", len(body)-tailLines)
		body = body[len(body)-tailLines:]
	}
	for _, line := range body {
		fmt.Fprintln(w, line)
	}
	return nil
}

var headerRule = strings.Repeat("=", 80)

// headerEnd returns the index just past the header block: the third
// 80-character rule plus the blank separator line. A file without a
// recognizable header is treated as all body.
func headerEnd(lines []string) int {
	rules := 0
	for i, line := range lines {
		if !strings.HasPrefix(line, headerRule) {
			continue
		}
		rules++
		if rules == 3 {
			end := i + 1
			if end < len(lines) && lines[end] == "" {
				end++
			}
			return end
		}
	}
	return 0
}
