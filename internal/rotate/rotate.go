// Package rotate enforces a bounded set of retained capture logs in a
// directory.
package rotate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Retention limits are clamped to this range before use.
const (
	MinKeep = 1
	MaxKeep = 100
)

// ClampLimit bounds a retention or listing limit to [MinKeep, MaxKeep].
func ClampLimit(n int) int {
	if n < MinKeep {
		return MinKeep
	}
	if n > MaxKeep {
		return MaxKeep
	}
	return n
}

type logFile struct {
	path    string
	modTime time.Time
}

// Keep deletes every .log file in dir beyond the limit most recently
// modified ones. Ordering uses filesystem mtime rather than the
// timestamp encoded in the filename: mtime is robust to clock skew,
// and the encoded timestamp is for display only. A file that cannot
// be deleted is skipped; the remaining candidates are still
// processed. Keep returns an error only when the directory itself
// cannot be listed.
func Keep(dir string, limit int, logger zerolog.Logger) error {
	limit = ClampLimit(limit)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("list logs: %w", err)
	}

	var files []logFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Deleted between listing and stat; nothing to rotate.
			continue
		}
		files = append(files, logFile{
			path:    filepath.Join(dir, e.Name()),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.After(files[j].modTime)
	})

	if len(files) <= limit {
		return nil
	}
	for _, f := range files[limit:] {
		if err := os.Remove(f.path); err != nil {
			logger.Debug().Err(err).Str("file", f.path).Msg("rotation skipped file")
			continue
		}
		logger.Info().Str("file", filepath.Base(f.path)).Msg("rotated old log")
	}
	return nil
}
