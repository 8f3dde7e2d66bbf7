// Package capture provides the scoped stdout/stderr capture session
// around a pipeline run. A session swaps a tee over the two process
// output channels, mirrors everything written to a timestamped log
// file, and restores the original channels on every exit path.
//
// The whole package is fail-open by design: any failure while setting
// up or tearing down capture disables logging and nothing else.
// Logging must never be the reason the wrapped pipeline fails.
package capture

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/renderforge/logcap/internal/rotate"
	"github.com/renderforge/logcap/internal/teeio"
)

// Metadata supplies the environment facts written to the log header.
// Implementations must be non-failing: a fact that cannot be
// determined is reported as a placeholder, never as an error.
type Metadata interface {
	Platform() (osName, environment, pkgManager string)
	Isolation() string
	Revision(ctx context.Context) string
	RuntimeVersion() string
	PlatformDescriptor() string
	CommandLine() []any
}

// Options configures a Session.
type Options struct {
	// Dir is the log directory, created on demand.
	Dir string

	// MaxLogs is the retention limit applied after the session
	// closes. It is clamped to the rotate package's bounds.
	MaxLogs int

	// Meta supplies header facts.
	Meta Metadata

	// Stdout and Stderr are the process output channel slots the
	// session temporarily owns. A nil pointer, or a slot holding
	// nil, falls back to the platform default stream.
	Stdout *io.Writer
	Stderr *io.Writer

	// Log receives self-diagnostics (rotation notices, disablement).
	// It must write to an original stream, never through the tee.
	Log zerolog.Logger
}

// Session captures both output channels for the duration of a scope.
// It is a single-owner, single-use resource: create, Open, run the
// wrapped code, Close. Nested sessions layer their channel swaps
// rather than merging; that is tolerated but unsupported.
type Session struct {
	dir     string
	maxLogs int
	meta    Metadata
	log     zerolog.Logger

	stdout *io.Writer
	stderr *io.Writer

	origStdout io.Writer
	origStderr io.Writer

	outBuf bytes.Buffer
	errBuf bytes.Buffer

	id      string
	path    string
	file    *os.File
	enabled bool
}

// New prepares a session. Nothing is touched until Open.
func New(opts Options) *Session {
	s := &Session{
		dir:     opts.Dir,
		maxLogs: rotate.ClampLimit(opts.MaxLogs),
		meta:    opts.Meta,
		log:     opts.Log,
		stdout:  opts.Stdout,
		stderr:  opts.Stderr,
	}
	if s.stdout == nil {
		s.stdout = new(io.Writer)
	}
	if s.stderr == nil {
		s.stderr = new(io.Writer)
	}
	return s
}

// Open starts capture. On success both channel slots hold a tee of
// (original stream, in-memory mirror, log file). On any failure at
// any step the session disables itself, releases what it acquired,
// and returns normally — setup problems never propagate to the
// wrapped code.
func (s *Session) Open() {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.disable(err)
		return
	}

	now := time.Now()
	s.path = filepath.Join(s.dir, s.filename(now))
	f, err := os.Create(s.path)
	if err != nil {
		s.path = ""
		s.disable(err)
		return
	}
	s.file = f
	s.id = uuid.NewString()

	if err := s.writeHeader(now); err != nil {
		s.disable(err)
		return
	}

	s.origStdout = fallback(*s.stdout, os.Stdout)
	s.origStderr = fallback(*s.stderr, os.Stderr)
	*s.stdout = teeio.New(s.origStdout, &s.outBuf, s.file)
	*s.stderr = teeio.New(s.origStderr, &s.errBuf, s.file)
	s.enabled = true
}

// Close ends capture. The original channels are restored first,
// unconditionally. Then, if capture was active: a fatal-error footer
// is appended when userErr is non-nil, the file is closed, and
// rotation runs. Every internal failure is swallowed; Close never
// modifies the caller's error and never produces one of its own.
func (s *Session) Close(userErr error) {
	if s.origStdout != nil {
		*s.stdout = s.origStdout
	}
	if s.origStderr != nil {
		*s.stderr = s.origStderr
	}

	if s.enabled && s.file != nil {
		if userErr != nil {
			s.writeFooter(userErr)
		}
		if err := s.file.Close(); err != nil {
			s.log.Debug().Err(err).Msg("closing log file failed")
		}
		s.file = nil
	}

	if s.enabled {
		if err := rotate.Keep(s.dir, s.maxLogs, s.log); err != nil {
			s.log.Debug().Err(err).Msg("log rotation failed")
		}
	}
}

// Enabled reports whether capture is active.
func (s *Session) Enabled() bool { return s.enabled }

// ID returns the session id assigned during Open.
func (s *Session) ID() string { return s.id }

// Path returns the log file path and whether setup succeeded.
func (s *Session) Path() (string, bool) {
	return s.path, s.path != ""
}

// CapturedStdout returns the in-memory mirror of the stdout channel.
func (s *Session) CapturedStdout() string { return s.outBuf.String() }

// CapturedStderr returns the in-memory mirror of the stderr channel.
func (s *Session) CapturedStderr() string { return s.errBuf.String() }

// disable releases partial resources after a setup failure. The
// wrapped code runs exactly as it would without logging.
func (s *Session) disable(cause error) {
	s.enabled = false
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			s.log.Debug().Err(err).Msg("closing partial log file failed")
		}
		s.file = nil
	}
	s.path = ""
	s.log.Debug().Err(cause).Msg("capture disabled")
}

// filename encodes date, time, a sub-second disambiguator, the OS tag
// and the isolation tag: 20260119_143022_123456_linux_conda.log.
// The sub-second field keeps names unique under rapid session
// creation; recency ordering still comes from mtime, not the name.
func (s *Session) filename(now time.Time) string {
	osName, environment, _ := s.meta.Platform()
	if environment == "wsl2" {
		osName = "wsl2"
	}
	return fmt.Sprintf("%s_%06d_%s_%s.log",
		now.Format("20060102_150405"),
		now.Nanosecond()/1000,
		osName,
		s.meta.Isolation(),
	)
}

func (s *Session) writeFooter(userErr error) {
	_, err := fmt.Fprintf(s.file, "\n%s\nFATAL ERROR: %s: %v\n%s\n",
		headerRule, errorKind(userErr), userErr, headerRule)
	if err != nil {
		s.log.Debug().Err(err).Msg("writing fatal-error footer failed")
	}
}

// errorKind names the concrete error type, the closest analogue of an
// exception class.
func errorKind(err error) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
}

func fallback(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
