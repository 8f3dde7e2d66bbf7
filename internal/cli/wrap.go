package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/renderforge/logcap/internal/capture"
	"github.com/renderforge/logcap/internal/config"
	"github.com/renderforge/logcap/internal/history"
	"github.com/renderforge/logcap/internal/meta"
	"github.com/renderforge/logcap/internal/runner"
)

// RunWrap executes a command inside a capture session:
//
//	logcap [--dir <dir>] [--max-logs <n>] [--] <command> [args...]
//
// The command's exit code is propagated unchanged; whether capture
// worked is visible only in the log directory and diagnostics.
func RunWrap(ctx context.Context, cfg *config.Config, logger zerolog.Logger, hist *history.Logger, args []string) int {
	dir := cfg.Capture.Dir
	maxLogs := cfg.Capture.MaxLogs

flags:
	for len(args) > 0 {
		switch {
		case args[0] == "--dir" && len(args) > 1:
			dir = args[1]
			args = args[2:]
		case args[0] == "--max-logs" && len(args) > 1:
			n, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Fprintf(os.Stderr, "logcap: invalid --max-logs %q\n", args[1])
				return 1
			}
			maxLogs = n
			args = args[2:]
		case args[0] == "--":
			args = args[1:]
			break flags
		default:
			break flags
		}
	}

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "logcap: missing command")
		return 1
	}

	sys := meta.NewSystem()
	sys.Timeout = cfg.Metadata.ProbeTimeoutDuration()

	// The process output channel slots the session owns for the
	// scope of the run.
	stdout := io.Writer(os.Stdout)
	stderr := io.Writer(os.Stderr)

	sess := capture.New(capture.Options{
		Dir:     dir,
		MaxLogs: maxLogs,
		Meta:    sys,
		Stdout:  &stdout,
		Stderr:  &stderr,
		Log:     logger,
	})
	sess.Open()

	start := time.Now()
	err := runner.Run(ctx, []runner.Step{{Argv: args}}, os.Stdin, stdout, stderr, logger)
	duration := time.Since(start)

	sess.Close(err)

	exitCode, errMsg := resolveError(err)
	recordHistory(hist, sess, strings.Join(args, " "), exitCode, errMsg, duration)

	if path, ok := sess.Path(); ok {
		logger.Debug().Str("log", path).Msg("capture saved")
	}
	return exitCode
}

// resolveError extracts an exit code from a run error. For ExitError
// (command exited non-zero), the code is propagated silently — the
// command's own stderr output is sufficient. For other errors, logcap
// reports them on stderr.
func resolveError(err error) (exitCode int, errMsg string) {
	if err == nil {
		return 0, ""
	}
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, err.Error()
	}
	fmt.Fprintf(os.Stderr, "logcap: %v\n", err)
	return 2, err.Error()
}

func recordHistory(hist *history.Logger, sess *capture.Session, command string, exitCode int, errMsg string, duration time.Duration) {
	if hist == nil {
		return
	}
	path, _ := sess.Path()
	// Best-effort history recording — don't fail the command if it fails.
	_ = hist.Record(sess.ID(), command, path, sess.Enabled(), exitCode, errMsg, duration)
}
