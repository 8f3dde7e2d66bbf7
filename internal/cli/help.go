package cli

import (
	"fmt"
	"io"
)

// RunHelp shows general usage.
func RunHelp(w io.Writer) int {
	fmt.Fprintln(w, "logcap — fail-open output capture for pipeline runs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  logcap [--dir <dir>] [--max-logs <n>] [--] <command> [args...]")
	fmt.Fprintln(w, "                                     run a command with output capture")
	fmt.Fprintln(w, "  logcap --logs [<count>]            list recent capture logs")
	fmt.Fprintln(w, "  logcap --show <path|ordinal> [--tail <n>]")
	fmt.Fprintln(w, "                                     summarize one capture log")
	fmt.Fprintln(w, "  logcap --history <verify|show|tail>")
	fmt.Fprintln(w, "                                     session history operations")
	fmt.Fprintln(w, "  logcap --verbose ...               enable debug diagnostics")
	fmt.Fprintln(w, "  logcap --version                   show version")
	fmt.Fprintln(w, "  logcap --help                      show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "capture is best-effort: a logging failure never changes the")
	fmt.Fprintln(w, "wrapped command's outcome, only whether a log file exists.")
	return 0
}
