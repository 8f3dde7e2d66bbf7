package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/renderforge/logcap/internal/inspect"
)

// RunShow prints a bounded summary of one capture log:
//
//	logcap --show <path|ordinal> [--tail <n>]
//
// An ordinal refers to the --logs listing (1 = newest).
func RunShow(w io.Writer, dir string, tailLines int, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(w, "usage: logcap --show <path|ordinal> [--tail <n>]")
		return 1
	}
	target := args[0]
	args = args[1:]

	for len(args) > 0 {
		if args[0] == "--tail" && len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Fprintf(w, "logcap show: invalid --tail %q\n", args[1])
				return 1
			}
			tailLines = n
			args = args[2:]
			continue
		}
		fmt.Fprintf(w, "logcap show: unknown argument %q\n", args[0])
		return 1
	}

	path := target
	if ordinal, err := strconv.Atoi(target); err == nil {
		resolved, err := resolveOrdinal(dir, ordinal)
		if err != nil {
			fmt.Fprintf(w, "logcap show: %v\n", err)
			return 1
		}
		path = resolved
	}

	if err := inspect.Summarize(w, path, tailLines); err != nil {
		fmt.Fprintf(w, "logcap show: %v\n", err)
		return 1
	}
	return 0
}

// resolveOrdinal maps a 1-based listing position to a log path.
func resolveOrdinal(dir string, ordinal int) (string, error) {
	if ordinal < 1 {
		return "", fmt.Errorf("ordinal %d out of range", ordinal)
	}
	entries, err := inspect.ListRecent(dir, ordinal)
	if err != nil {
		return "", err
	}
	if ordinal > len(entries) {
		return "", fmt.Errorf("no log at position %d (only %d available)", ordinal, len(entries))
	}
	return entries[ordinal-1].Path, nil
}
