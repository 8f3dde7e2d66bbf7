package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/renderforge/logcap/internal/inspect"
)

// RunLogs lists recent capture logs: logcap --logs [count].
// Each line shows ordinal, filename and status; a file rotated away
// between listing and display is reported rather than failing.
func RunLogs(w io.Writer, dir string, args []string) int {
	count := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(w, "logcap logs: invalid count %q\n", args[0])
			return 1
		}
		count = n
	}

	entries, err := inspect.ListRecent(dir, count)
	if err != nil {
		fmt.Fprintf(w, "logcap logs: %v\n", err)
		return 1
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "no capture logs")
		return 0
	}

	for i, e := range entries {
		status := "OK"
		if !e.Exists() {
			status = "deleted"
		}
		fmt.Fprintf(w, "%3d  %-52s %s\n", i+1, e.Name, status)
	}
	return 0
}
