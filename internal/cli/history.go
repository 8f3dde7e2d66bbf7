package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/renderforge/logcap/internal/history"
)

// RunHistory handles the logcap --history subcommand.
func RunHistory(w io.Writer, logPath string, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(w, "usage: logcap --history <verify|show|tail>")
		return 1
	}

	switch args[0] {
	case "verify":
		if err := history.Verify(logPath); err != nil {
			fmt.Fprintf(w, "history verification FAILED: %v\n", err)
			return 1
		}
		fmt.Fprintln(w, "history log integrity verified")
		return 0

	case "show", "tail":
		n := 20
		entries, err := history.Tail(logPath, n)
		if err != nil {
			fmt.Fprintf(w, "logcap history: %v\n", err)
			return 1
		}
		if len(entries) == 0 {
			fmt.Fprintln(w, "no history entries")
			return 0
		}
		for _, e := range entries {
			data, _ := json.MarshalIndent(e, "", "  ")
			fmt.Fprintf(w, "%s\n", data)
		}
		return 0

	default:
		fmt.Fprintf(w, "logcap history: unknown subcommand %q\n", args[0])
		return 1
	}
}
