package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/renderforge/logcap/internal/cli"
	"github.com/renderforge/logcap/internal/config"
	"github.com/renderforge/logcap/internal/diag"
	"github.com/renderforge/logcap/internal/history"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	args, verbose := stripVerbose(os.Args[1:])

	// Diagnostics go to the real stderr, never through a capture tee.
	logger := diag.New(os.Stderr, verbose)

	// Load config.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logcap: config: %v\n", err)
		return 1
	}

	// Set up session history.
	hist := openHistory(cfg, logger)

	// Set up context with cancellation on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(args) == 0 {
		cli.RunHelp(os.Stderr)
		return 1
	}

	switch args[0] {
	case "--logs":
		return cli.RunLogs(os.Stdout, cfg.Capture.Dir, args[1:])
	case "--show":
		return cli.RunShow(os.Stdout, cfg.Capture.Dir, cfg.Capture.TailLines, args[1:])
	case "--history":
		return cli.RunHistory(os.Stdout, cfg.History.Path, args[1:])
	case "--help":
		return cli.RunHelp(os.Stdout)
	case "--version":
		fmt.Printf("logcap %s\n", version)
		return 0
	default:
		// Everything else wraps a command in a capture session.
		return cli.RunWrap(ctx, cfg, logger, hist, args)
	}
}

// stripVerbose removes --verbose from anywhere before the command
// separator so diagnostics can be configured before anything runs.
func stripVerbose(args []string) ([]string, bool) {
	verbose := false
	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--verbose" {
			verbose = true
			continue
		}
		if a == "--" {
			out = append(out, args[i:]...)
			break
		}
		out = append(out, a)
	}
	return out, verbose
}

func openHistory(cfg *config.Config, logger zerolog.Logger) *history.Logger {
	if !cfg.History.HistoryEnabled() {
		return nil
	}
	hist, err := history.NewLogger(cfg.History.Path)
	if err != nil {
		// Continue without history — recording is best-effort.
		logger.Warn().Err(err).Msg("history log unavailable")
		return nil
	}
	return hist
}
