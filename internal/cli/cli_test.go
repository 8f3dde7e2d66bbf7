package cli

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/renderforge/logcap/internal/config"
	"github.com/renderforge/logcap/internal/history"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func testConfig(dir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Capture.Dir = dir
	return cfg
}

func TestRunWrapPropagatesExitCode(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	cfg := testConfig(dir)

	code := RunWrap(context.Background(), cfg, zerolog.Nop(), nil,
		[]string{"--", "sh", "-c", "exit 4"})
	if code != 4 {
		t.Errorf("exit code = %d, want 4", code)
	}

	// A failing run still leaves a log, with a fatal-error block.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d logs, want 1", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "FATAL ERROR") {
		t.Error("log missing fatal-error block for failed command")
	}
}

func TestRunWrapRecordsHistory(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	cfg := testConfig(dir)
	histPath := filepath.Join(t.TempDir(), "history.jsonl")
	hist, err := history.NewLogger(histPath)
	if err != nil {
		t.Fatal(err)
	}

	code := RunWrap(context.Background(), cfg, zerolog.Nop(), hist,
		[]string{"--", "sh", "-c", "exit 0"})
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	entries, err := history.Tail(histPath, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d history entries, want 1", len(entries))
	}
	e := entries[0]
	if !e.Captured {
		t.Error("history entry reports capture disabled")
	}
	if e.ExitCode != 0 {
		t.Errorf("history exit code = %d", e.ExitCode)
	}
	if e.LogPath == "" {
		t.Error("history entry missing log path")
	}
	if !strings.Contains(e.Command, "sh -c") {
		t.Errorf("history command = %q", e.Command)
	}
}

func TestRunWrapFlagOverrides(t *testing.T) {
	requireShell(t)
	base := t.TempDir()
	override := filepath.Join(base, "elsewhere")
	cfg := testConfig(filepath.Join(base, "default"))

	code := RunWrap(context.Background(), cfg, zerolog.Nop(), nil,
		[]string{"--dir", override, "--", "sh", "-c", "exit 0"})
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	entries, err := os.ReadDir(override)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d logs in override dir, want 1", len(entries))
	}
}

func TestRunWrapMissingCommand(t *testing.T) {
	cfg := testConfig(t.TempDir())
	if code := RunWrap(context.Background(), cfg, zerolog.Nop(), nil, nil); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRunLogsListing(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.log", "b.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var out strings.Builder
	if code := RunLogs(&out, dir, nil); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	got := out.String()
	if !strings.Contains(got, "  1  ") || !strings.Contains(got, "  2  ") {
		t.Errorf("listing missing ordinals:\n%s", got)
	}
	if !strings.Contains(got, "OK") {
		t.Errorf("listing missing status:\n%s", got)
	}
}

func TestRunLogsEmptyDirectory(t *testing.T) {
	var out strings.Builder
	if code := RunLogs(&out, t.TempDir(), nil); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "no capture logs") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunLogsInvalidCount(t *testing.T) {
	var out strings.Builder
	if code := RunLogs(&out, t.TempDir(), []string{"lots"}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRunShowByOrdinal(t *testing.T) {
	dir := t.TempDir()
	rule := strings.Repeat("=", 80)
	content := rule + "\nPipeline Diagnostic Log\n" + rule + "\nTimestamp:       now\n" + rule + "\n\nhello body\n"
	if err := os.WriteFile(filepath.Join(dir, "only.log"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	if code := RunShow(&out, dir, 20, []string{"1"}); code != 0 {
		t.Fatalf("exit code = %d: %s", code, out.String())
	}
	if !strings.Contains(out.String(), "hello body") {
		t.Errorf("summary missing body:\n%s", out.String())
	}
}

func TestRunShowOrdinalOutOfRange(t *testing.T) {
	var out strings.Builder
	if code := RunShow(&out, t.TempDir(), 20, []string{"7"}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out.String(), "no log at position 7") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunHistoryVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	hist, err := history.NewLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := hist.Record("s", "cmd", "", true, 0, "", 0); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	if code := RunHistory(&out, path, []string{"verify"}); code != 0 {
		t.Fatalf("exit code = %d: %s", code, out.String())
	}
	if !strings.Contains(out.String(), "verified") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunHistoryUnknownSubcommand(t *testing.T) {
	var out strings.Builder
	if code := RunHistory(&out, "unused", []string{"wipe"}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
