// Package meta probes the host for the environment facts recorded in
// capture log headers: OS family, WSL/container detection, package
// manager, source revision, and the invoking command line.
//
// Every probe is bounded and degrades to a placeholder on failure; a
// metadata lookup is never allowed to propagate an error or hang the
// session that consumes it.
package meta

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Unknown is the placeholder for any fact that cannot be determined.
const Unknown = "unknown"

// DefaultTimeout bounds each external probe (git, etc.).
const DefaultTimeout = 2 * time.Second

// System reads environment facts from the running host.
type System struct {
	// Timeout bounds each external probe. Zero means DefaultTimeout.
	Timeout time.Duration

	// RepoDir is where revision lookups run. Empty means the current
	// directory.
	RepoDir string

	// Args overrides the reported command tokens. Nil means os.Args.
	// Tokens are kept loosely typed; FormatCommand coerces each to
	// text without ever failing.
	Args []any
}

// NewSystem returns a System with default probe bounds.
func NewSystem() *System {
	return &System{Timeout: DefaultTimeout}
}

func (s *System) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}

// Platform reports the OS family, the environment tag (native vs
// wsl2), and the detected package manager.
func (s *System) Platform() (osName, environment, pkgManager string) {
	switch runtime.GOOS {
	case "linux":
		environment = "native"
		if isWSL() {
			environment = "wsl2"
		}
		return "linux", environment, linuxPackageManager()
	case "darwin":
		if haveTool("brew") {
			return "macos", "native", "brew"
		}
		return "macos", "native", Unknown
	case "windows":
		return "windows", "native", windowsPackageManager()
	default:
		return runtime.GOOS, Unknown, Unknown
	}
}

// Isolation reports the containment tag: "docker" inside a container,
// "conda" otherwise (the pipeline's managed environment).
func (s *System) Isolation() string {
	if InContainer() {
		return "docker"
	}
	return "conda"
}

// Revision returns the short revision id of the working tree, with
// the branch name when available. The lookup is bounded by the
// configured timeout and returns a placeholder on any failure.
func (s *System) Revision(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	commit, err := gitOutput(ctx, s.RepoDir, "rev-parse", "--short", "HEAD")
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return Unknown + " (not a git repository)"
		}
		return Unknown
	}

	branch, err := gitOutput(ctx, s.RepoDir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return commit
	}
	return commit + " (" + branch + ")"
}

// RuntimeVersion reports the Go runtime that built the binary.
func (s *System) RuntimeVersion() string {
	return runtime.Version()
}

// PlatformDescriptor reports the GOOS/GOARCH pair.
func (s *System) PlatformDescriptor() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// CommandLine returns the original invocation's tokens.
func (s *System) CommandLine() []any {
	if s.Args != nil {
		return s.Args
	}
	tokens := make([]any, len(os.Args))
	for i, a := range os.Args {
		tokens[i] = a
	}
	return tokens
}

// FormatCommand renders command tokens as a single line. Tokens of
// any type are coerced to text; a non-string token can never make
// formatting fail.
func FormatCommand(tokens []any) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprint(tok)
	}
	return strings.Join(parts, " ")
}

// InContainer reports whether the process appears to run inside a
// container.
func InContainer() bool {
	for _, marker := range []string{"/.dockerenv", "/run/.containerenv"} {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}
	data, err := os.ReadFile("/proc/1/cgroup")
	if err != nil {
		return false
	}
	content := string(data)
	for _, tag := range []string{"docker", "containerd", "kubepods"} {
		if strings.Contains(content, tag) {
			return true
		}
	}
	return false
}

func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

func linuxPackageManager() string {
	managers := []string{"apt", "apt-get", "yum", "dnf", "pacman", "zypper"}
	for _, name := range managers {
		if haveTool(name) {
			if name == "apt-get" {
				return "apt"
			}
			return name
		}
	}
	return Unknown
}

func windowsPackageManager() string {
	for _, name := range []string{"winget", "choco", "scoop"} {
		if haveTool(name) {
			return name
		}
	}
	return Unknown
}

func haveTool(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func gitOutput(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
