package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the global logcap configuration.
type Config struct {
	Capture  CaptureConfig  `yaml:"capture"`
	Metadata MetadataConfig `yaml:"metadata"`
	History  HistoryConfig  `yaml:"history"`
}

// CaptureConfig controls the capture session and its log directory.
type CaptureConfig struct {
	Dir       string `yaml:"dir"`
	MaxLogs   int    `yaml:"max_logs"`
	TailLines int    `yaml:"tail_lines"`
}

// MetadataConfig controls header metadata probes.
type MetadataConfig struct {
	ProbeTimeout string `yaml:"probe_timeout"`
}

// DefaultProbeTimeout is used when no probe_timeout is configured.
const DefaultProbeTimeout = 2 * time.Second

// ProbeTimeoutDuration parses the configured probe timeout or returns
// the default.
func (m *MetadataConfig) ProbeTimeoutDuration() time.Duration {
	if m.ProbeTimeout != "" {
		dur, err := time.ParseDuration(m.ProbeTimeout)
		if err == nil {
			return dur
		}
	}
	return DefaultProbeTimeout
}

// HistoryConfig controls the session history log.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled"` // nil = enabled
	Path    string `yaml:"path"`
}

// HistoryEnabled reports whether session history should be recorded.
func (h *HistoryConfig) HistoryEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Capture: CaptureConfig{
			Dir:       "logs",
			MaxLogs:   10,
			TailLines: 20,
		},
		History: HistoryConfig{
			Path: filepath.Join(home, ".local", "share", "logcap", "history.jsonl"),
		},
	}
}

// Load reads the config from the standard location
// (~/.config/logcap/config.yaml). If the file doesn't exist, returns
// the default config.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfig(), nil
	}

	path := filepath.Join(home, ".config", "logcap", "config.yaml")
	return LoadFrom(path)
}

// LoadFrom reads the config from the given path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Expand ~ in paths.
	cfg.History.Path = expandHome(cfg.History.Path)
	cfg.Capture.Dir = expandHome(cfg.Capture.Dir)

	return cfg, nil
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, path[1:])
}

// ConfigPath returns the standard config file path.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "logcap", "config.yaml")
}
