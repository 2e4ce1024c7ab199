// Package config loads tomodoro's configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ProjectFile is the per-directory config file name
const ProjectFile = ".tomodoro.json"

// Config represents the full tomodoro configuration
type Config struct {
	Store     StoreConfig     `json:"store" yaml:"store"`
	Companion CompanionConfig `json:"companion" yaml:"companion"`
	Media     MediaConfig     `json:"media" yaml:"media"`
	Timer     TimerConfig     `json:"timer" yaml:"timer"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// StoreConfig locates the shared record directory
type StoreConfig struct {
	Dir       string `json:"dir" yaml:"dir"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

// CompanionConfig controls the companion pane
type CompanionConfig struct {
	// SocketPath is where the main window listens; empty means a per-process
	// path in the temp directory.
	SocketPath       string   `json:"socketPath" yaml:"socketPath"`
	Command          []string `json:"command" yaml:"command"`
	Width            int      `json:"width" yaml:"width"`
	ConnectTimeoutMs int      `json:"connectTimeoutMs" yaml:"connectTimeoutMs"`
}

// MediaConfig points at the music player bridge
type MediaConfig struct {
	Disabled         bool   `json:"disabled" yaml:"disabled"`
	Origin           string `json:"origin" yaml:"origin"`
	Endpoint         string `json:"endpoint" yaml:"endpoint"`
	TimeoutMs        int    `json:"timeoutMs" yaml:"timeoutMs"`
	ProbeIntervalSec int    `json:"probeIntervalSec" yaml:"probeIntervalSec"`
}

// TimerConfig tunes the countdown heartbeat
type TimerConfig struct {
	TickIntervalMs int `json:"tickIntervalMs" yaml:"tickIntervalMs"`
}

// LogConfig controls the log file
type LogConfig struct {
	File  string `json:"file" yaml:"file"`
	Level string `json:"level" yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}

	return &Config{
		Store: StoreConfig{
			Dir:       filepath.Join(configDir, "tomodoro", "store"),
			Namespace: "tomodoro",
		},
		Companion: CompanionConfig{
			Command:          []string{"tomodoro-pip"},
			Width:            40,
			ConnectTimeoutMs: 5000,
		},
		Media: MediaConfig{
			Origin:           "http://localhost:8974",
			Endpoint:         "/player",
			TimeoutMs:        3000,
			ProbeIntervalSec: 10,
		},
		Timer: TimerConfig{
			TickIntervalMs: 1000,
		},
		Log: LogConfig{
			File:  filepath.Join(cacheDir, "tomodoro", "tomodoro.log"),
			Level: "info",
		},
	}
}

// LoadConfig loads configuration with priority:
// 1. explicit path (the --config flag), YAML or JSON by extension
// 2. .tomodoro.json in projectPath (JSON with comments, versioned)
// 3. <UserConfigDir>/tomodoro/config.yaml
// 4. Defaults
func LoadConfig(explicitPath, projectPath string) (*Config, error) {
	if explicitPath != "" {
		data, err := os.ReadFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", explicitPath, err)
		}
		cfg, err := parseFile(explicitPath, data)
		if err != nil {
			return nil, err
		}
		return MergeWithDefaults(cfg), nil
	}

	projectConfig := filepath.Join(projectPath, ProjectFile)
	if data, err := os.ReadFile(projectConfig); err == nil {
		cfg, err := ParseVersionedConfig(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
		}
		return MergeWithDefaults(cfg), nil
	}

	if path, ok := userConfigPath(); ok {
		if data, err := os.ReadFile(path); err == nil {
			cfg, err := parseYAML(data)
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
			return MergeWithDefaults(cfg), nil
		}
	}

	return DefaultConfig(), nil
}

// Load is a convenience function that loads config from the current directory
func Load(explicitPath string) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(explicitPath, cwd)
}

// SaveConfig writes cfg as versioned JSON
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Store.Dir == "" {
		cfg.Store.Dir = defaults.Store.Dir
	}
	if cfg.Store.Namespace == "" {
		cfg.Store.Namespace = defaults.Store.Namespace
	}

	if len(cfg.Companion.Command) == 0 {
		cfg.Companion.Command = defaults.Companion.Command
	}
	if cfg.Companion.Width <= 0 {
		cfg.Companion.Width = defaults.Companion.Width
	}
	if cfg.Companion.ConnectTimeoutMs <= 0 {
		cfg.Companion.ConnectTimeoutMs = defaults.Companion.ConnectTimeoutMs
	}

	if cfg.Media.Origin == "" {
		cfg.Media.Origin = defaults.Media.Origin
	}
	if cfg.Media.Endpoint == "" {
		cfg.Media.Endpoint = defaults.Media.Endpoint
	}
	if cfg.Media.TimeoutMs <= 0 {
		cfg.Media.TimeoutMs = defaults.Media.TimeoutMs
	}
	if cfg.Media.ProbeIntervalSec <= 0 {
		cfg.Media.ProbeIntervalSec = defaults.Media.ProbeIntervalSec
	}

	if cfg.Timer.TickIntervalMs <= 0 {
		cfg.Timer.TickIntervalMs = defaults.Timer.TickIntervalMs
	}

	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	return cfg
}

// Socket returns the companion socket path for the main window with pid
func (c CompanionConfig) Socket(pid int) string {
	if c.SocketPath != "" {
		return c.SocketPath
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("tomodoro-%d.sock", pid))
}

// ConnectTimeout returns the companion connect timeout
func (c CompanionConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutMs) * time.Millisecond
}

// Timeout returns the per-command media timeout
func (c MediaConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// ProbeInterval returns the delay between readiness probes
func (c MediaConfig) ProbeInterval() time.Duration {
	return time.Duration(c.ProbeIntervalSec) * time.Second
}

// TickInterval returns the countdown heartbeat
func (c TimerConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

func userConfigPath() (string, bool) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "tomodoro", "config.yaml"), true
}

func parseFile(path string, data []byte) (*Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err := parseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return cfg, nil
	default:
		cfg, err := ParseVersionedConfig(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return cfg, nil
	}
}

func parseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// stripComments turns JSON with comments and trailing commas into plain JSON
func stripComments(data []byte) []byte {
	return jsonc.ToJSON(data)
}
