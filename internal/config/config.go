package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the full focal configuration
type Config struct {
	API       APIConfig       `yaml:"api"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Timer     TimerConfig     `yaml:"timer"`
	Storage   StorageConfig   `yaml:"storage"`
}

// APIConfig contains persistence API settings
type APIConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// WorkspaceConfig identifies the tenant the client writes entries for
type WorkspaceConfig struct {
	OrganizationID string `yaml:"organizationId"`
	UserID         string `yaml:"userId"`
}

// TimerConfig contains pomodoro cycle settings
type TimerConfig struct {
	FocusSeconds   int  `yaml:"focusSeconds"`
	BreakSeconds   int  `yaml:"breakSeconds"`
	LongBreakEvery int  `yaml:"longBreakEvery"`
	Chime          bool `yaml:"chime"`
}

// StorageConfig contains local file locations
type StorageConfig struct {
	SnapshotPath string `yaml:"snapshotPath"`
	OutboxPath   string `yaml:"outboxPath"`
	LogPath      string `yaml:"logPath"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	dataDir := defaultDataDir()

	return &Config{
		API: APIConfig{
			TimeoutSeconds: 10,
		},
		Timer: TimerConfig{
			FocusSeconds:   25 * 60,
			BreakSeconds:   5 * 60,
			LongBreakEvery: 4,
			Chime:          true,
		},
		Storage: StorageConfig{
			SnapshotPath: filepath.Join(dataDir, "session.json"),
			OutboxPath:   filepath.Join(dataDir, "outbox.db"),
			LogPath:      filepath.Join(dataDir, "focal.log"),
		},
	}
}

// Timeout returns the persistence API call timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Load reads configuration from the default path, falling back to defaults
// when no config file exists.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom loads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return MergeWithDefaults(&cfg), nil
}

// Save writes configuration to the specified path
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = defaults.API.TimeoutSeconds
	}

	if cfg.Timer.FocusSeconds == 0 {
		cfg.Timer.FocusSeconds = defaults.Timer.FocusSeconds
	}
	if cfg.Timer.BreakSeconds == 0 {
		cfg.Timer.BreakSeconds = defaults.Timer.BreakSeconds
	}
	if cfg.Timer.LongBreakEvery == 0 {
		cfg.Timer.LongBreakEvery = defaults.Timer.LongBreakEvery
	}

	if cfg.Storage.SnapshotPath == "" {
		cfg.Storage.SnapshotPath = defaults.Storage.SnapshotPath
	}
	if cfg.Storage.OutboxPath == "" {
		cfg.Storage.OutboxPath = defaults.Storage.OutboxPath
	}
	if cfg.Storage.LogPath == "" {
		cfg.Storage.LogPath = defaults.Storage.LogPath
	}

	return cfg
}

// DefaultPath returns the path of the user-level config file.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "focal", "config.yaml")
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".focal")
}
