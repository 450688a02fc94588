// Package config handles configuration loading and management for jrny.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// AI providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
	ProviderOpenAI    = "openai"
	ProviderNone      = "none"
)

// Config holds all configuration for jrny.
type Config struct {
	User    UserConfig    `mapstructure:"user"`
	Storage StorageConfig `mapstructure:"storage"`
	AI      AIConfig      `mapstructure:"ai"`
	Log     LogConfig     `mapstructure:"log"`
	UI      UIConfig      `mapstructure:"ui"`
}

// UserConfig identifies the journey owner.
type UserConfig struct {
	ID string `mapstructure:"id"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	// Path is the sqlite database file. Empty means the XDG data directory.
	Path string `mapstructure:"path"`
	// Driver is "sqlite" (pure Go) or "sqlite3" (cgo).
	Driver string `mapstructure:"driver"`
}

// AIConfig holds plan generation settings.
type AIConfig struct {
	Provider   string        `mapstructure:"provider"`
	Model      string        `mapstructure:"model"`
	APIKey     string        `mapstructure:"api_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	AWSRegion  string        `mapstructure:"aws_region"`
	AWSProfile string        `mapstructure:"aws_profile"`
	OpenAI     OpenAIConfig  `mapstructure:"openai"`
}

// OpenAIConfig holds settings for OpenAI-compatible providers.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// LogConfig holds debug log settings.
type LogConfig struct {
	// Path is the debug log file. Empty disables logging.
	Path string `mapstructure:"path"`
}

// UIConfig holds terminal view settings.
type UIConfig struct {
	// Watch refreshes the journey view when the database changes on disk.
	Watch         bool          `mapstructure:"watch"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, OPENAI_API_KEY, JRNY_USER)
// 2. Project config (.jrny.yaml in current directory or parent)
// 3. User config (~/.config/jrny/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	bindEnv(v)
	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	bindEnv(v)
	return unmarshal(v)
}

func bindEnv(v *viper.Viper) {
	v.BindEnv("ai.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("ai.openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("user.id", "JRNY_USER")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.AI.APIKey = expandEnv(cfg.AI.APIKey)
	cfg.AI.OpenAI.APIKey = expandEnv(cfg.AI.OpenAI.APIKey)
	cfg.Storage.Path = expandEnv(cfg.Storage.Path)
	cfg.Log.Path = expandEnv(cfg.Log.Path)

	return cfg, nil
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	return SaveToPath(cfg, GetUserConfigPath())
}

// SaveToPath writes the configuration to path.
func SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("user.id", cfg.User.ID)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("storage.driver", cfg.Storage.Driver)
	v.Set("ai.provider", cfg.AI.Provider)
	v.Set("ai.model", cfg.AI.Model)
	v.Set("ai.api_key", cfg.AI.APIKey)
	v.Set("ai.timeout", cfg.AI.Timeout.String())
	v.Set("ai.aws_region", cfg.AI.AWSRegion)
	v.Set("ai.aws_profile", cfg.AI.AWSProfile)
	v.Set("ai.openai.api_key", cfg.AI.OpenAI.APIKey)
	v.Set("ai.openai.model", cfg.AI.OpenAI.Model)
	v.Set("ai.openai.base_url", cfg.AI.OpenAI.BaseURL)
	v.Set("log.path", cfg.Log.Path)
	v.Set("ui.watch", cfg.UI.Watch)
	v.Set("ui.watch_debounce", cfg.UI.WatchDebounce.String())

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// DefaultLogPath returns the debug log location under XDG_STATE_HOME.
func DefaultLogPath() string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", ".local", "state", "jrny", "jrny.log")
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "jrny", "jrny.log")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("user.id", "local")

	v.SetDefault("storage.path", "")
	v.SetDefault("storage.driver", "sqlite")

	v.SetDefault("ai.provider", ProviderAnthropic)
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.timeout", "2m")
	v.SetDefault("ai.aws_region", "")
	v.SetDefault("ai.aws_profile", "")
	v.SetDefault("ai.openai.api_key", "")
	v.SetDefault("ai.openai.model", "gpt-4o-mini")
	v.SetDefault("ai.openai.base_url", "")

	v.SetDefault("log.path", DefaultLogPath())

	v.SetDefault("ui.watch", true)
	v.SetDefault("ui.watch_debounce", "250ms")
}

// getUserConfigDir returns the XDG config directory for jrny.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "jrny")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "jrny")
	}
	return filepath.Join(home, ".config", "jrny")
}

// findProjectConfig searches for .jrny.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".jrny.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		User:    UserConfig{ID: "local"},
		Storage: StorageConfig{Driver: "sqlite"},
		AI: AIConfig{
			Provider: ProviderAnthropic,
			Timeout:  2 * time.Minute,
			OpenAI:   OpenAIConfig{Model: "gpt-4o-mini"},
		},
		Log: LogConfig{Path: DefaultLogPath()},
		UI: UIConfig{
			Watch:         true,
			WatchDebounce: 250 * time.Millisecond,
		},
	}
}
