// Package config provides configuration management for Timely.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the Timely application.
type Config struct {
	FirstRun      bool               `mapstructure:"first_run"`
	Session       SessionConfig      `mapstructure:"session"`
	Completion    CompletionConfig   `mapstructure:"completion"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	MCP           MCPConfig          `mapstructure:"mcp"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// SessionConfig holds session timer settings.
type SessionConfig struct {
	DefaultDuration Duration `mapstructure:"default_duration"`
	MaxRecoveryAge  Duration `mapstructure:"max_recovery_age"`
}

// CompletionConfig holds the delayed-completion countdown settings.
type CompletionConfig struct {
	Delay         Duration `mapstructure:"delay"`
	PromptTimeout Duration `mapstructure:"prompt_timeout"`
	TickInterval  Duration `mapstructure:"tick_interval"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// ThemeConfig holds theme customization settings.
type ThemeConfig struct {
	Dark        bool   `mapstructure:"dark"`
	ColorTitle  string `mapstructure:"color_title"`
	ColorActive string `mapstructure:"color_active"`
	ColorBreak  string `mapstructure:"color_break"`
	ColorHelp   string `mapstructure:"color_help"`
	IconApp     string `mapstructure:"icon_app"`
	IconGit     string `mapstructure:"icon_git"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		Dark:        true,
		ColorTitle:  "#6B7280",
		ColorActive: "#7C6FE0",
		ColorBreak:  "#4ECDC4",
		ColorHelp:   "#95A5A6",
		IconApp:     "⏱",
		IconGit:     "🌿",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FirstRun: true,
		Session: SessionConfig{
			DefaultDuration: Duration(time.Hour),
			MaxRecoveryAge:  Duration(24 * time.Hour),
		},
		Completion: CompletionConfig{
			Delay:         Duration(3 * time.Second),
			PromptTimeout: Duration(5 * time.Second),
			TickInterval:  Duration(30 * time.Millisecond),
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			DataDir: "~/.timely",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.timely" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".timely")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("first_run", cfg.FirstRun)
	viper.Set("session.default_duration", cfg.Session.DefaultDuration.String())
	viper.Set("session.max_recovery_age", cfg.Session.MaxRecoveryAge.String())
	viper.Set("completion.delay", cfg.Completion.Delay.String())
	viper.Set("completion.prompt_timeout", cfg.Completion.PromptTimeout.String())
	viper.Set("completion.tick_interval", cfg.Completion.TickInterval.String())
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("mcp.enabled", cfg.MCP.Enabled)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("theme.dark", cfg.Theme.Dark)
	viper.Set("theme.color_title", cfg.Theme.ColorTitle)
	viper.Set("theme.color_active", cfg.Theme.ColorActive)
	viper.Set("theme.color_break", cfg.Theme.ColorBreak)
	viper.Set("theme.color_help", cfg.Theme.ColorHelp)
	viper.Set("theme.icon_app", cfg.Theme.IconApp)
	viper.Set("theme.icon_git", cfg.Theme.IconGit)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".timely", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "timely.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("first_run", true)
	viper.SetDefault("session.default_duration", "1h0m0s")
	viper.SetDefault("session.max_recovery_age", "24h0m0s")
	viper.SetDefault("completion.delay", "3s")
	viper.SetDefault("completion.prompt_timeout", "5s")
	viper.SetDefault("completion.tick_interval", "30ms")
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("mcp.enabled", true)
	viper.SetDefault("storage.data_dir", "~/.timely")

	defaults := DefaultThemeConfig()
	viper.SetDefault("theme.dark", defaults.Dark)
	viper.SetDefault("theme.color_title", defaults.ColorTitle)
	viper.SetDefault("theme.color_active", defaults.ColorActive)
	viper.SetDefault("theme.color_break", defaults.ColorBreak)
	viper.SetDefault("theme.color_help", defaults.ColorHelp)
	viper.SetDefault("theme.icon_app", defaults.IconApp)
	viper.SetDefault("theme.icon_git", defaults.IconGit)
}
