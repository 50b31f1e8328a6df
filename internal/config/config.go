package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"gitbattle/internal/domain"
)

// Themes the UI knows how to render
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	GitHub  GitHubSettings `toml:"github"`
	UI      UISettings     `toml:"ui"`
	Log     LogSettings    `toml:"log"`
}

// GitHubSettings configures access to the GitHub API
type GitHubSettings struct {
	APIURL            string  `toml:"api_url"`
	Token             string  `toml:"token"`
	PerPage           int     `toml:"per_page"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Theme           string            `toml:"theme"`
	Languages       []domain.Language `toml:"languages"`
	DefaultLanguage domain.Language   `toml:"default_language"`
	LoadingText     string            `toml:"loading_text"`
	LoadingSpeedMS  int               `toml:"loading_speed_ms"`
}

// LogSettings configures the log file; an empty File disables logging
type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service backed by the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "gitbattle", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service backed by a specific file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the file the service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when missing
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path.
// Values missing from the file keep their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold a token
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration can drive the UI
func (c *Config) Validate() error {
	if len(c.UI.Languages) == 0 {
		return errors.New("ui.languages must not be empty")
	}
	if !slices.Contains(c.UI.Languages, c.UI.DefaultLanguage) {
		return fmt.Errorf("ui.default_language %q is not in ui.languages", c.UI.DefaultLanguage)
	}
	switch c.UI.Theme {
	case ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("ui.theme must be %q or %q, got %q", ThemeLight, ThemeDark, c.UI.Theme)
	}
	if c.UI.LoadingSpeedMS <= 0 {
		return fmt.Errorf("ui.loading_speed_ms must be positive, got %d", c.UI.LoadingSpeedMS)
	}
	if c.GitHub.PerPage <= 0 || c.GitHub.PerPage > 100 {
		return fmt.Errorf("github.per_page must be between 1 and 100, got %d", c.GitHub.PerPage)
	}
	if c.GitHub.RequestsPerSecond < 0 {
		return fmt.Errorf("github.requests_per_second must not be negative")
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		GitHub: GitHubSettings{
			PerPage:           30,
			RequestsPerSecond: 5,
		},
		UI: UISettings{
			Theme:           ThemeLight,
			Languages:       slices.Clone(domain.DefaultLanguages),
			DefaultLanguage: domain.AllLanguages,
			LoadingText:     "loading cool stuff so wait",
			LoadingSpeedMS:  300,
		},
		Log: LogSettings{
			File:  "gitbattle.log",
			Level: "info",
		},
	}
}
