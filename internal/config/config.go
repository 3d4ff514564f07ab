package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"foodsearch/internal/eventbus"
)

const (
	DefaultEndpoint       = "https://uih0b7slze.execute-api.us-east-1.amazonaws.com/dev/search"
	DefaultQueryParam     = "kv"
	DefaultDebounceMillis = 500
	DefaultMinQueryLength = 3
)

// Config represents the application configuration
type Config struct {
	Version    int               `toml:"version"`
	API        APISettings       `toml:"api"`
	Search     SearchSettings    `toml:"search"`
	UISettings UISettings        `toml:"ui"`
	Messages   map[string]string `toml:"messages,omitempty"` // catalog key -> display text
}

// APISettings describes the remote lookup endpoint
type APISettings struct {
	Endpoint       string `toml:"endpoint"`
	QueryParam     string `toml:"query_param"`
	TimeoutSeconds int    `toml:"timeout_seconds"` // 0 means no client timeout
	UserAgent      string `toml:"user_agent,omitempty"`
}

// SearchSettings tunes the keystroke pipeline
type SearchSettings struct {
	DebounceMillis int `toml:"debounce_ms"`
	MinQueryLength int `toml:"min_query_length"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowFields  bool   `toml:"show_fields"`
	Placeholder string `toml:"placeholder"`
}

// Debounce returns the quiet period as a duration
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMillis) * time.Millisecond
}

// Timeout returns the HTTP client timeout, zero when disabled
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Validate reports settings the pipeline cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.API.QueryParam == "" {
		errs = append(errs, errors.New("api.query_param must not be empty"))
	}
	if c.API.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("api.timeout_seconds must not be negative, got %d", c.API.TimeoutSeconds))
	}
	if c.Search.DebounceMillis <= 0 {
		errs = append(errs, fmt.Errorf("search.debounce_ms must be positive, got %d", c.Search.DebounceMillis))
	}
	if c.Search.MinQueryLength <= 0 {
		errs = append(errs, fmt.Errorf("search.min_query_length must be positive, got %d", c.Search.MinQueryLength))
	}
	// An unusable endpoint is reported by the fetcher as MissingURL on each search.
	return errors.Join(errs...)
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
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
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
		filePath: filepath.Join(configDir, "foodsearch", "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// NewConfigServiceAt creates a config service bound to an explicit file
func NewConfigServiceAt(path string, bus eventbus.EventBus) ConfigService {
	return &configService{bus: bus, filePath: path}
}

// Path returns the file Load and Save operate on
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	// Return default config if file doesn't exist
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publishLoaded(cfg)
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	cs.publishLoaded(cfg)
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Messages == nil {
		cfg.Messages = make(map[string]string)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cs *configService) publishLoaded(cfg *Config) {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:     cs.filePath,
			Endpoint: cfg.API.Endpoint,
		})
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			Endpoint:   DefaultEndpoint,
			QueryParam: DefaultQueryParam,
		},
		Search: SearchSettings{
			DebounceMillis: DefaultDebounceMillis,
			MinQueryLength: DefaultMinQueryLength,
		},
		UISettings: UISettings{
			ShowFields:  true,
			Placeholder: "Search here e.g. chicken",
		},
		Messages: make(map[string]string),
	}
}
