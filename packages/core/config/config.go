package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SEARCHBOX_SERVERS.
const EnvPrefix = "SEARCHBOX"

// Config represents the searchbox configuration
type Config struct {
	Servers             []string          `yaml:"servers,omitempty" split_words:"true"`
	Compression         *bool             `yaml:"compression,omitempty" split_words:"true"`
	Timeout             time.Duration     `yaml:"timeout,omitempty" split_words:"true"`
	MaxIdleConns        int               `yaml:"maxIdleConns,omitempty" split_words:"true"`
	MaxIdleConnsPerHost int               `yaml:"maxIdleConnsPerHost,omitempty" split_words:"true"`
	ValidateSSL         *bool             `yaml:"validateSSL,omitempty" split_words:"true"`
	Proxy               string            `yaml:"proxy,omitempty" split_words:"true"`
	Headers             map[string]string `yaml:"headers,omitempty" split_words:"true"` // Default headers for all requests
	Codec               string            `yaml:"codec,omitempty" split_words:"true"`
	RateLimit           float64           `yaml:"rateLimit,omitempty" split_words:"true"` // requests per second, 0 = unlimited
	OpaqueID            *bool             `yaml:"opaqueID,omitempty" split_words:"true"`
	Log                 LogConfig         `yaml:"log,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `yaml:"level,omitempty" split_words:"true"`
	Development bool   `yaml:"development,omitempty" split_words:"true"`
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetCompression returns the request compression setting, defaulting to false
func (c *Config) GetCompression() bool {
	return getBool(c.Compression, false)
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// GetOpaqueID returns whether requests carry an X-Opaque-Id, defaulting to false
func (c *Config) GetOpaqueID() bool {
	return getBool(c.OpaqueID, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	"searchbox.yaml",
	".searchbox.yaml",
	".searchbox.yml",
}

// Load reads the configuration file (or searches for one), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return config, nil
}

// ApplyEnv overrides fields with SEARCHBOX_* environment variables that are set.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("failed to load config from environment: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the client cannot use.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Servers) == 0 {
		errs = append(errs, errors.New("at least one server is required"))
	}
	for _, s := range c.Servers {
		u, err := url.Parse(strings.TrimSpace(s))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("invalid server URL: %q", s))
		}
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout cannot be negative"))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("rateLimit cannot be negative"))
	}
	switch strings.ToLower(c.Codec) {
	case "", "sonic", "gojson", "go-json":
	default:
		errs = append(errs, fmt.Errorf("unknown codec: %q", c.Codec))
	}

	return errors.Join(errs...)
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if len(other.Servers) > 0 {
		result.Servers = append([]string(nil), other.Servers...)
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.MaxIdleConns > 0 {
		result.MaxIdleConns = other.MaxIdleConns
	}
	if other.MaxIdleConnsPerHost > 0 {
		result.MaxIdleConnsPerHost = other.MaxIdleConnsPerHost
	}
	if other.Proxy != "" {
		result.Proxy = other.Proxy
	}
	if other.Codec != "" {
		result.Codec = other.Codec
	}
	if other.RateLimit > 0 {
		result.RateLimit = other.RateLimit
	}
	if other.Log.Level != "" {
		result.Log.Level = other.Log.Level
	}
	if other.Log.Development {
		result.Log.Development = true
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Compression != nil {
		result.Compression = other.Compression
	}
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.OpaqueID != nil {
		result.OpaqueID = other.OpaqueID
	}

	// Merge headers
	if len(other.Headers) > 0 {
		merged := make(map[string]string, len(result.Headers)+len(other.Headers))
		for k, v := range result.Headers {
			merged[k] = v
		}
		for k, v := range other.Headers {
			merged[k] = v
		}
		result.Headers = merged
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
