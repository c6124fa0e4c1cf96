package config

import "time"

// DefaultServer is used when no server is configured
const DefaultServer = "http://localhost:9200"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Servers:             []string{DefaultServer},
		Compression:         BoolPtr(false),
		Timeout:             30 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		ValidateSSL:         BoolPtr(true),
		Proxy:               "",
		Headers:             nil,
		Codec:               "sonic",
		RateLimit:           0,
		OpaqueID:            BoolPtr(false),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return len(c.Servers) == 1 && c.Servers[0] == defaults.Servers[0] &&
		c.GetCompression() == defaults.GetCompression() &&
		c.Timeout == defaults.Timeout &&
		c.MaxIdleConns == defaults.MaxIdleConns &&
		c.MaxIdleConnsPerHost == defaults.MaxIdleConnsPerHost &&
		c.GetValidateSSL() == defaults.GetValidateSSL() &&
		c.Proxy == defaults.Proxy &&
		len(c.Headers) == 0 &&
		c.Codec == defaults.Codec &&
		c.RateLimit == defaults.RateLimit &&
		c.GetOpaqueID() == defaults.GetOpaqueID() &&
		c.Log == defaults.Log
}
