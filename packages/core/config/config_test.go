package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"http://localhost:9200"}, cfg.Servers)
	assert.False(t, cfg.GetCompression())
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.GetOpaqueID())
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "sonic", cfg.Codec)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.IsDefault())
	assert.NoError(t, cfg.Validate())
}

func TestGetters_NilDefaults(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.GetCompression())
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.GetOpaqueID())
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "searchbox.yaml")
	content := `
servers:
  - http://es1:9200
  - http://es2:9200
compression: true
timeout: 5s
codec: gojson
headers:
  X-Tenant: acme
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Servers)
	assert.True(t, cfg.GetCompression())
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "gojson", cfg.Codec)
	assert.Equal(t, "acme", cfg.Headers["X-Tenant"])
	assert.Equal(t, "debug", cfg.Log.Level)

	// Unset fields keep their defaults
	assert.Equal(t, 100, cfg.MaxIdleConns)
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.IsDefault())
}

func TestFindAndLoadConfig(t *testing.T) {
	t.Run("no file returns defaults", func(t *testing.T) {
		cfg, err := FindAndLoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.True(t, cfg.IsDefault())
	})

	t.Run("dotfile is found", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".searchbox.yml"), []byte("servers: [\"http://found:9200\"]\n"), 0644))

		cfg, err := FindAndLoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"http://found:9200"}, cfg.Servers)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "searchbox.yaml"), []byte("servers: [unterminated\n"), 0644))

		_, err := FindAndLoadConfig(dir)
		assert.Error(t, err)
	})
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SEARCHBOX_SERVERS", "http://a:9200,http://b:9200")
	t.Setenv("SEARCHBOX_COMPRESSION", "true")
	t.Setenv("SEARCHBOX_TIMEOUT", "750ms")
	t.Setenv("SEARCHBOX_RATE_LIMIT", "12.5")
	t.Setenv("SEARCHBOX_HEADERS", "X-Tenant:acme,X-Env:test")
	t.Setenv("SEARCHBOX_LOG_LEVEL", "warn")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, []string{"http://a:9200", "http://b:9200"}, cfg.Servers)
	assert.True(t, cfg.GetCompression())
	assert.Equal(t, 750*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 12.5, cfg.RateLimit)
	assert.Equal(t, map[string]string{"X-Tenant": "acme", "X-Env": "test"}, cfg.Headers)
	assert.Equal(t, "warn", cfg.Log.Level)

	// Unset variables leave values alone
	assert.Equal(t, "sonic", cfg.Codec)
	assert.True(t, cfg.GetValidateSSL())
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv("SEARCHBOX_TIMEOUT", "soon")
	cfg := DefaultConfig()
	assert.Error(t, cfg.ApplyEnv())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "searchbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte("servers: [\"http://file:9200\"]\ncodec: sonic\n"), 0644))
	t.Setenv("SEARCHBOX_CODEC", "gojson")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://file:9200"}, cfg.Servers)
	assert.Equal(t, "gojson", cfg.Codec)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "no servers", mutate: func(c *Config) { c.Servers = nil }, wantErr: "at least one server"},
		{name: "bad scheme", mutate: func(c *Config) { c.Servers = []string{"ftp://es:9200"} }, wantErr: "invalid server URL"},
		{name: "no host", mutate: func(c *Config) { c.Servers = []string{"http://"} }, wantErr: "invalid server URL"},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantErr: "timeout"},
		{name: "negative rate", mutate: func(c *Config) { c.RateLimit = -1 }, wantErr: "rateLimit"},
		{name: "unknown codec", mutate: func(c *Config) { c.Codec = "gson" }, wantErr: "unknown codec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	base.Headers = map[string]string{"X-Tenant": "acme", "X-Env": "prod"}

	merged := base.Merge(&Config{
		Servers:     []string{"http://override:9200"},
		Compression: BoolPtr(true),
		Headers:     map[string]string{"X-Env": "test"},
		Log:         LogConfig{Level: "debug"},
	})

	assert.Equal(t, []string{"http://override:9200"}, merged.Servers)
	assert.True(t, merged.GetCompression())
	assert.True(t, merged.GetValidateSSL())
	assert.Equal(t, map[string]string{"X-Tenant": "acme", "X-Env": "test"}, merged.Headers)
	assert.Equal(t, "debug", merged.Log.Level)
	assert.Equal(t, 30*time.Second, merged.Timeout)

	// The receiver is not modified
	assert.Equal(t, "prod", base.Headers["X-Env"])
	assert.False(t, base.GetCompression())

	assert.Same(t, base, base.Merge(nil))
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "searchbox.yaml")
	cfg := DefaultConfig()
	cfg.Servers = []string{"http://saved:9200"}
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://saved:9200"}, loaded.Servers)
	assert.Equal(t, cfg.Timeout, loaded.Timeout)
}
