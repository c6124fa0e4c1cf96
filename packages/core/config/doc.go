// Package config handles configuration loading and management for searchbox.
//
// It provides functionality for:
//   - Loading configuration from searchbox.yaml or .searchbox.yml files
//   - Default configuration values
//   - SEARCHBOX_* environment variable overrides
//   - Merging command-line overrides
package config
