// Package cmd implements the searchbox CLI commands using Cobra.
//
// Available commands:
//   - get, index, delete, exists: single-document operations
//   - search, count, mlt, delete-by-query: query operations
//   - mock: start an in-memory search engine for local development
//   - version: show searchbox version information
//
// Every command that talks to a server reads searchbox.yaml (or the file
// given with --config), applies SEARCHBOX_* environment overrides and then
// the global flags.
package cmd
