// Package config loads LED Hub configuration from YAML files with
// environment variable overrides (LEDHUB_* prefix) and validates the
// result before the rest of the system starts.
package config
