// Package config loads and validates the Astarte data access configuration.
//
// Configuration is read from a YAML file, merged over defaults, and can be
// overridden by ASTARTE_-prefixed environment variables for deployment
// secrets and per-host settings.
package config
