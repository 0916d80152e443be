// Package config loads, normalizes, and validates brronson configuration.
//
// It supplies repository defaults, expands tilde paths, reads TOML files,
// and honours the environment fallbacks the original deployment used for
// its library mounts. Always obtain settings through this package so
// downstream code receives sanitized paths and clear validation errors.
package config
