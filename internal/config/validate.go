package config

import (
	"errors"
	"fmt"

	"brronson/internal/classify"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRules(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Workflow.JobPollInterval <= 0 {
		return errors.New("workflow.job_poll_interval must be positive")
	}
	return nil
}

func (c *Config) validatePaths() error {
	required := map[string]string{
		"paths.cleanup_dir":  c.Paths.CleanupDir,
		"paths.target_dir":   c.Paths.TargetDir,
		"paths.recycled_dir": c.Paths.RecycledDir,
		"paths.salvaged_dir": c.Paths.SalvagedDir,
		"paths.migrated_dir": c.Paths.MigratedDir,
		"paths.data_dir":     c.Paths.DataDir,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}
	return nil
}

func (c *Config) validateRules() error {
	if _, err := classify.CompilePatterns(c.Rules.UnwantedPatterns); err != nil {
		return fmt.Errorf("rules.unwanted_patterns: %w", err)
	}
	if len(c.Rules.SubtitleExtensions) == 0 {
		return errors.New("rules.subtitle_extensions must not be empty")
	}
	if len(c.Rules.MovieExtensions) == 0 {
		return errors.New("rules.movie_extensions must not be empty")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
