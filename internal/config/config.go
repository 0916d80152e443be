package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains library roots and daemon filesystem locations.
type Paths struct {
	// CleanupDir is the staging root scanned for unwanted files and
	// compared against the library for duplicates.
	CleanupDir string `toml:"cleanup_dir"`
	// TargetDir is the library root: destination for relocated folders,
	// source for empty-folder pruning and non-movie migration.
	TargetDir string `toml:"target_dir"`
	// RecycledDir holds folders awaiting deletion whose subtitles may be
	// worth salvaging.
	RecycledDir string `toml:"recycled_dir"`
	// SalvagedDir receives salvaged subtitle trees.
	SalvagedDir string `toml:"salvaged_dir"`
	// MigratedDir receives folders that hold no movie files.
	MigratedDir string `toml:"migrated_dir"`
	// DataDir holds the job database and the daemon lock file.
	DataDir string `toml:"data_dir"`
	// APIBind is the daemon HTTP listen address.
	APIBind string `toml:"api_bind"`
}

// Rules contains the default classifier inputs. Callers may override all of
// them per request.
type Rules struct {
	UnwantedPatterns   []string `toml:"unwanted_patterns"`
	SubtitleExtensions []string `toml:"subtitle_extensions"`
	MovieExtensions    []string `toml:"movie_extensions"`
}

// Safety contains path-guard tuning.
type Safety struct {
	// AllowedRoots are additional sandbox roots exempted from the
	// protected-location deny-list, e.g. a scratch mount used in testing.
	AllowedRoots []string `toml:"allowed_roots"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"` // console, json, or auto
	Level  string `toml:"level"`
}

// Workflow contains daemon timing configuration.
type Workflow struct {
	// JobPollInterval is the worker's queue poll cadence in seconds.
	JobPollInterval int `toml:"job_poll_interval"`
}

// Config encapsulates every knob the daemon and CLI need.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Rules    Rules    `toml:"rules"`
	Safety   Safety   `toml:"safety"`
	Logging  Logging  `toml:"logging"`
	Workflow Workflow `toml:"workflow"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/brronson/config.toml")
}

// Load locates, parses, normalizes, and validates a configuration file. The
// returned config has all path fields expanded; environment fallbacks are
// applied over file values.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// applyEnv honors the environment variables the original deployment used to
// point at its library mounts.
func (c *Config) applyEnv() {
	overrides := []struct {
		key  string
		dest *string
	}{
		{"CLEANUP_DIRECTORY", &c.Paths.CleanupDir},
		{"TARGET_DIRECTORY", &c.Paths.TargetDir},
		{"RECYCLED_MOVIES_DIRECTORY", &c.Paths.RecycledDir},
		{"SALVAGED_MOVIES_DIRECTORY", &c.Paths.SalvagedDir},
		{"MIGRATED_MOVIES_DIRECTORY", &c.Paths.MigratedDir},
		{"BRRONSON_API_BIND", &c.Paths.APIBind},
	}
	for _, o := range overrides {
		if value := os.Getenv(o.key); value != "" {
			*o.dest = value
		}
	}
}

// EnsureDirectories creates the directories the daemon owns.
func (c *Config) EnsureDirectories() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if err := os.MkdirAll(c.Paths.DataDir, 0o755); err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	projectPath, err := filepath.Abs("brronson.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}
