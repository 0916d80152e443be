package config

import "brronson/internal/classify"

const (
	defaultCleanupDir      = "/data"
	defaultTargetDir       = "/target"
	defaultRecycledDir     = "/recycled/movies"
	defaultSalvagedDir     = "/salvaged/movies"
	defaultMigratedDir     = "/migrated/movies"
	defaultDataDir         = "~/.local/share/brronson"
	defaultAPIBind         = "127.0.0.1:1968"
	defaultLogFormat       = "auto"
	defaultLogLevel        = "info"
	defaultJobPollInterval = 5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CleanupDir:  defaultCleanupDir,
			TargetDir:   defaultTargetDir,
			RecycledDir: defaultRecycledDir,
			SalvagedDir: defaultSalvagedDir,
			MigratedDir: defaultMigratedDir,
			DataDir:     defaultDataDir,
			APIBind:     defaultAPIBind,
		},
		Rules: Rules{
			UnwantedPatterns:   append([]string{}, classify.DefaultUnwantedPatterns...),
			SubtitleExtensions: append([]string{}, classify.DefaultSubtitleExtensions...),
			MovieExtensions:    append([]string{}, classify.DefaultMovieExtensions...),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Workflow: Workflow{
			JobPollInterval: defaultJobPollInterval,
		},
	}
}
