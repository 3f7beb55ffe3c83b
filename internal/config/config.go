package config

import (
	"os"
	"strconv"
)

// Config holds the run-wide configuration loaded from the environment.
// It is read once at startup and passed explicitly to collaborators;
// nothing reads the environment after Load returns.
type Config struct {
	Presets PresetConfig
	Compose ComposeConfig
	Serve   ServeConfig
}

type PresetConfig struct {
	Dir     string // directory searched for preset files by name
	Default string // preset used when --preset is not given
}

type ComposeConfig struct {
	FitMode     string // contain, cover or stretch
	ScaleFilter string // catmullrom, bilinear, approx or nearest
	OutputDir   string // empty: derive from input dir plus timestamp
}

type ServeConfig struct {
	Host string
	Port int
}

// envStr reads an environment variable with a fallback default.
func envStr(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Presets: PresetConfig{
			Dir:     envStr("COMPOSER_PRESET_DIR", "presets"),
			Default: envStr("COMPOSER_DEFAULT_PRESET", "2col"),
		},
		Compose: ComposeConfig{
			FitMode:     envStr("COMPOSER_FIT_MODE", "contain"),
			ScaleFilter: envStr("COMPOSER_SCALE_FILTER", "catmullrom"),
			OutputDir:   os.Getenv("COMPOSER_OUTPUT_DIR"),
		},
		Serve: ServeConfig{
			Host: envStr("COMPOSER_HOST", "0.0.0.0"),
			Port: envInt("COMPOSER_PORT", 8080),
		},
	}
}
