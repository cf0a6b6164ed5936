package config

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/spf13/viper"

	steplineerrors "github.com/stepline/stepline/internal/errors"
)

// newViperInstance creates a Viper instance with the standard stepline
// configuration: defaults, STEPLINE_ environment prefix, and key replacer.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("STEPLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults configures all default values on the Viper instance.
// Keys must match the yaml tag names exactly.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("loop.default_limit", defaults.Loop.DefaultLimit)
	v.SetDefault("run.parallel", defaults.Run.Parallel)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("log.level", defaults.Log.Level)
}

// isConfigNotFoundError reports whether err is viper's config-file-not-found
// error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound)
}

// Load reads configuration from all available sources with proper precedence.
// Missing config files are not an error; only unreadable or invalid
// configuration is.
func Load() (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	return unmarshalAndValidate(v)
}

// LoadFromPaths loads configuration from specific file paths. Either path can
// be empty to skip that level; projectConfigPath has the higher precedence.
func LoadFromPaths(projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, steplineerrors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}
	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, steplineerrors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// Overrides carries CLI flag values that take precedence over every config
// file and environment variable. Zero values mean "not set".
type Overrides struct {
	DefaultLoopLimit int
	Parallel         int
	OutputFormat     string
	LogLevel         string
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// Only non-zero override values are applied.
func LoadWithOverrides(overrides *Overrides) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if overrides != nil {
		applyOverrides(cfg, overrides)
		if err := Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func applyOverrides(cfg *Config, overrides *Overrides) {
	if overrides.DefaultLoopLimit != 0 {
		cfg.Loop.DefaultLimit = overrides.DefaultLoopLimit
	}
	if overrides.Parallel != 0 {
		cfg.Run.Parallel = overrides.Parallel
	}
	if overrides.OutputFormat != "" {
		cfg.Output.Format = overrides.OutputFormat
	}
	if overrides.LogLevel != "" {
		cfg.Log.Level = overrides.LogLevel
	}
}

// loadGlobalConfig loads ~/.stepline/config.yaml when present.
func loadGlobalConfig(v *viper.Viper) error {
	path, err := GlobalConfigPath()
	if err != nil {
		return nil //nolint:nilerr // No home directory means no global config
	}
	if !fileExists(path) {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return steplineerrors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig loads .stepline/config.yaml from the working directory
// when present. It merges over the global config.
func loadProjectConfig(v *viper.Viper) error {
	path := ProjectConfigPath()
	if !fileExists(path) {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return steplineerrors.Wrap(err, "failed to read project config file")
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// unmarshalAndValidate unmarshals the viper state into a Config and
// validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, steplineerrors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
