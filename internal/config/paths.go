package config

import (
	"os"
	"path/filepath"

	"github.com/stepline/stepline/internal/constants"
	steplineerrors "github.com/stepline/stepline/internal/errors"
)

// GlobalConfigDir returns the path to the global stepline configuration
// directory: STEPLINE_HOME when set, otherwise ~/.stepline.
func GlobalConfigDir() (string, error) {
	if home := os.Getenv("STEPLINE_HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", steplineerrors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.SteplineHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file,
// typically ~/.stepline/config.yaml.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the relative path to the project configuration
// file, always .stepline/config.yaml relative to the working directory.
func ProjectConfigPath() string {
	return filepath.Join(constants.SteplineHome, constants.ConfigFileName)
}

// GlobalLogPath returns the full path to the rotating CLI log file,
// typically ~/.stepline/logs/stepline.log.
func GlobalLogPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir, constants.CLILogFileName), nil
}
