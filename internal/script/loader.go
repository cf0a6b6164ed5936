// Package script loads test scripts from YAML or JSON files.
package script

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stepline/stepline/internal/domain"
	steplineerrors "github.com/stepline/stepline/internal/errors"
)

// Loader loads scripts from files.
type Loader struct {
	basePath string
}

// NewLoader creates a script loader. basePath is used to resolve relative
// script paths (typically the current working directory).
func NewLoader(basePath string) *Loader {
	return &Loader{basePath: basePath}
}

// LoadFromFile loads a script from a YAML or JSON file.
// The format is auto-detected from the file extension (.json for JSON,
// otherwise YAML). Returns an error if the file cannot be read, parsed,
// or validated.
func (l *Loader) LoadFromFile(path string) (*domain.Script, error) {
	resolvedPath := l.resolvePath(path)

	data, err := os.ReadFile(resolvedPath) //nolint:gosec // Path comes from the CLI invocation
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", steplineerrors.ErrScriptFileMissing, resolvedPath)
		}
		return nil, fmt.Errorf("%w: %w", steplineerrors.ErrScriptParseError, err)
	}

	var script domain.Script
	if l.detectFormat(path) == "json" {
		if parseErr := json.Unmarshal(data, &script); parseErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", steplineerrors.ErrScriptParseError, path, parseErr)
		}
	} else {
		if parseErr := yaml.Unmarshal(data, &script); parseErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", steplineerrors.ErrScriptParseError, path, parseErr)
		}
	}

	if script.Name == "" {
		script.Name = scriptNameFromPath(path)
	}

	if err := Validate(&script); err != nil {
		return nil, err
	}

	return &script, nil
}

// LoadAll loads multiple script files, failing fast on the first error.
func (l *Loader) LoadAll(paths []string) ([]*domain.Script, error) {
	if len(paths) == 0 {
		return nil, steplineerrors.ErrNoScriptFiles
	}

	loaded := make([]*domain.Script, 0, len(paths))
	for _, path := range paths {
		script, err := l.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("script %q: %w", path, err)
		}
		loaded = append(loaded, script)
	}
	return loaded, nil
}

// Validate checks structural requirements on a loaded script.
//
// Validation is deliberately shallow: while directive arguments are raw
// tokens here and are only validated when the directive is entered at run
// time, so a script whose while step is never reached can still load.
func Validate(script *domain.Script) error {
	if len(script.Steps) == 0 {
		return fmt.Errorf("%w: %s", steplineerrors.ErrScriptEmpty, script.Name)
	}
	return validateSteps(script.Steps, "")
}

func validateSteps(steps []domain.Step, parent string) error {
	for i := range steps {
		step := &steps[i]
		label := step.Label()
		if parent != "" {
			label = parent + " > " + label
		}
		if step.Type == "" {
			return fmt.Errorf("%w: step %q has no type", steplineerrors.ErrScriptInvalid, label)
		}
		if step.Type == domain.StepTypeWhile {
			if err := validateSteps(step.Body, label); err != nil {
				return err
			}
			continue
		}
		if len(step.Body) > 0 {
			return fmt.Errorf("%w: step %q: only while steps may have a body", steplineerrors.ErrScriptInvalid, label)
		}
		if len(step.Args) > 0 {
			return fmt.Errorf("%w: step %q: only while steps take args", steplineerrors.ErrScriptInvalid, label)
		}
	}
	return nil
}

// resolvePath resolves a script path, supporting absolute and relative paths.
func (l *Loader) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.basePath, path)
}

// detectFormat returns "json" for .json files and "yaml" for everything else.
func (l *Loader) detectFormat(path string) string {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return "json"
	}
	return "yaml"
}

// scriptNameFromPath derives a script name from its file name, minus the
// extension.
func scriptNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
