// Package config persists render settings between runs as a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

const (
	appDir       = "pathtracer"
	settingsFile = "settings.toml"
)

// DefaultPath returns <user config dir>/pathtracer/settings.toml, or a dot
// directory in the home directory when the platform has no config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := homedir.Dir()
		if herr != nil {
			return "", fmt.Errorf("locating settings directory: %w", errors.Join(err, herr))
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appDir, settingsFile), nil
}

// ResolvePath expands a leading ~ in path, or returns DefaultPath for an empty path
func ResolvePath(path string) (string, error) {
	if path == "" {
		return DefaultPath()
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expanding settings path %q: %w", path, err)
	}
	return expanded, nil
}

// Load reads settings from path. Keys missing from the file keep their default
// values, and a missing file yields the defaults. A file that exists but does
// not parse is an error.
func Load(path string, logger core.Logger) (renderer.RenderSettings, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	settings := renderer.DefaultRenderSettings()

	resolved, err := ResolvePath(path)
	if err != nil {
		return settings, err
	}

	data, err := os.ReadFile(resolved)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Printf("No settings file at %s, using defaults\n", resolved)
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("reading settings %s: %w", resolved, err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return renderer.DefaultRenderSettings(), fmt.Errorf("parsing settings %s at %d:%d: %w", resolved, row, col, err)
		}
		return renderer.DefaultRenderSettings(), fmt.Errorf("parsing settings %s: %w", resolved, err)
	}

	logger.Printf("Loaded settings from %s\n", resolved)
	return settings, nil
}

// Save writes settings to path, creating parent directories as needed
func Save(path string, settings renderer.RenderSettings) (string, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return "", err
	}

	data, err := Encode(settings)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return "", fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return "", fmt.Errorf("writing settings %s: %w", resolved, err)
	}
	return resolved, nil
}

// Encode renders settings as TOML, as printed by --print-settings
func Encode(settings renderer.RenderSettings) ([]byte, error) {
	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.SetIndentTables(true)
	if err := encoder.Encode(settings); err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return buf.Bytes(), nil
}
