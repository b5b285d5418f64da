package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat indicates a file extension other than .yaml, .yml
// or .json.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// FileError reports a variables or seed file that could not be loaded.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// FromFile loads a variables or seed file, choosing the decoder by
// extension (.yaml, .yml or .json, case-insensitive). Every error is a
// *FileError naming path.
func FromFile(path string) (Config, error) {
	var decode func([]byte) (Config, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		decode = FromYAML
	case ".json":
		decode = FromJSON
	default:
		return Config{}, &FileError{Path: path, Err: fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &FileError{Path: path, Err: err}
	}
	cfg, err := decode(data)
	if err != nil {
		return Config{}, &FileError{Path: path, Err: err}
	}
	return cfg, nil
}

// FromYAML decodes a YAML mapping. An empty document yields an empty Config.
func FromYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("decode yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON decodes a JSON object.
func FromJSON(data []byte) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("decode json: %w", err)
	}
	return New(m), nil
}
