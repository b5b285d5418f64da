package config

import (
	"errors"
	"fmt"
	"sort"
)

// Config wraps a decoded variables or seed file.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// Templates returns the "templates" section of a catalog seed file as a
// map from entry name to expression source. A missing section yields nil.
// Returns an error wrapping ErrInvalidTemplates when the section is not a
// mapping or an entry is not a string.
func (c Config) Templates() (map[string]string, error) {
	switch val := c.data["templates"].(type) {
	case nil:
		return nil, nil
	case map[string]string:
		return val, nil
	case map[string]any:
		out := make(map[string]string, len(val))
		for name, item := range val {
			src, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: entry %q is %T, not a string", ErrInvalidTemplates, name, item)
			}
			out[name] = src
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidTemplates, val)
	}
}

// Sub returns the nested section under key as a Config. A missing or
// non-map value yields an empty Config.
func (c Config) Sub(key string) Config {
	if m, ok := c.data[key].(map[string]any); ok {
		return New(m)
	}
	return New(nil)
}

// Variables returns the top-level entries as template variables: scalars
// become their text, sequences lists, and mappings maps. Null entries stay
// nil and expand as undefined. Sequences and mappings nested inside another
// collection are rejected, since template values are at most one level deep.
func (c Config) Variables() (map[string]any, error) {
	vars := make(map[string]any, len(c.data))
	for _, k := range c.keys() {
		v, err := variable(c.data[k])
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", k, err)
		}
		vars[k] = v
	}
	return vars, nil
}

var (
	// ErrNestedValue indicates a list or map nested inside another collection.
	ErrNestedValue = errors.New("nested collections are not template values")

	// ErrInvalidTemplates indicates a templates section that does not map
	// names to expression strings.
	ErrInvalidTemplates = errors.New("templates must map names to expression strings")
)

func variable(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []any:
		items := make([]string, len(val))
		for i, item := range val {
			s, err := text(item)
			if err != nil {
				return nil, err
			}
			items[i] = s
		}
		return items, nil
	case map[string]any:
		m := make(map[string]string, len(val))
		for k, item := range val {
			s, err := text(item)
			if err != nil {
				return nil, err
			}
			m[k] = s
		}
		return m, nil
	default:
		return text(val)
	}
}

func text(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case []any, map[string]any:
		return "", ErrNestedValue
	default:
		return fmt.Sprint(val), nil
	}
}

func (c Config) keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
