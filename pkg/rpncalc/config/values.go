package config

import (
	"fmt"
	"math"
)

// FieldError reports a key whose value has the wrong type or range.
type FieldError struct {
	// Key is the configuration key.
	Key string
	// Value is the raw decoded value.
	Value any
	// Want describes the expected value.
	Want string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("config key %q: got %v (%T), want %s", e.Key, e.Value, e.Value, e.Want)
}

// values wraps a decoded document for typed extraction.
// Each accessor returns def when the key is missing.
type values map[string]any

func (v values) str(key, def string) (string, error) {
	raw, ok := v[key]
	if !ok {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return def, &FieldError{Key: key, Value: raw, Want: "string"}
	}
	return s, nil
}

func (v values) boolean(key string, def bool) (bool, error) {
	raw, ok := v[key]
	if !ok {
		return def, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return def, &FieldError{Key: key, Value: raw, Want: "bool"}
	}
	return b, nil
}

// integer accepts int (YAML), int64 (TOML) and whole float64 (JSON).
func (v values) integer(key string, def int) (int, error) {
	raw, ok := v[key]
	if !ok {
		return def, nil
	}
	switch n := raw.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	}
	return def, &FieldError{Key: key, Value: raw, Want: "integer"}
}
