package config

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration keys.
const (
	KeyPrecision       = "precision"
	KeyStrictOperators = "strict_operators"
	KeyCollapseErrors  = "collapse_errors"
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
	KeyMetrics         = "metrics"
	KeyTracing         = "tracing"
	KeyJournal         = "journal"
)

// MaxPrecision bounds Settings.Precision.
const MaxPrecision = 15

// ErrInvalidSettings is wrapped by every Validate failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings controls a calculator and its ambient services.
type Settings struct {
	Precision       int
	StrictOperators bool
	CollapseErrors  bool
	LogLevel        string
	LogFormat       string
	Metrics         bool
	Tracing         bool
	Journal         string
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		Precision: 5,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Validate checks ranges and enumerations.
func (s Settings) Validate() error {
	if s.Precision < 0 || s.Precision > MaxPrecision {
		return fmt.Errorf("%w: precision %d outside 0..%d", ErrInvalidSettings, s.Precision, MaxPrecision)
	}
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidSettings, s.LogLevel)
	}
	switch strings.ToLower(s.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidSettings, s.LogFormat)
	}
	return nil
}

// FromMap builds validated Settings from a decoded document, starting from Default.
func FromMap(m map[string]any) (Settings, error) {
	v := values(m)
	s := Default()
	var err error

	if s.Precision, err = v.integer(KeyPrecision, s.Precision); err != nil {
		return Settings{}, err
	}
	if s.StrictOperators, err = v.boolean(KeyStrictOperators, s.StrictOperators); err != nil {
		return Settings{}, err
	}
	if s.CollapseErrors, err = v.boolean(KeyCollapseErrors, s.CollapseErrors); err != nil {
		return Settings{}, err
	}
	if s.LogLevel, err = v.str(KeyLogLevel, s.LogLevel); err != nil {
		return Settings{}, err
	}
	if s.LogFormat, err = v.str(KeyLogFormat, s.LogFormat); err != nil {
		return Settings{}, err
	}
	if s.Metrics, err = v.boolean(KeyMetrics, s.Metrics); err != nil {
		return Settings{}, err
	}
	if s.Tracing, err = v.boolean(KeyTracing, s.Tracing); err != nil {
		return Settings{}, err
	}
	if s.Journal, err = v.str(KeyJournal, s.Journal); err != nil {
		return Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
