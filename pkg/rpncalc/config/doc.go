/*
Package config loads calculator settings from YAML, JSON, or TOML files.

# Keys

	precision         int     fractional digits kept in results (0..15, default 5)
	strict_operators  bool    abort on unknown operator symbols (default false)
	collapse_errors   bool    report every failure as kind "unknown" (default false)
	log_level         string  debug, info, warn, error (default info)
	log_format        string  text or json (default text)
	metrics           bool    record OpenTelemetry metrics (default false)
	tracing           bool    record OpenTelemetry spans (default false)
	journal           string  SQLite path for calculation history, "" disables it

Missing keys keep their defaults. Present keys with the wrong type are
reported as a *FieldError rather than silently ignored.

# File Loading

	settings, err := config.FromFile("rpncalc.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	// Or from bytes
	settings, err = config.FromYAML(data)
	settings, err = config.FromTOML(data)
	settings, err = config.FromJSON(data)

The format is chosen by extension: .yaml, .yml, .json, .toml.
*/
package config
