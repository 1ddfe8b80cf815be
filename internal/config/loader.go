package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader] and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Server
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if tls := cfg.Server.TLS; tls != nil {
		if tls.CertFile == "" {
			errs = append(errs, errors.New("server.tls.cert_file is required when tls is set"))
		}
		if tls.KeyFile == "" {
			errs = append(errs, errors.New("server.tls.key_file is required when tls is set"))
		}
	}

	// Editor
	if cfg.Editor.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("editor.history_limit %d is negative; use 0 for the default", cfg.Editor.HistoryLimit))
	} else if cfg.Editor.HistoryLimit == 1 {
		slog.Warn("editor.history_limit of 1 retains only the current snapshot; undo will never be available")
	}

	// Vocab thresholds
	if err := validateThreshold("vocab.phonetic_threshold", cfg.Vocab.PhoneticThreshold); err != nil {
		errs = append(errs, err)
	}
	if err := validateThreshold("vocab.fuzzy_threshold", cfg.Vocab.FuzzyThreshold); err != nil {
		errs = append(errs, err)
	}
	if cfg.Vocab.MinWordLen < 0 {
		errs = append(errs, fmt.Errorf("vocab.min_word_len %d is negative; use 0 for the default", cfg.Vocab.MinWordLen))
	}
	if p, f := cfg.Vocab.PhoneticThreshold, cfg.Vocab.FuzzyThreshold; p != 0 && f != 0 && f < p {
		slog.Warn("vocab.fuzzy_threshold is below vocab.phonetic_threshold; the similarity-only fallback will be more permissive than the phonetic path",
			"phonetic_threshold", p,
			"fuzzy_threshold", f,
		)
	}
	if !cfg.Vocab.Enabled && (cfg.Vocab.PhoneticThreshold != 0 || cfg.Vocab.FuzzyThreshold != 0 || cfg.Vocab.MinWordLen != 0) {
		slog.Warn("vocab thresholds are configured but vocab.enabled is false; content correction stays off")
	}

	// Gateway
	if cfg.Gateway.MaxMessageBytes < 0 {
		errs = append(errs, fmt.Errorf("gateway.max_message_bytes %d is negative; use 0 for the default", cfg.Gateway.MaxMessageBytes))
	}

	return errors.Join(errs...)
}

// validateThreshold checks a Jaro-Winkler threshold is within (0, 1].
// Zero is allowed and means "use the built-in default".
func validateThreshold(name string, v float64) error {
	if v == 0 {
		return nil
	}
	if v < 0 || v > 1 {
		return fmt.Errorf("%s %.2f is out of range (0, 1]", name, v)
	}
	return nil
}
