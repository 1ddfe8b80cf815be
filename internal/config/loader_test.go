package config_test

import (
	"strings"
	"testing"

	"github.com/MrWong99/respeak/internal/config"
)

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := config.Load("/nonexistent/respeak.yaml")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: bananas
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for invalid log level, got nil")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error should mention log_level, got: %v", err)
	}
}

func TestValidate_TLSRequiresBothFiles(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  tls:
    cert_file: /etc/respeak/tls.crt
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for missing key_file, got nil")
	}
	if !strings.Contains(err.Error(), "key_file") {
		t.Errorf("error should mention key_file, got: %v", err)
	}
}

func TestValidate_NegativeHistoryLimit(t *testing.T) {
	t.Parallel()
	yaml := `
editor:
  history_limit: -5
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for negative history limit, got nil")
	}
	if !strings.Contains(err.Error(), "history_limit") {
		t.Errorf("error should mention history_limit, got: %v", err)
	}
}

func TestValidate_ThresholdOutOfRange(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		yaml string
	}{
		{"phonetic above one", "vocab:\n  phonetic_threshold: 1.5\n"},
		{"phonetic negative", "vocab:\n  phonetic_threshold: -0.1\n"},
		{"fuzzy above one", "vocab:\n  fuzzy_threshold: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.LoadFromReader(strings.NewReader(tt.yaml))
			if err == nil {
				t.Fatal("expected out-of-range error, got nil")
			}
			if !strings.Contains(err.Error(), "out of range") {
				t.Errorf("error should mention out of range, got: %v", err)
			}
		})
	}
}

func TestValidate_ZeroThresholdsAllowed(t *testing.T) {
	t.Parallel()
	yaml := `
vocab:
  enabled: true
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Vocab.PhoneticThreshold != 0 {
		t.Errorf("phonetic_threshold should stay 0 (built-in default), got %v", cfg.Vocab.PhoneticThreshold)
	}
}

func TestValidate_JoinsAllFailures(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: loud
editor:
  history_limit: -1
gateway:
  max_message_bytes: -100
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected joined validation error, got nil")
	}
	for _, want := range []string{"log_level", "history_limit", "max_message_bytes"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error should mention %s, got: %v", want, err)
		}
	}
}
