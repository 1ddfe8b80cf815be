// Package config provides the configuration schema, loader, and file watcher
// for the Respeak edit server.
package config

// LogLevel controls log verbosity for the Respeak server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure for Respeak.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Editor  EditorConfig  `yaml:"editor"`
	Vocab   VocabConfig   `yaml:"vocab"`
	Gateway GatewayConfig `yaml:"gateway"`
}

// ServerConfig holds network and logging settings for the Respeak server.
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// TLS configures TLS for the server. When nil, the server runs plain HTTP.
	TLS *TLSConfig `yaml:"tls"`
}

// TLSConfig holds TLS certificate paths for enabling HTTPS.
type TLSConfig struct {
	// CertFile is the path to the PEM-encoded TLS certificate.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the PEM-encoded TLS private key.
	KeyFile string `yaml:"key_file"`
}

// EditorConfig tunes per-session editing behaviour.
type EditorConfig struct {
	// HistoryLimit bounds the undo snapshots retained per session. When a
	// push exceeds it, the oldest snapshots are evicted. 0 means the built-in
	// default; applies to sessions opened after the value takes effect.
	HistoryLimit int `yaml:"history_limit"`
}

// VocabConfig tunes the phonetic correction of spoken content against the
// document's own vocabulary.
type VocabConfig struct {
	// Enabled switches content correction on. Off by default so that
	// transcripts reach the editor verbatim unless the deployment opts in.
	Enabled bool `yaml:"enabled"`

	// PhoneticThreshold is the minimum Jaro-Winkler score for accepting a
	// phonetically-matched vocabulary word. 0 means the built-in default.
	PhoneticThreshold float64 `yaml:"phonetic_threshold"`

	// FuzzyThreshold is the minimum Jaro-Winkler score for the pure
	// string-similarity fallback. 0 means the built-in default.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`

	// MinWordLen is the minimum length for a word to be considered on either
	// side of a correction. 0 means the built-in default.
	MinWordLen int `yaml:"min_word_len"`
}

// GatewayConfig holds limits for the websocket edit gateway.
type GatewayConfig struct {
	// MaxMessageBytes caps the size of a single incoming websocket message.
	// 0 means the built-in default.
	MaxMessageBytes int64 `yaml:"max_message_bytes"`
}
