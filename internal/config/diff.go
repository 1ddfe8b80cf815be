package config

// ConfigDiff describes what changed between two configs.
// Only fields that can be safely hot-reloaded are tracked.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	// VocabChanged is true when any vocab field differs; VocabDiff says which.
	VocabChanged bool
	Vocab        VocabDiff

	// HistoryLimitChanged is true when editor.history_limit differs. The new
	// value applies to sessions opened after the reload; live sessions keep
	// the limit they were created with.
	HistoryLimitChanged bool
	NewHistoryLimit     int
}

// VocabDiff describes which vocab correction fields changed.
type VocabDiff struct {
	EnabledChanged    bool
	ThresholdsChanged bool
	MinWordLenChanged bool
}

// Diff compares old and new configs and returns what changed.
// Only tracks changes that are safe to apply without restart; listen address
// and TLS changes require one and are ignored here.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}

	vd := diffVocab(&old.Vocab, &new.Vocab)
	if vd.EnabledChanged || vd.ThresholdsChanged || vd.MinWordLenChanged {
		d.VocabChanged = true
		d.Vocab = vd
	}

	if old.Editor.HistoryLimit != new.Editor.HistoryLimit {
		d.HistoryLimitChanged = true
		d.NewHistoryLimit = new.Editor.HistoryLimit
	}

	return d
}

// diffVocab compares two vocab correction configs.
func diffVocab(old, new *VocabConfig) VocabDiff {
	vd := VocabDiff{}

	if old.Enabled != new.Enabled {
		vd.EnabledChanged = true
	}
	if old.PhoneticThreshold != new.PhoneticThreshold || old.FuzzyThreshold != new.FuzzyThreshold {
		vd.ThresholdsChanged = true
	}
	if old.MinWordLen != new.MinWordLen {
		vd.MinWordLenChanged = true
	}

	return vd
}
