package testsupport

import (
	"path/filepath"
	"testing"

	"subburn/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The transcript cache is disabled unless an option turns it back on.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Recognizer.CacheEnabled = false
	cfg.Recognizer.CachePath = filepath.Join(base, "cache", "transcripts.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithMaxChars sets the segmenter budget on the test config.
func WithMaxChars(maxChars int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Segmenter.MaxChars = maxChars
	}
}

// WithCacheEnabled turns the transcript cache on.
func WithCacheEnabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Recognizer.CacheEnabled = true
	}
}
