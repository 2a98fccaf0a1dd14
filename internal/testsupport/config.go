package testsupport

import (
	"path/filepath"
	"testing"

	"tnivo/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.BackupDir = filepath.Join(base, "backups")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithHistoryKeep overrides the history retention limit on the test config.
func WithHistoryKeep(keep int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.History.Keep = keep
	}
}

// WithCollisionPolicy overrides the organize collision policy on the test config.
func WithCollisionPolicy(policy string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Organize.OnCollision = policy
	}
}
