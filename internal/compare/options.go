package compare

import (
	"log/slog"
	"os"

	"samefile/internal/fsys"
	"samefile/internal/metrics"
)

// Filesystem is what the comparer needs from the storage layer.
type Filesystem interface {
	Stat(name string) (os.FileInfo, error)
	Open(name string) (fsys.File, error)
}

// Option configures a Comparer.
type Option func(*Comparer)

// WithFS replaces the native filesystem.
func WithFS(fs Filesystem) Option {
	return func(c *Comparer) {
		c.fs = fs
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Comparer) {
		c.logger = logger
	}
}

// WithStats records run counters into s.
func WithStats(s *metrics.Stats) Option {
	return func(c *Comparer) {
		c.stats = s
	}
}

// WithProgress reports every run of matched bytes. fn is called from worker goroutines.
func WithProgress(fn func(n int64)) Option {
	return func(c *Comparer) {
		c.onProgress = fn
	}
}
