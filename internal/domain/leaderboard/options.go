package leaderboard

import (
	"strings"

	"github.com/okian/battle/pkg/logger"
)

// Option applies a configuration option to the Leaderboard.
type Option func(*Leaderboard)

// WithCollection sets the store key holding the entries.
func WithCollection(key string) Option {
	return func(l *Leaderboard) {
		if key = strings.TrimSpace(key); key != "" {
			l.collection = key
		}
	}
}

// WithLimit sets how many entries TopEntries exposes.
func WithLimit(n int) Option {
	return func(l *Leaderboard) {
		if n > 0 {
			l.limit = n
		}
	}
}

// WithLogger sets a logger for leaderboard writes.
func WithLogger(lg logger.Logger) Option {
	return func(l *Leaderboard) {
		if lg != nil {
			l.logger = lg
		}
	}
}
