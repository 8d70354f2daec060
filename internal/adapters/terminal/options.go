package terminal

import (
	"time"

	"github.com/okian/battle/pkg/logger"
)

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithRoundPause sets how long a round result stays on screen before the
// next round starts.
func WithRoundPause(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.pause = d
		}
	}
}

// WithLogger sets a logger for session events.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}
