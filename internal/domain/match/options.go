package match

import (
	"github.com/okian/battle/internal/domain/registry"
	"github.com/okian/battle/internal/domain/rng"
	"github.com/okian/battle/pkg/logger"
)

// Option applies a configuration option to the Controller.
type Option func(*Controller)

// WithRandom sets the source for coin tosses and damage rolls.
func WithRandom(src rng.Source) Option {
	return func(c *Controller) {
		if src != nil {
			c.rng = src
		}
	}
}

// WithLogger sets a logger for match events.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithID overrides the generated match ID.
func WithID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.id = id
		}
	}
}

// WithRegistry sets the archetype pool. The registry is reset on use so a
// recycled pool never carries claims from another match.
func WithRegistry(r *registry.Registry) Option {
	return func(c *Controller) {
		if r != nil {
			r.Reset()
			c.registry = r
		}
	}
}
