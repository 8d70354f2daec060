// Package repository persists named score collections for the leaderboard.
package repository

import (
	"context"
	"time"

	"github.com/okian/battle/internal/domain/model"
	"github.com/okian/battle/pkg/metrics"
)

// Supported store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store is a key-value store of score collections. Implementations must be
// safe for concurrent use.
type Store interface {
	// Load returns the collection under key. The boolean is false when the
	// key has never been saved.
	Load(ctx context.Context, key string) ([]model.ScoreEntry, bool, error)

	// Save replaces the collection under key.
	Save(ctx context.Context, key string, entries []model.ScoreEntry) error

	// Close releases the store. Operations after Close return ErrClosed.
	Close() error
}

func observe(driver, operation string, start time.Time) {
	metrics.RecordStoreLatency(driver, operation, float64(time.Since(start).Microseconds())/1000)
}

func cloneEntries(entries []model.ScoreEntry) []model.ScoreEntry {
	out := make([]model.ScoreEntry, len(entries))
	copy(out, entries)
	return out
}
