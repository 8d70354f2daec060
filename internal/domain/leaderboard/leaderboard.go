// Package leaderboard keeps match win counts by player name in an injected
// key-value store.
package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/okian/battle/internal/domain/model"
	"github.com/okian/battle/internal/domain/types"
	"github.com/okian/battle/pkg/logger"
	"github.com/okian/battle/pkg/metrics"
)

// Defaults applied when no option overrides them.
const (
	DefaultCollection = "scoreboard"
	DefaultLimit      = 5
)

// Store is the persistence collaborator. The leaderboard does not own it
// and never closes it.
type Store interface {
	Load(ctx context.Context, key string) ([]model.ScoreEntry, bool, error)
	Save(ctx context.Context, key string, entries []model.ScoreEntry) error
}

// Leaderboard records wins and serves the ranked top entries. Entries are
// kept in first-win order so equal scores rank stably.
type Leaderboard struct {
	mu         sync.Mutex
	store      Store
	collection string
	limit      int
	logger     logger.Logger
}

// New binds a leaderboard to store, creating an empty collection when the
// key has no value yet.
func New(ctx context.Context, store Store, opts ...Option) (*Leaderboard, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	l := &Leaderboard{
		store:      store,
		collection: DefaultCollection,
		limit:      DefaultLimit,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}

	_, ok, err := store.Load(ctx, l.collection)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", l.collection, err)
	}
	if !ok {
		if err := store.Save(ctx, l.collection, []model.ScoreEntry{}); err != nil {
			return nil, fmt.Errorf("initialize %s: %w", l.collection, err)
		}
		l.logger.Debug(ctx, "initialized empty collection", logger.String("collection", l.collection))
	}
	return l, nil
}

// Limit returns how many entries TopEntries exposes.
func (l *Leaderboard) Limit() int { return l.limit }

// Collection returns the store key in use.
func (l *Leaderboard) Collection() string { return l.collection }

// RecordWin adds one win for name, inserting it with a score of 1 when it
// is new. Names match exactly. A blank name records nothing and returns
// false.
func (l *Leaderboard) RecordWin(ctx context.Context, name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load(ctx)
	if err != nil {
		return false, err
	}
	score := 1
	found := false
	for i := range entries {
		if entries[i].Name == name {
			entries[i].Score++
			score = entries[i].Score
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, model.ScoreEntry{Name: name, Score: 1})
	}
	if err := l.store.Save(ctx, l.collection, entries); err != nil {
		metrics.RecordErrorByComponent("leaderboard", "save")
		return false, fmt.Errorf("record win for %s: %w", name, err)
	}

	metrics.RecordLeaderboardWin()
	metrics.UpdateLeaderboardEntries(len(entries))
	l.logger.Info(ctx, "win recorded", logger.String("name", name), logger.Int("score", score))
	return true, nil
}

// TopEntries returns up to Limit entries by descending score.
func (l *Leaderboard) TopEntries(ctx context.Context) ([]types.Entry, error) {
	return l.TopN(ctx, l.limit)
}

// TopN returns up to n entries by descending score, ties in first-win
// order. n must lie in [1, Limit].
func (l *Leaderboard) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	if n < 1 || n > l.limit {
		metrics.RecordErrorByComponent("leaderboard", "invalid_limit")
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidLimit, n, l.limit)
	}

	l.mu.Lock()
	entries, err := l.load(ctx)
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > n {
		entries = entries[:n]
	}

	out := make([]types.Entry, len(entries))
	for i, e := range entries {
		out[i] = types.Entry{Name: e.Name, Score: e.Score}
	}
	assignRanksWithTies(out)
	return out, nil
}

// Count returns the number of distinct names recorded.
func (l *Leaderboard) Count(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries, err := l.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Clear removes every entry.
func (l *Leaderboard) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.Save(ctx, l.collection, []model.ScoreEntry{}); err != nil {
		return fmt.Errorf("clear %s: %w", l.collection, err)
	}
	metrics.UpdateLeaderboardEntries(0)
	l.logger.Info(ctx, "leaderboard cleared", logger.String("collection", l.collection))
	return nil
}

func (l *Leaderboard) load(ctx context.Context) ([]model.ScoreEntry, error) {
	entries, _, err := l.store.Load(ctx, l.collection)
	if err != nil {
		metrics.RecordErrorByComponent("leaderboard", "load")
		return nil, fmt.Errorf("load %s: %w", l.collection, err)
	}
	return entries, nil
}

// assignRanksWithTies gives equal scores the same rank; the next distinct
// score takes the following rank.
func assignRanksWithTies(entries []types.Entry) {
	rank := 0
	for i := range entries {
		if i == 0 || entries[i].Score != entries[i-1].Score {
			rank++
		}
		entries[i].Rank = rank
	}
}
