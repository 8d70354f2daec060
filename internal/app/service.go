// Package service wires matches, the leaderboard and its store into the
// session API used by the terminal driver and the HTTP read API.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/okian/battle/internal/adapters/repository"
	"github.com/okian/battle/internal/domain/dedupe"
	"github.com/okian/battle/internal/domain/leaderboard"
	"github.com/okian/battle/internal/domain/match"
	"github.com/okian/battle/internal/domain/rng"
	"github.com/okian/battle/internal/domain/types"
	"github.com/okian/battle/pkg/logger"
	"github.com/okian/battle/pkg/metrics"
)

// Default seat names used when a player leaves their name blank.
const (
	DefaultPlayer1 = "Player 1"
	DefaultPlayer2 = "Player 2"
)

// Service owns the leaderboard store and hands out match controllers.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	board   *leaderboard.Leaderboard
	settled dedupe.Deduper
	seeder  *rng.Seeder

	// Configuration
	storeDriver     string
	storePath       string
	storeDSN        string
	collection      string
	leaderboardSize int
	seed            int64
	settledSize     int
	injectedStore   repository.Store

	// State
	started          bool
	ownsStore        bool
	open             map[string]struct{}
	matchesStarted   int
	matchesFinished  int
	matchesAbandoned int

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStoreDriver selects the leaderboard store: memory, sqlite or postgres.
func WithStoreDriver(driver string) Option {
	return func(s *Service) {
		if driver = strings.TrimSpace(driver); driver != "" {
			s.storeDriver = driver
		}
	}
}

// WithStorePath sets the SQLite database file.
func WithStorePath(path string) Option {
	return func(s *Service) {
		s.storePath = path
	}
}

// WithStoreDSN sets the Postgres connection string.
func WithStoreDSN(dsn string) Option {
	return func(s *Service) {
		s.storeDSN = dsn
	}
}

// WithStore injects an already open store. The service does not close it.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.injectedStore = store
	}
}

// WithCollection sets the store key holding the leaderboard.
func WithCollection(key string) Option {
	return func(s *Service) {
		s.collection = key
	}
}

// WithLeaderboardSize sets how many entries the leaderboard exposes.
func WithLeaderboardSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.leaderboardSize = n
		}
	}
}

// WithSeed fixes the root seed for match randomness. Zero seeds from the
// clock.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithSettledSize bounds how many finished match IDs are remembered.
func WithSettledSize(n int) Option {
	return func(s *Service) {
		s.settledSize = n
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storeDriver:     repository.DriverMemory,
		collection:      leaderboard.DefaultCollection,
		leaderboardSize: leaderboard.DefaultLimit,
		settledSize:     1024,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the store and the leaderboard.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting battle service...", logger.String("driver", s.storeDriver))

	store := s.injectedStore
	s.ownsStore = store == nil
	if store == nil {
		var err error
		store, err = repository.Open(ctx, s.storeDriver,
			repository.WithPath(s.storePath),
			repository.WithDSN(s.storeDSN),
		)
		if err != nil {
			metrics.RecordErrorByComponent("service", "store_open")
			return fmt.Errorf("open %s store: %w", s.storeDriver, err)
		}
	}

	board, err := leaderboard.New(ctx, store,
		leaderboard.WithCollection(s.collection),
		leaderboard.WithLimit(s.leaderboardSize),
		leaderboard.WithLogger(s.logger.Named("leaderboard")),
	)
	if err != nil {
		if s.ownsStore {
			_ = store.Close()
		}
		return fmt.Errorf("open leaderboard: %w", err)
	}
	if n, err := board.Count(ctx); err == nil {
		metrics.UpdateLeaderboardEntries(n)
	}

	s.store = store
	s.board = board
	s.settled = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.settledSize))
	s.seeder = rng.NewSeeder(s.seed)
	s.open = make(map[string]struct{})
	s.started = true

	s.logger.Info(ctx, "battle service started",
		logger.String("collection", board.Collection()),
		logger.Int("leaderboardSize", board.Limit()),
	)
	return nil
}

// Stop closes the store if the service opened it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping battle service...")
	if s.ownsStore && s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(ctx, "failed to close store", logger.Error(err))
		}
	}
	for range s.open {
		metrics.RecordMatchClosed()
	}
	s.open = nil
	s.store = nil
	s.board = nil
	s.started = false
	s.logger.Info(ctx, "battle service stopped")
}

// NewMatch creates a match with its own archetype pool and random source
// and seats both players. Blank names fall back to the seat defaults.
func (s *Service) NewMatch(ctx context.Context, name1, name2 string) (*match.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil, ErrNotStarted
	}

	c := match.New(
		match.WithRandom(s.seeder.Next()),
		match.WithLogger(s.logger.Named("match")),
	)
	p1 := match.NewPlayer(seatName(name1, DefaultPlayer1))
	p2 := match.NewPlayer(seatName(name2, DefaultPlayer2))
	if err := c.SetPlayers(ctx, p1, p2); err != nil {
		return nil, err
	}

	s.matchesStarted++
	s.open[c.ID()] = struct{}{}
	metrics.RecordMatchStarted()
	s.logger.Info(ctx, "match created",
		logger.String("match", c.ID()),
		logger.String("player1", p1.Name()),
		logger.String("player2", p2.Name()),
	)
	return c, nil
}

// FinishMatch settles a match that is over: the winner, if any, gains one
// leaderboard win. A draw records nothing. Settling the same match again
// returns the winner without writing.
func (s *Service) FinishMatch(ctx context.Context, c *match.Controller) (*match.Player, error) {
	s.mu.RLock()
	started, board, settled := s.started, s.board, s.settled
	s.mu.RUnlock()

	if !started {
		return nil, ErrNotStarted
	}
	if c == nil || c.State() != match.MatchOver {
		return nil, ErrMatchNotOver
	}

	winner := c.MatchWinner()
	if settled.SeenAndRecord(ctx, c.ID()) {
		s.logger.Debug(ctx, "match already settled", logger.String("match", c.ID()))
		return winner, nil
	}

	outcome := "draw"
	if winner != nil {
		if _, err := board.RecordWin(ctx, winner.Name()); err != nil {
			settled.Unrecord(ctx, c.ID())
			return nil, err
		}
		outcome = "win"
	}

	s.mu.Lock()
	s.matchesFinished++
	s.closeLocked(c.ID())
	s.mu.Unlock()

	metrics.RecordMatchFinished(outcome)
	fields := []logger.Field{logger.String("match", c.ID()), logger.String("outcome", outcome)}
	if winner != nil {
		fields = append(fields, logger.String("winner", winner.Name()))
	}
	s.logger.Info(ctx, "match finished", fields...)
	return winner, nil
}

// AbandonMatch closes a match that will not be played to the end. It does
// nothing for a match already finished or abandoned.
func (s *Service) AbandonMatch(ctx context.Context, c *match.Controller) {
	if c == nil {
		return
	}
	s.mu.Lock()
	closed := s.started && s.closeLocked(c.ID())
	if closed {
		s.matchesAbandoned++
	}
	s.mu.Unlock()

	if !closed {
		return
	}
	metrics.RecordMatchAbandoned()
	s.logger.Info(ctx, "match abandoned",
		logger.String("match", c.ID()),
		logger.String("state", c.State().String()),
	)
}

// ActiveMatches returns how many created matches are neither finished nor
// abandoned.
func (s *Service) ActiveMatches() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.open)
}

// Leaderboard returns the ranked top entries.
func (s *Service) Leaderboard(ctx context.Context) ([]types.Entry, error) {
	board, err := s.leaderboard()
	if err != nil {
		return nil, err
	}
	return board.TopEntries(ctx)
}

// TopN returns the top n ranked entries; n must be within the leaderboard
// size.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	board, err := s.leaderboard()
	if err != nil {
		return nil, err
	}
	return board.TopN(ctx, n)
}

// LeaderboardSize returns how many entries the leaderboard exposes.
func (s *Service) LeaderboardSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leaderboardSize
}

// ClearLeaderboard removes every leaderboard entry.
func (s *Service) ClearLeaderboard(ctx context.Context) error {
	board, err := s.leaderboard()
	if err != nil {
		return err
	}
	return board.Clear(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"storeDriver":      s.storeDriver,
		"collection":       s.collection,
		"leaderboardSize":  s.leaderboardSize,
		"matchesStarted":   s.matchesStarted,
		"matchesFinished":  s.matchesFinished,
		"matchesAbandoned": s.matchesAbandoned,
		"activeMatches":    len(s.open),
	}

	if s.started {
		stats["settledMatches"] = s.settled.Size()
		if n, err := s.board.Count(context.Background()); err == nil {
			stats["leaderboardEntries"] = n
			metrics.UpdateLeaderboardEntries(n)
		}
	}
	return stats
}

func (s *Service) leaderboard() (*leaderboard.Leaderboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.board, nil
}

// closeLocked drops id from the open set and lowers the active gauge. The
// caller must hold s.mu.
func (s *Service) closeLocked(id string) bool {
	if _, ok := s.open[id]; !ok {
		return false
	}
	delete(s.open, id)
	metrics.RecordMatchClosed()
	return true
}

func seatName(name, fallback string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return fallback
}
