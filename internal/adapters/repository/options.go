package repository

import "strings"

// Option applies a configuration option to Open.
type Option func(*settings)

type settings struct {
	path string
	dsn  string
}

// WithPath sets the SQLite database file.
func WithPath(path string) Option {
	return func(s *settings) {
		s.path = strings.TrimSpace(path)
	}
}

// WithDSN sets the Postgres connection string.
func WithDSN(dsn string) Option {
	return func(s *settings) {
		s.dsn = strings.TrimSpace(dsn)
	}
}
