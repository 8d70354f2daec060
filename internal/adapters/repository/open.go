package repository

import (
	"context"
	"fmt"
	"strings"
)

// Open builds the store for driver. Unknown drivers return ErrUnknownDriver.
func Open(ctx context.Context, driver string, opts ...Option) (Store, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		return OpenSQLite(ctx, s.path)
	case DriverPostgres:
		return OpenPostgres(ctx, s.dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
