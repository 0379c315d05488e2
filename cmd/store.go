package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/exercise-tracker/internal/store"
	"github.com/example/exercise-tracker/internal/store/postgres"
	"github.com/example/exercise-tracker/internal/store/sqlite"
)

// backend is a store that can also bring its schema up to date.
type backend interface {
	store.Store
	Migrate(ctx context.Context) ([]string, error)
}

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

// parseStoreURL picks the driver for url and the DSN handed to it.
func parseStoreURL(url string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return driverPostgres, url, nil
	case strings.HasPrefix(url, "sqlite://"):
		dsn = strings.TrimPrefix(url, "sqlite://")
		if dsn == "" {
			return "", "", fmt.Errorf("store url %q has no path", url)
		}
		return driverSQLite, dsn, nil
	case strings.HasPrefix(url, "file:"), url == ":memory:":
		return driverSQLite, url, nil
	}
	return "", "", fmt.Errorf("unsupported store url %q (want postgres://, sqlite://, file: or :memory:)", url)
}

func openStore(ctx context.Context, url string) (backend, error) {
	driver, dsn, err := parseStoreURL(url)
	if err != nil {
		return nil, err
	}

	var b backend
	switch driver {
	case driverPostgres:
		b, err = postgres.Open(ctx, dsn)
	default:
		b, err = sqlite.Open(ctx, dsn)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}

	if err := b.Ping(ctx); err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("store ping: %w", err)
	}
	return b, nil
}

// openMigrated opens the configured store and migrates it.
func openMigrated(ctx context.Context, url string) (backend, error) {
	b, err := openStore(ctx, url)
	if err != nil {
		return nil, err
	}
	if _, err := b.Migrate(ctx); err != nil {
		_ = b.Close()
		return nil, err
	}
	return b, nil
}
