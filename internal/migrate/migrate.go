// Package migrate applies the embedded, forward-only schema files.
package migrate

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/example/exercise-tracker/internal/db"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Dialect selects a schema directory and the bind syntax of its driver.
type Dialect struct {
	Name string
	// Bind is the placeholder for the first statement argument.
	Bind string
}

var (
	Postgres = Dialect{Name: "postgres", Bind: "$1"}
	SQLite   = Dialect{Name: "sqlite", Bind: "?"}
)

// Target is the minimum a database handle needs to be migrated.
type Target interface {
	Exec(ctx context.Context, sql string, args ...any) error
	QueryRow(ctx context.Context, sql string, args ...any) db.Row
}

// Files returns the migration file names for a dialect, in apply order.
func Files(d Dialect) ([]string, error) {
	entries, err := fs.ReadDir(files, d.Name)
	if err != nil {
		return nil, fmt.Errorf("migrate: unknown dialect %q: %w", d.Name, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".sql") {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// Up applies every file not yet recorded in schema_migrations and returns
// the names it applied.
func Up(ctx context.Context, t Target, d Dialect) ([]string, error) {
	names, err := Files(d)
	if err != nil {
		return nil, err
	}

	if err := t.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY);`); err != nil {
		return nil, err
	}

	var applied []string
	for _, f := range names {
		var done bool
		if err := t.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version=`+d.Bind+`)`, f).Scan(&done); err != nil {
			return applied, err
		}
		if done {
			continue
		}

		b, err := files.ReadFile(path.Join(d.Name, f))
		if err != nil {
			return applied, err
		}

		if err := t.Exec(ctx, string(b)); err != nil {
			return applied, fmt.Errorf("apply %s: %w", f, err)
		}
		if err := t.Exec(ctx, `INSERT INTO schema_migrations(version) VALUES (`+d.Bind+`)`, f); err != nil {
			return applied, err
		}
		applied = append(applied, f)
	}

	return applied, nil
}
