package probes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/jonwraymond/launchgate/health"
)

// SQLite checks that the database at DSN opens and answers queries.
type SQLite struct {
	// DSN is a modernc.org/sqlite data source, such as
	// "file:/var/lib/app/app.db?mode=ro".
	DSN string

	// QuickCheck runs PRAGMA quick_check and fails unless it reports "ok".
	QuickCheck bool
}

// Probe implements health.Probe.
func (p SQLite) Probe(ctx context.Context) (health.Outcome, error) {
	// Opening a missing file would create an empty database.
	if path, ok := sqliteFile(p.DSN); ok {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return health.Fail(fmt.Sprintf("database %s does not exist", path)), nil
		}
	}

	db, err := sql.Open("sqlite", p.DSN)
	if err != nil {
		return health.Outcome{}, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return health.Fail(fmt.Sprintf("ping: %v", err)), nil
	}

	var version string
	if err := db.QueryRowContext(ctx, "SELECT sqlite_version()").Scan(&version); err != nil {
		return health.Fail(fmt.Sprintf("query: %v", err)), nil
	}
	details := map[string]any{"sqlite_version": version}

	if p.QuickCheck {
		var verdict string
		if err := db.QueryRowContext(ctx, "PRAGMA quick_check").Scan(&verdict); err != nil {
			return health.Fail(fmt.Sprintf("quick_check: %v", err)).WithDetails(details), nil
		}
		details["quick_check"] = verdict
		if verdict != "ok" {
			return health.Fail("quick_check: " + verdict).WithDetails(details), nil
		}
	}

	return health.Pass("sqlite " + version).WithDetails(details), nil
}

// sqliteFile returns the file path named by dsn, or false for in-memory
// databases.
func sqliteFile(dsn string) (string, bool) {
	path, query, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return "", false
	}
	return path, true
}
