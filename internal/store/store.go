// Package store persists capacity overrides across database backends.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/schema"
	_ "github.com/go-sql-driver/mysql"  // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"  // PostgreSQL driver
	_ "modernc.org/sqlite"              // SQLite driver
)

const overridesTable = "capacity_overrides"

// OverrideStoreImpl handles durable override storage using various database
// backends. A none backend degrades to a no-op store: reads return nothing and
// writes succeed silently.
type OverrideStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.OverrideStore = &OverrideStoreImpl{} // Compile-time check

// NewOverrideStore initializes and returns a new override store for the
// backend type. The overrides table is created on first use.
func NewOverrideStore(backend schema.DatabaseBackend, connStr string) (contract.OverrideStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		return &OverrideStoreImpl{db: nil, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.Exec(getCreateTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", overridesTable, err)
	}

	return &OverrideStoreImpl{db: db, backend: backend}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				org VARCHAR(128) NOT NULL,
				workspace VARCHAR(128) NOT NULL,
				user_id VARCHAR(128) NOT NULL,
				date CHAR(10) NOT NULL,
				hours DOUBLE NOT NULL,
				PRIMARY KEY (org, workspace, user_id, date)
			);
		`, overridesTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				org TEXT NOT NULL,
				workspace TEXT NOT NULL,
				user_id TEXT NOT NULL,
				date CHAR(10) NOT NULL,
				hours DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (org, workspace, user_id, date)
			);
		`, overridesTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				org TEXT NOT NULL,
				workspace TEXT NOT NULL,
				user_id TEXT NOT NULL,
				date TEXT NOT NULL,
				hours REAL NOT NULL,
				PRIMARY KEY (org, workspace, user_id, date)
			);
		`, overridesTable)
	}
}

// GetOverrides implements the OverrideStore interface. An empty userIDs slice
// matches no rows, mirroring an empty user scope upstream.
func (s *OverrideStoreImpl) GetOverrides(ctx context.Context, org, workspace string, userIDs []string, from, to string) ([]schema.CapacityOverride, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}
	if len(userIDs) == 0 {
		return nil, nil
	}

	args := []any{org, workspace, from, to}
	for _, id := range userIDs {
		args = append(args, id)
	}
	query := fmt.Sprintf(
		`SELECT org, workspace, user_id, date, hours FROM %s
			WHERE org = %s AND workspace = %s AND date >= %s AND date <= %s AND user_id IN (%s)
			ORDER BY user_id, date`,
		overridesTable,
		s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4),
		s.placeholderList(5, len(userIDs)),
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var overrides []schema.CapacityOverride
	for rows.Next() {
		var ov schema.CapacityOverride
		if err := rows.Scan(&ov.Org, &ov.Workspace, &ov.UserID, &ov.Date, &ov.Hours); err != nil {
			return nil, err
		}
		overrides = append(overrides, ov)
	}
	return overrides, rows.Err()
}

// SetOverride implements the OverrideStore interface with a backend-specific
// UPSERT, so repeated writes on the same key stay idempotent.
func (s *OverrideStoreImpl) SetOverride(ctx context.Context, ov schema.CapacityOverride) error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx, s.getUpsertQuery(), ov.Org, ov.Workspace, ov.UserID, ov.Date, ov.Hours)
	return err
}

// getUpsertQuery returns the UPSERT query for the backend.
func (s *OverrideStoreImpl) getUpsertQuery() string {
	switch s.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (org, workspace, user_id, date, hours) VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE hours = new.hours`, overridesTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (org, workspace, user_id, date, hours) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (org, workspace, user_id, date) DO UPDATE SET hours = EXCLUDED.hours`, overridesTable)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (org, workspace, user_id, date, hours) VALUES (?, ?, ?, ?, ?)`, overridesTable)
	}
}

// Status implements the OverrideStore interface: row counts per workspace.
func (s *OverrideStoreImpl) Status(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	if s.backend == schema.NoneBackend || s.db == nil {
		return counts, nil
	}

	query := fmt.Sprintf(`SELECT workspace, COUNT(*) FROM %s GROUP BY workspace`, overridesTable)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query store status: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var workspace string
		var count int
		if err := rows.Scan(&workspace, &count); err != nil {
			return nil, err
		}
		counts[workspace] = count
	}
	return counts, rows.Err()
}

// Clear implements the OverrideStore interface.
func (s *OverrideStoreImpl) Clear(ctx context.Context) error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, overridesTable))
	return err
}

// Close implements the OverrideStore interface.
func (s *OverrideStoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// placeholder returns the n-th parameter placeholder for the backend.
func (s *OverrideStoreImpl) placeholder(n int) string {
	if s.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// placeholderList returns count placeholders starting at position start.
func (s *OverrideStoreImpl) placeholderList(start, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = s.placeholder(start + i)
	}
	return strings.Join(parts, ", ")
}
