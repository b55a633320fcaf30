package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/rs/zerolog"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// kvTable holds one JSON record per key.
const kvTable = "kv"

const createKVTable = `CREATE TABLE IF NOT EXISTS kv (
	"key" TEXT PRIMARY KEY,
	"value" TEXT NOT NULL,
	"updated_at" TIMESTAMP NOT NULL
)`

// Store holds the database handle and provides access to repositories.
type Store struct {
	db     *sql.DB
	driver *entsql.Driver
	log    zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the record table.
func Open(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; a single writer keeps them in effect.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), createKVTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	s := &Store{
		db:     db,
		driver: entsql.OpenDB(dialect.SQLite, db),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.driver.Close()
}

// KVRepo returns the raw key-value repository.
func (s *Store) KVRepo() KVRepo {
	return &kvRepo{driver: s.driver}
}

// SnapshotRepo returns a SnapshotRepo backed by this store.
func (s *Store) SnapshotRepo() SnapshotRepo {
	return &snapshotRepo{kv: s.KVRepo(), log: s.log}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. BRICKMATH_DB environment variable
// 2. $XDG_DATA_HOME/brickmath/brickmath.db
// 3. ~/.local/share/brickmath/brickmath.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("BRICKMATH_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "brickmath", "brickmath.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
