package session

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/pkg/clock"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS session_blobs (
	session_key TEXT PRIMARY KEY,
	blob BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteConfig holds the configuration for the SQLite repository
type SQLiteConfig struct {
	Path  string
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *SQLiteConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", c.Path, vb)
	if c.Clock == nil {
		vb.RequiredField("clock")
	}
	return vb.Build()
}

// SQLiteRepository persists blobs in a local SQLite database
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// OpenSQLiteRepository opens the database at cfg.Path and creates the
// session table if needed
func OpenSQLiteRepository(cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	dsn := filepath.Clean(cfg.Path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open sqlite db")
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to migrate sqlite db")
	}

	return &SQLiteRepository{db: db, clock: cfg.Clock}, nil
}

var _ Repository = (*SQLiteRepository)(nil)

// Close releases the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Get retrieves a blob by key
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT session_key, blob, updated_at FROM session_blobs WHERE session_key = ?`,
		input.Key,
	)

	var record Record
	var updatedAt int64
	if err := row.Scan(&record.Key, &record.Blob, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("session %s not found", input.Key)
		}
		return nil, errors.Wrap(err, "failed to get session from sqlite")
	}
	record.UpdatedAt = time.UnixMilli(updatedAt).UTC()

	return &GetOutput{Record: &record}, nil
}

// Put upserts a blob by key
func (r *SQLiteRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}
	if len(input.Blob) == 0 {
		return nil, errors.InvalidArgument(errBlobEmpty)
	}

	record := &Record{
		Key:       input.Key,
		Blob:      input.Blob,
		UpdatedAt: r.clock.Now().UTC().Truncate(time.Millisecond),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_blobs (session_key, blob, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(session_key) DO UPDATE SET
		    blob = excluded.blob,
		    updated_at = excluded.updated_at`,
		record.Key, record.Blob, record.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store session in sqlite")
	}

	return &PutOutput{Record: record}, nil
}

// Delete removes a blob by key
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM session_blobs WHERE session_key = ?`, input.Key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete session from sqlite")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to count deleted sessions")
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}
