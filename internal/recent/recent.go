// Package recent remembers recently picked images in a local SQLite file.
package recent

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	appErrors "imagetoolbox/internal/errors"
	"imagetoolbox/internal/session"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultLimit is how many entries List returns when asked for zero.
const DefaultLimit = 10

const schema = `
CREATE TABLE IF NOT EXISTS recent_images (
	uri       TEXT PRIMARY KEY,
	picked_at INTEGER NOT NULL,
	pick_count INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_recent_images_picked_at ON recent_images(picked_at DESC);
`

// Entry is one remembered image.
type Entry struct {
	URI       session.URI
	PickedAt  time.Time
	PickCount int
}

// Store is a handle to the recent-images database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// buildDSN creates a read-write WAL DSN for the given path.
func buildDSN(path string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(3000)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Open opens (creating when needed) the store at path.
func Open(ctx context.Context, path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, storageError("open recent store: empty path", nil)
	}
	//nolint:gosec // G301: User data directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(trimmed), 0755); err != nil {
		return nil, storageError("create recent store directory", err)
	}

	db, err := sql.Open("sqlite", buildDSN(trimmed))
	if err != nil {
		return nil, storageError("open recent store", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, storageError("ping recent store", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, storageError("migrate recent store", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add records refs as picked now. Refs picked together keep their relative
// order, first ref newest. Blank refs are skipped.
func (s *Store) Add(ctx context.Context, refs ...session.URI) error {
	if len(refs) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("begin recent insert", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recent_images (uri, picked_at, pick_count) VALUES (?, ?, 1)
		ON CONFLICT(uri) DO UPDATE SET
			picked_at = excluded.picked_at,
			pick_count = recent_images.pick_count + 1`)
	if err != nil {
		return storageError("prepare recent insert", err)
	}
	defer func() { _ = stmt.Close() }()

	base := s.now().UnixNano()
	for i, ref := range refs {
		if strings.TrimSpace(string(ref)) == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, string(ref), base-int64(i)); err != nil {
			return storageError(fmt.Sprintf("record %s", ref), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return storageError("commit recent insert", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT uri, picked_at, pick_count FROM recent_images ORDER BY picked_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, storageError("query recent images", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			uri   string
			stamp int64
			count int
		)
		if err := rows.Scan(&uri, &stamp, &count); err != nil {
			return nil, storageError("scan recent image", err)
		}
		entries = append(entries, Entry{
			URI:       session.URI(uri),
			PickedAt:  time.Unix(0, stamp),
			PickCount: count,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate recent images", err)
	}
	return entries, nil
}

// Clear forgets every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recent_images`); err != nil {
		return storageError("clear recent images", err)
	}
	return nil
}

func storageError(msg string, err error) error {
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return appErrors.New(appErrors.CodeStorageFailed, msg, err)
}
