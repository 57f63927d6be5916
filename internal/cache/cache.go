// Package cache is the client's local persistence layer, the always-available
// fallback the itinerary survives in when the remote endpoint is unreachable.
// It is a small SQLite key/value table with one row per document field:
// "items", "title", "date".
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/HaruLab/travel-planning/internal/domain"
	"github.com/HaruLab/travel-planning/migrations"
)

const (
	keyItems = "items"
	keyTitle = "title"
	keyDate  = "date"
)

// Cache is a SQLite-backed key/value store for the itinerary document.
type Cache struct {
	db *sql.DB
}

// DefaultPath returns the cache database location under the user cache dir,
// e.g. ~/.cache/voyage/cache.sqlite.
func DefaultPath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cache.DefaultPath: %w", err)
	}
	return filepath.Join(base, "voyage", "cache.sqlite"), nil
}

// Open opens (creating if needed) the cache database at path and applies any
// pending schema migrations.
func Open(ctx context.Context, path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cache.Open: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache.Open: %w", err)
	}

	// Pragmas for local usage: WAL allows a reader while a write is in
	// flight; busy_timeout avoids "database is locked" flakiness when a
	// second voyage process runs.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("cache.Open: pragma: %w", err)
		}
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache.Open: create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache.Open: run migrations: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveTrip writes the full document to the cache in one transaction.
// It replaces all three keys; there is no partial update.
func (c *Cache) SaveTrip(ctx context.Context, t domain.Trip) error {
	items, err := json.Marshal(t.Activities)
	if err != nil {
		return fmt.Errorf("cache.SaveTrip: encode items: %w", err)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cache.SaveTrip: begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	const q = `
		INSERT INTO itinerary_cache (k, v, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = excluded.updated_at`
	for _, kv := range []struct{ k, v string }{
		{keyItems, string(items)},
		{keyTitle, t.Title},
		{keyDate, t.Date},
	} {
		if _, err := tx.ExecContext(ctx, q, kv.k, kv.v, now); err != nil {
			return fmt.Errorf("cache.SaveTrip: put %s: %w", kv.k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cache.SaveTrip: commit: %w", err)
	}
	return nil
}

// LoadTrip reads the cached document. ok is false when the cache has never
// been written (no "items" key), in which case the caller falls through to
// the built-in default trip.
func (c *Cache) LoadTrip(ctx context.Context) (t domain.Trip, ok bool, err error) {
	raw, found, err := c.get(ctx, keyItems)
	if err != nil {
		return domain.Trip{}, false, fmt.Errorf("cache.LoadTrip: %w", err)
	}
	if !found {
		return domain.Trip{}, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &t.Activities); err != nil {
		return domain.Trip{}, false, fmt.Errorf("cache.LoadTrip: decode items: %w", err)
	}

	if title, found, err := c.get(ctx, keyTitle); err != nil {
		return domain.Trip{}, false, fmt.Errorf("cache.LoadTrip: %w", err)
	} else if found {
		t.Title = title
	}
	if date, found, err := c.get(ctx, keyDate); err != nil {
		return domain.Trip{}, false, fmt.Errorf("cache.LoadTrip: %w", err)
	} else if found {
		t.Date = date
	}

	return t, true, nil
}

// get reads one key, reporting presence separately from errors.
func (c *Cache) get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := c.db.QueryRowContext(ctx, `SELECT v FROM itinerary_cache WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}
