// Package cache is an emission cache keyed by the hash of an AST
// Module's serialized JSON: repeated emission of an unchanged module —
// routine in a golden-test loop or a watch-mode devserver session —
// skips re-walking the tree.
//
// Adapted from the teacher's internal/database package (a struct
// wrapping *sql.DB behind a mutex, driver registered via blank
// import): that module wires database/sql against four backends
// (mysql, postgres, sqlite3, mssql) for security-testing connections
// to arbitrary user databases. Only one of those concerns survives
// here — a single local, embedded store — so only the pure-Go sqlite
// driver is kept; the other three are dropped (DESIGN.md "Dropped
// teacher dependencies").
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	_ "modernc.org/sqlite"
)

// Cache is a sqlite-backed store of previously emitted TL text, keyed
// by the sha256 of the module's source JSON bytes. Concurrent misses
// for the same key are collapsed with singleflight so a burst of
// identical requests only runs the emitter once.
type Cache struct {
	mu    sync.RWMutex
	db    *sql.DB
	group singleflight.Group
}

// Open creates (if needed) the backing sqlite file at path and the
// cache table, returning a ready Cache. Passing ":memory:" gets a
// process-local cache with no persistence, useful for tests and the
// devserver's default mode.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open cache database")
	}
	const schema = `
CREATE TABLE IF NOT EXISTS emissions (
	key  TEXT PRIMARY KEY,
	text TEXT NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create emissions table")
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key hashes a module's source JSON bytes into the cache's lookup key.
func Key(sourceJSON []byte) string {
	sum := sha256.Sum256(sourceJSON)
	return hex.EncodeToString(sum[:])
}

// GetOrEmit returns the cached TL text for key, calling emit to
// produce and store it on a miss. Concurrent callers racing on the
// same key share one emit call.
func (c *Cache) GetOrEmit(ctx context.Context, key string, emit func() (string, error)) (string, error) {
	if text, ok, err := c.lookup(ctx, key); err != nil {
		return "", err
	} else if ok {
		return text, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if text, ok, err := c.lookup(ctx, key); err != nil {
			return "", err
		} else if ok {
			return text, nil
		}
		text, err := emit()
		if err != nil {
			return "", err
		}
		if err := c.store(ctx, key, text); err != nil {
			return "", err
		}
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Cache) lookup(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var text string
	err := c.db.QueryRowContext(ctx, "SELECT text FROM emissions WHERE key = ?", key).Scan(&text)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "query emission cache")
	}
	return text, true, nil
}

func (c *Cache) store(ctx context.Context, key, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.db.ExecContext(ctx, "INSERT OR REPLACE INTO emissions (key, text) VALUES (?, ?)", key, text)
	if err != nil {
		return errors.Wrap(err, "store emission")
	}
	return nil
}
