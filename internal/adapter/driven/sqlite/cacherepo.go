package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gregjones/httpcache"
)

// Compile-time interface satisfaction check.
var _ httpcache.Cache = (*CacheRepo)(nil)

// cacheOpTimeout bounds each cache statement; httpcache.Cache carries no context.
const cacheOpTimeout = 5 * time.Second

// CacheRepo is the SQLite implementation of httpcache.Cache. Keys are request
// URLs stored under a per-credential scope; values are serialized HTTP
// responses. Storage failures are logged and treated as cache misses.
type CacheRepo struct {
	db    *DB
	scope string
}

// NewCacheRepo creates a CacheRepo whose entries are only visible to the
// given scope. Use TokenScope to derive the scope from a GitHub token.
func NewCacheRepo(db *DB, scope string) *CacheRepo {
	return &CacheRepo{db: db, scope: scope}
}

// TokenScope fingerprints a token so responses fetched with one credential
// are never served to another. The token itself is not stored.
func TokenScope(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}

func (r *CacheRepo) scopedKey(key string) string {
	return r.scope + " " + key
}

// Get returns the cached response bytes for key.
func (r *CacheRepo) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	const query = `SELECT response FROM http_cache WHERE cache_key = ?`
	var response []byte
	err := r.db.Reader.QueryRowContext(ctx, query, r.scopedKey(key)).Scan(&response)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		slog.Warn("http cache read failed", "key", key, "error", err)
		return nil, false
	}
	return response, true
}

// Set stores or replaces the response bytes for key.
func (r *CacheRepo) Set(key string, response []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	const query = `INSERT INTO http_cache (cache_key, response, stored_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(cache_key) DO UPDATE SET response = excluded.response, stored_at = excluded.stored_at`
	if _, err := r.db.Writer.ExecContext(ctx, query, r.scopedKey(key), response); err != nil {
		slog.Warn("http cache write failed", "key", key, "error", err)
	}
}

// Delete removes key from the cache.
func (r *CacheRepo) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	const query = `DELETE FROM http_cache WHERE cache_key = ?`
	if _, err := r.db.Writer.ExecContext(ctx, query, r.scopedKey(key)); err != nil {
		slog.Warn("http cache delete failed", "key", key, "error", err)
	}
}

// Prune removes entries stored before cutoff and returns how many were deleted.
func (r *CacheRepo) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM http_cache WHERE stored_at < ?`
	res, err := r.db.Writer.ExecContext(ctx, query, cutoff.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, fmt.Errorf("prune http cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune http cache rows affected: %w", err)
	}
	return n, nil
}
