// Package store provides SQLite persistence for Dripfeed.
//
// Everything is kept in a single key/value table with JSON-encoded values.
// Reads never fail: missing or corrupt values fall back to documented
// defaults so a damaged database degrades to a fresh install, not a crash.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/deepanshuvermaa/dripfeed/internal/logging"
	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

// FallbackCap bounds the durable last-known-good drip list.
const FallbackCap = 10

// Value keys. String keys into the kv table; each holds one JSON document.
const (
	keyPreferences = "preferences"
	keyFavorites   = "favorites"
	keyFallback    = "fallbackDrips"
	keyProfile     = "profile"
	keyComments    = "comments"
	keyUnlocked    = "unlockedAchievements"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates a new Store with the given database path.
// Creates the kv table if it doesn't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// For in-memory databases, use shared cache mode so all connections
		// in the pool see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// getJSON reads and decodes one value. Returns false when the key is missing
// or the stored JSON is corrupt; callers substitute their default.
func (s *Store) getJSON(key string, dest any) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			logging.Warn("store read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logging.Warn("store value corrupt, using default", "key", key, "error", err)
		return false
	}
	return true
}

// setJSON encodes and upserts one value.
func (s *Store) setJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(raw))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Preferences returns the saved topic preferences, or an empty list.
func (s *Store) Preferences() []string {
	var prefs []string
	if !s.getJSON(keyPreferences, &prefs) {
		return []string{}
	}
	return prefs
}

// SavePreferences persists the topic preferences.
func (s *Store) SavePreferences(prefs []string) error {
	return s.setJSON(keyPreferences, prefs)
}

// Favorites returns the saved favorites, or an empty list.
func (s *Store) Favorites() []model.Drip {
	var favs []model.Drip
	if !s.getJSON(keyFavorites, &favs) {
		return []model.Drip{}
	}
	return favs
}

// SaveFavorites persists the favorites collection.
func (s *Store) SaveFavorites(favs []model.Drip) error {
	return s.setJSON(keyFavorites, favs)
}

// FallbackDrips returns the last-known-good drips, most recently saved first,
// or an empty list.
func (s *Store) FallbackDrips() []model.Drip {
	var drips []model.Drip
	if !s.getJSON(keyFallback, &drips) {
		return []model.Drip{}
	}
	return drips
}

// SaveFallbackDrips merges freshly fetched drips into the fallback cache:
// new drips go in front, duplicates by ID collapse to their earliest-seen
// position, and the result is truncated to FallbackCap entries.
func (s *Store) SaveFallbackDrips(fresh []model.Drip) error {
	combined := append(append([]model.Drip{}, fresh...), s.FallbackDrips()...)
	merged := model.DedupByID(combined)
	if len(merged) > FallbackCap {
		merged = merged[:FallbackCap]
	}
	return s.setJSON(keyFallback, merged)
}

// Profile returns the saved user profile, or the default profile.
func (s *Store) Profile() model.UserProfile {
	var p model.UserProfile
	if !s.getJSON(keyProfile, &p) {
		return model.DefaultProfile()
	}
	return p
}

// SaveProfile persists the user profile.
func (s *Store) SaveProfile(p model.UserProfile) error {
	return s.setJSON(keyProfile, p)
}

// Comments returns all comments keyed by content ID, or an empty map.
func (s *Store) Comments() map[string][]model.Comment {
	var c map[string][]model.Comment
	if !s.getJSON(keyComments, &c) || c == nil {
		return map[string][]model.Comment{}
	}
	return c
}

// SaveComments persists the full comment map.
func (s *Store) SaveComments(c map[string][]model.Comment) error {
	return s.setJSON(keyComments, c)
}

// UnlockedAchievements returns the unlock records, or an empty list.
func (s *Store) UnlockedAchievements() []model.UnlockedAchievement {
	var u []model.UnlockedAchievement
	if !s.getJSON(keyUnlocked, &u) {
		return []model.UnlockedAchievement{}
	}
	return u
}

// SaveUnlockedAchievements persists the unlock records.
func (s *Store) SaveUnlockedAchievements(u []model.UnlockedAchievement) error {
	return s.setJSON(keyUnlocked, u)
}
