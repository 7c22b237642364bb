package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jwulff/briefcast/internal/podcast"

	_ "modernc.org/sqlite"
)

// Store reads and writes the published podcast list.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// DefaultDBPath returns the database path inside dataDir.
func DefaultDBPath(dataDir string) string {
	return filepath.Join(dataDir, "briefcast.sqlite")
}

// Open opens (creating if needed) the database with WAL enabled.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return newStore(db, logger)
}

// OpenMemory opens a private in-memory database.
func OpenMemory(logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Each pooled connection would get its own empty memory database.
	db.SetMaxOpenConns(1)
	return newStore(db, logger)
}

func newStore(db *sql.DB, logger *slog.Logger) (*Store, error) {
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the published list, newest first. A missing or corrupt
// payload yields an empty list, not an error.
func (s *Store) Load() ([]podcast.Podcast, error) {
	raw, err := readValue(s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, PodcastsKey))
	if err != nil {
		return nil, err
	}
	return s.decode(raw), nil
}

// Prepend stores p at the head of the list. The write is committed before
// Prepend returns.
func (s *Store) Prepend(p podcast.Podcast) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin prepend: %w", err)
	}
	defer tx.Rollback()

	raw, err := readValue(tx.QueryRow(`SELECT value FROM kv WHERE key = ?`, PodcastsKey))
	if err != nil {
		return err
	}
	list := append([]podcast.Podcast{p}, s.decode(raw)...)

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal podcasts: %w", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO kv (key, value, updatedAt) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = excluded.updatedAt
	`, PodcastsKey, string(data), unixFromTime(time.Now())); err != nil {
		return fmt.Errorf("write podcasts: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit prepend: %w", err)
	}
	return nil
}

func (s *Store) decode(raw string) []podcast.Podcast {
	if raw == "" {
		return []podcast.Podcast{}
	}
	var list []podcast.Podcast
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warn("discarding corrupt podcast list", "error", err)
		return []podcast.Podcast{}
	}
	if list == nil {
		return []podcast.Podcast{}
	}
	return list
}

func readValue(row *sql.Row) (string, error) {
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("read podcasts: %w", err)
	}
	return raw, nil
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
