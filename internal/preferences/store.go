// Package preferences keeps the few rider preferences that survive restarts
// in a local SQLite database.
package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"

	_ "modernc.org/sqlite"

	"github.com/NicoloTrevisan/WeatherMap/internal/config"
)

// Key names a stored preference.
type Key string

const (
	AvgSpeedKmh       Key = "avgSpeedKmh"
	WeatherPoints     Key = "weatherPoints"
	RoundTripLengthKm Key = "roundTripLengthKm"
)

var (
	ErrUnknownPreference = errors.New("unknown preference")
	ErrInvalidValue      = errors.New("invalid preference value")
)

type Preferences struct {
	AvgSpeedKmh       float64 `json:"avgSpeedKmh"`
	WeatherPoints     int     `json:"weatherPoints"`
	RoundTripLengthKm float64 `json:"roundTripLengthKm"`
}

// Defaults returns the preferences used for keys that were never stored.
func Defaults(cfg *config.Config) Preferences {
	return Preferences{
		AvgSpeedKmh:       cfg.Planning.AvgSpeedKmh,
		WeatherPoints:     cfg.Planning.WeatherPoints,
		RoundTripLengthKm: cfg.RoundTrip.LengthKm,
	}
}

type Store struct {
	db       *sql.DB
	defaults Preferences
	logger   *slog.Logger
}

// Open opens or creates the preferences database at path.
func Open(path string, defaults Preferences, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{
		db:       db,
		defaults: defaults,
		logger:   logger.With("component", "preferences"),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value REAL NOT NULL,
		updated_at TEXT DEFAULT (datetime('now'))
	);
	`)
	return err
}

// Get returns the stored preferences, falling back to the defaults for
// every key that has not been set.
func (s *Store) Get(ctx context.Context) (Preferences, error) {
	prefs := s.defaults

	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM preferences")
	if err != nil {
		return Preferences{}, fmt.Errorf("query preferences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value float64
		if err := rows.Scan(&key, &value); err != nil {
			return Preferences{}, fmt.Errorf("scan preference: %w", err)
		}
		if err := prefs.apply(Key(key), value); err != nil {
			s.logger.Warn("ignoring stored preference", "key", key, "value", value, "error", err)
		}
	}
	if err := rows.Err(); err != nil {
		return Preferences{}, fmt.Errorf("read preferences: %w", err)
	}
	return prefs, nil
}

// Set validates and stores one preference and returns the updated set.
func (s *Store) Set(ctx context.Context, key Key, value float64) (Preferences, error) {
	var check Preferences
	if err := check.apply(key, value); err != nil {
		return Preferences{}, err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		string(key), value,
	)
	if err != nil {
		return Preferences{}, fmt.Errorf("store preference %s: %w", key, err)
	}

	s.logger.Info("preference updated", "key", key, "value", value)
	return s.Get(ctx)
}

func (p *Preferences) apply(key Key, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidValue, key, value)
	}

	switch key {
	case AvgSpeedKmh:
		p.AvgSpeedKmh = value
	case RoundTripLengthKm:
		p.RoundTripLengthKm = value
	case WeatherPoints:
		if value != math.Trunc(value) {
			return fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidValue, key, value)
		}
		p.WeatherPoints = int(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPreference, key)
	}
	return nil
}
