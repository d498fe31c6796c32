// Package store supplies existing bookings from the external SQLite store.
// The engine never writes bookings; creation and the atomic no-double-booking
// check belong to the booking submission path outside this service.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"

	"pricegrid/internal/models"
)

// Store is a read-only view over the bookings table.
type Store struct {
	*sql.DB
	logger *zerolog.Logger
}

// New opens the bookings database, creating the schema if it does not exist
// yet so a fresh deployment starts with an empty, valid table.
func New(path string, logger *zerolog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{DB: db, logger: logger}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bookings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER NOT NULL,
		client_name TEXT NOT NULL DEFAULT '',
		service_type TEXT NOT NULL DEFAULT '',
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_bookings_start_time ON bookings(start_time);
	`
	if _, err := s.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// BookingsBetween returns bookings intersecting the half-open window
// [from, to), ordered by start time.
func (s *Store) BookingsBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT id, client_id, client_name, service_type, start_time, end_time, created_at
		FROM bookings
		WHERE start_time < ? AND end_time > ?
		ORDER BY start_time`,
		to.UTC(), from.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.ClientID, &b.ClientName, &b.ServiceType, &b.StartTime, &b.EndTime, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.StartTime = b.StartTime.UTC()
		b.EndTime = b.EndTime.UTC()
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}
