// Package dataset holds the local cache of the OGD count records: a
// sqlite store for durability across restarts plus an in-memory
// snapshot that the request pipeline reads from.
package dataset

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/database"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
)

const metaKeyRefreshedAt = "refreshed_at"

// Store persists count records in the local sqlite cache.
type Store struct {
	db *sql.DB
}

// NewStore creates a store on an initialized database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ReplaceYear swaps one year's cached records in a single transaction,
// so readers only ever observe a complete year.
func (s *Store) ReplaceYear(year int, records []models.CountRecord) error {
	return database.Transaction(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM traffic_counts WHERE year = ?", year); err != nil {
			return fmt.Errorf("failed to clear year %d: %w", year, err)
		}

		stmt, err := tx.Prepare(`INSERT INTO traffic_counts
			(timestamp, year, station_id, lane, direction, class_id, count, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			_, err := stmt.Exec(
				r.Timestamp.Format(time.RFC3339),
				r.Timestamp.Year(),
				r.StationID,
				r.Lane,
				r.Direction,
				r.ClassID,
				r.Count,
				r.Status,
			)
			if err != nil {
				return fmt.Errorf("failed to insert record: %w", err)
			}
		}

		return nil
	})
}

// LoadAll returns every cached record in chronological order.
func (s *Store) LoadAll() ([]models.CountRecord, error) {
	rows, err := s.db.Query(`SELECT timestamp, station_id, lane, direction, class_id, count, status
		FROM traffic_counts ORDER BY timestamp ASC, direction ASC, lane ASC, class_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query counts: %w", err)
	}
	defer rows.Close()

	var records []models.CountRecord
	for rows.Next() {
		var r models.CountRecord
		var ts string
		if err := rows.Scan(&ts, &r.StationID, &r.Lane, &r.Direction, &r.ClassID, &r.Count, &r.Status); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		r.Timestamp, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("invalid cached timestamp %q: %w", ts, err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// Years returns the cached years in ascending order.
func (s *Store) Years() ([]int, error) {
	rows, err := s.db.Query("SELECT DISTINCT year FROM traffic_counts ORDER BY year ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, y)
	}

	return years, rows.Err()
}

// SetRefreshedAt records the time of the last successful refresh.
func (s *Store) SetRefreshedAt(t time.Time) error {
	_, err := s.db.Exec(
		"INSERT INTO dataset_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		metaKeyRefreshedAt, t.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to store refresh time: %w", err)
	}
	return nil
}

// RefreshedAt returns the time of the last successful refresh, or the
// zero time when the cache has never been refreshed.
func (s *Store) RefreshedAt() (time.Time, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM dataset_meta WHERE key = ?", metaKeyRefreshedAt).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query refresh time: %w", err)
	}
	return time.Parse(time.RFC3339, value)
}
