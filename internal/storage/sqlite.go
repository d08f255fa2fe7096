package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Brownie44l1/weather-api/internal/weather"

	_ "modernc.org/sqlite"
)

// MaxList caps how many records ListPredictions returns.
const MaxList = 500

// timeLayout has a fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Record is one stored prediction.
type Record struct {
	ID                 string        `json:"id"`
	TemperatureCelsius float32       `json:"temperature"`
	HumidityPercent    float32       `json:"humidity"`
	Label              weather.Label `json:"label"`
	Index              int           `json:"index"`
	CreatedAt          time.Time     `json:"created_at"`
}

// NewRecord builds a record for a completed prediction.
func NewRecord(s weather.Sample, p weather.Prediction, at time.Time) Record {
	return Record{
		ID:                 uuid.NewString(),
		TemperatureCelsius: s.TemperatureCelsius,
		HumidityPercent:    s.HumidityPercent,
		Label:              p.Label,
		Index:              p.Index,
		CreatedAt:          at.UTC(),
	}
}

// Store persists prediction history.
type Store interface {
	SavePrediction(ctx context.Context, r Record) error
	ListPredictions(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

// SQLiteStore implements Store on the pure Go modernc.org/sqlite driver.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and applies the schema.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		slog.Warn("could not set WAL mode", "error", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS predictions (
        id TEXT PRIMARY KEY,
        temperature REAL NOT NULL,
        humidity REAL NOT NULL,
        label TEXT NOT NULL,
        label_index INTEGER NOT NULL,
        created_at TEXT NOT NULL
    );
    CREATE INDEX IF NOT EXISTS predictions_created_at ON predictions(created_at);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) SavePrediction(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO predictions(id, temperature, humidity, label, label_index, created_at) VALUES(?,?,?,?,?,?)`,
		r.ID, r.TemperatureCelsius, r.HumidityPercent, string(r.Label), r.Index, r.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("save prediction: %w", err)
	}
	return nil
}

// ListPredictions returns up to limit records, newest first. A non-positive
// limit or one above MaxList is clamped to MaxList.
func (s *SQLiteStore) ListPredictions(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > MaxList {
		limit = MaxList
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, temperature, humidity, label, label_index, created_at FROM predictions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		var (
			r     Record
			label string
			ts    string
		)
		if err := rows.Scan(&r.ID, &r.TemperatureCelsius, &r.HumidityPercent, &label, &r.Index, &ts); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		r.Label = weather.Label(label)
		t, err := time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		r.CreatedAt = t
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
