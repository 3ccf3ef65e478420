package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/schedule"

	_ "modernc.org/sqlite"
)

// SQLite stores exported months. Each export gets its own id so a file can
// collect many plans.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating export dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening export db: %w", err)
	}

	for _, ddl := range schema {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating export tables: %w", err)
		}
	}

	return &SQLite{db: db}, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS exports (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT '',
		squats      REAL NOT NULL,
		bench       REAL NOT NULL,
		deadlift    REAL NOT NULL,
		created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS plan_rows (
		export_id   TEXT NOT NULL REFERENCES exports(id),
		week        INTEGER NOT NULL,
		phase       TEXT NOT NULL,
		slot        INTEGER NOT NULL,
		session     TEXT NOT NULL,
		position    INTEGER NOT NULL,
		section     TEXT NOT NULL,
		exercise    TEXT NOT NULL,
		scheme      TEXT NOT NULL,
		weight      REAL,
		PRIMARY KEY (export_id, week, slot, position)
	)`,
}

// Write stores the month in one transaction and returns the export id.
func (s *SQLite) Write(ctx context.Context, name string, oneRepMax map[models.Lift]float64, m schedule.Month) (uuid.UUID, error) {
	id := uuid.New()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("beginning export: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO exports (id, name, squats, bench, deadlift) VALUES (?, ?, ?, ?, ?)`,
		id.String(), name, oneRepMax[models.Squat], oneRepMax[models.Bench], oneRepMax[models.Deadlift],
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting export: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO plan_rows
		(export_id, week, phase, slot, session, position, section, exercise, scheme, weight)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("preparing row insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range Flatten(m) {
		var weight sql.NullFloat64
		if l.Weight != nil {
			weight = sql.NullFloat64{Float64: *l.Weight, Valid: true}
		}
		_, err := stmt.ExecContext(ctx, id.String(), l.Week, l.Phase, l.Slot, l.Session,
			l.Position, l.Section, l.Exercise, l.Scheme, weight)
		if err != nil {
			return uuid.Nil, fmt.Errorf("inserting row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("committing export: %w", err)
	}
	return id, nil
}

// RowCount returns how many rows an export stored.
func (s *SQLite) RowCount(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM plan_rows WHERE export_id = ?`, id.String(),
	).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// ToSQLite writes the month to the database at path.
func ToSQLite(ctx context.Context, path, name string, oneRepMax map[models.Lift]float64, m schedule.Month) (uuid.UUID, error) {
	s, err := OpenSQLite(path)
	if err != nil {
		return uuid.Nil, err
	}
	defer s.Close()
	return s.Write(ctx, name, oneRepMax, m)
}
