package trackers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/samuelfneumann/platformer/experiment/tracker"
	"github.com/samuelfneumann/platformer/timestep"

	_ "modernc.org/sqlite"
)

const createEpisodes = `
	CREATE TABLE IF NOT EXISTS episodes (
		run TEXT NOT NULL,
		episode INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		episode_return REAL NOT NULL,
		end_reason TEXT NOT NULL,
		PRIMARY KEY (run, episode)
	)`

// SQLite tracks a summary row per finished episode and inserts the
// rows into an episodes table when saved. Every tracker has its own run
// ID so that several runs can share one database.
type SQLite struct {
	episodes
	path string
	run  uuid.UUID
}

// NewSQLite returns a new SQLite tracker saving to the database at path
func NewSQLite(path string) *SQLite {
	return &SQLite{path: path, run: uuid.New()}
}

// Run returns the tracker's run ID
func (s *SQLite) Run() uuid.UUID {
	return s.run
}

// Track tracks the timestep t
func (s *SQLite) Track(t timestep.TimeStep) {
	s.track(t)
}

// Save inserts all finished episodes into the database
func (s *SQLite) Save() error {
	return s.SaveContext(context.Background())
}

// SaveContext inserts all finished episodes into the database in a
// single transaction
func (s *SQLite) SaveContext(ctx context.Context) error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("save: opening %v: %w", s.path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createEpisodes); err != nil {
		return fmt.Errorf("save: creating table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	defer tx.Rollback()

	for _, e := range s.finished {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO episodes (run, episode, steps, episode_return, end_reason)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(run, episode) DO UPDATE SET
				steps = excluded.steps,
				episode_return = excluded.episode_return,
				end_reason = excluded.end_reason
		`, s.run.String(), e.Episode, e.Steps, e.Return, e.EndReason)
		if err != nil {
			return fmt.Errorf("save: inserting episode %v: %w", e.Episode, err)
		}
	}
	return tx.Commit()
}

// LoadSQLite reads the episodes of run from the database at path
func LoadSQLite(ctx context.Context, path string,
	run uuid.UUID) ([]Episode, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("loadSQLite: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT episode, steps, episode_return, end_reason FROM episodes
		WHERE run = ? ORDER BY episode`, run.String())
	if err != nil {
		return nil, fmt.Errorf("loadSQLite: %w", err)
	}
	defer rows.Close()

	var out []Episode
	for rows.Next() {
		var e Episode
		if err := rows.Scan(&e.Episode, &e.Steps, &e.Return,
			&e.EndReason); err != nil {
			return nil, fmt.Errorf("loadSQLite: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ tracker.Tracker = (*SQLite)(nil)
