package storage

// sqlite.go — persistencia de ejecuciones de torneo.
//
// Dos tablas:
//   - `runs`: una fila por torneo (config + agregados).
//   - `match_results`: una fila por match, ligada a su run.
// Solo se escriben resultados congelados; nunca estado de estrategia.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/alejandrodnm/ipdbot/internal/domain"
	"github.com/alejandrodnm/ipdbot/internal/engine"
	"github.com/alejandrodnm/ipdbot/internal/ports"
)

const schema = `
-- Una fila por ejecución de torneo
CREATE TABLE IF NOT EXISTS runs (
    id            TEXT PRIMARY KEY,
    run_at        DATETIME NOT NULL,
    rounds        INTEGER  NOT NULL,
    noise         REAL     NOT NULL DEFAULT 0,
    seed          INTEGER  NOT NULL,
    total_matches INTEGER  NOT NULL,
    total_score   INTEGER  NOT NULL,
    average_score REAL     NOT NULL,
    wins          INTEGER  NOT NULL,
    losses        INTEGER  NOT NULL,
    win_rate      REAL     NOT NULL
);

-- Una fila por match, en orden de roster
CREATE TABLE IF NOT EXISTS match_results (
    run_id         TEXT    NOT NULL REFERENCES runs(id),
    position       INTEGER NOT NULL,
    opponent       TEXT    NOT NULL,
    our_score      INTEGER NOT NULL,
    opponent_score INTEGER NOT NULL,
    our_avg        REAL    NOT NULL,
    our_coop       REAL    NOT NULL,
    opp_coop       REAL    NOT NULL,
    won            INTEGER NOT NULL,
    score_diff     INTEGER NOT NULL,
    PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_runs_at ON runs(run_at DESC);
`

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos y aplica el schema.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// SaveRun persiste el resumen y sus matches en una transacción. Devuelve el
// id asignado a la ejecución.
func (s *SQLiteStorage) SaveRun(ctx context.Context, cfg engine.Config, summary domain.Summary) (string, error) {
	runID := uuid.New().String()
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("storage.SaveRun: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs
			(id, run_at, rounds, noise, seed,
			 total_matches, total_score, average_score, wins, losses, win_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, now, cfg.Rounds, cfg.Noise, cfg.Seed,
		summary.TotalMatches, summary.TotalScore, summary.AverageScore,
		summary.Wins, summary.Losses, summary.WinRate,
	); err != nil {
		return "", fmt.Errorf("storage.SaveRun: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO match_results
			(run_id, position, opponent, our_score, opponent_score,
			 our_avg, our_coop, opp_coop, won, score_diff)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("storage.SaveRun: prepare: %w", err)
	}
	defer stmt.Close()

	for i, r := range summary.Results {
		won := 0
		if r.Won {
			won = 1
		}
		if _, err := stmt.ExecContext(ctx,
			runID, i, r.Opponent, r.OurScore, r.OpponentScore,
			r.OurAvg, r.OurCoop, r.OppCoop, won, r.ScoreDifference,
		); err != nil {
			return "", fmt.Errorf("storage.SaveRun: insert match %s: %w", r.Opponent, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage.SaveRun: commit: %w", err)
	}
	return runID, nil
}

// RecentRuns devuelve las últimas n ejecuciones con sus matches, la más
// nueva primero.
func (s *SQLiteStorage) RecentRuns(ctx context.Context, n int) ([]ports.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_at, rounds, noise, seed,
		       total_matches, total_score, average_score, wins, losses, win_rate
		FROM runs
		ORDER BY run_at DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("storage.RecentRuns: query runs: %w", err)
	}
	defer rows.Close()

	var runs []ports.RunRecord
	for rows.Next() {
		var run ports.RunRecord
		if err := rows.Scan(
			&run.ID, &run.RunAt, &run.Rounds, &run.Noise, &run.Seed,
			&run.Summary.TotalMatches, &run.Summary.TotalScore,
			&run.Summary.AverageScore, &run.Summary.Wins,
			&run.Summary.Losses, &run.Summary.WinRate,
		); err != nil {
			return nil, fmt.Errorf("storage.RecentRuns: scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.RecentRuns: rows: %w", err)
	}

	for i := range runs {
		results, err := s.matchResults(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Summary.Results = results
	}
	return runs, nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// matchResults carga los matches de una ejecución en orden de roster.
func (s *SQLiteStorage) matchResults(ctx context.Context, runID string) ([]domain.MatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT opponent, our_score, opponent_score,
		       our_avg, our_coop, opp_coop, won, score_diff
		FROM match_results
		WHERE run_id = ?
		ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage.matchResults: query %s: %w", runID, err)
	}
	defer rows.Close()

	var results []domain.MatchRecord
	for rows.Next() {
		var r domain.MatchRecord
		var won int
		if err := rows.Scan(
			&r.Opponent, &r.OurScore, &r.OpponentScore,
			&r.OurAvg, &r.OurCoop, &r.OppCoop, &won, &r.ScoreDifference,
		); err != nil {
			return nil, fmt.Errorf("storage.matchResults: scan: %w", err)
		}
		r.Won = won == 1
		results = append(results, r)
	}
	return results, rows.Err()
}
