package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sugawarayuuta/sonnet"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL,
	host       TEXT NOT NULL,
	passed     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS scenarios (
	run_id     TEXT NOT NULL REFERENCES runs(run_id),
	seq        INTEGER NOT NULL,
	name       TEXT NOT NULL,
	passed     INTEGER NOT NULL,
	error      TEXT NOT NULL,
	elapsed_ns INTEGER NOT NULL,
	detail     TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);
CREATE INDEX IF NOT EXISTS runs_started_at ON runs(started_at);
`

// Store is the run history.  It is safe for use by multiple goroutines.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("report: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("report: schema %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes r and its scenarios in one transaction.
func (s *Store) Save(ctx context.Context, r *Report) error {
	host, err := sonnet.Marshal(r.Host)
	if err != nil {
		return fmt.Errorf("report: encode host: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("report: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, host, passed) VALUES (?, ?, ?, ?)`,
		r.RunID, r.StartedAt.UnixNano(), string(host), r.Passed(),
	); err != nil {
		return fmt.Errorf("report: insert run %s: %w", r.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO scenarios (run_id, seq, name, passed, error, elapsed_ns, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("report: prepare: %w", err)
	}
	defer stmt.Close()

	for i, sc := range r.Scenarios {
		detail := []byte("null")
		if sc.Detail != nil {
			if detail, err = sonnet.Marshal(sc.Detail); err != nil {
				return fmt.Errorf("report: encode %s detail: %w", sc.Name, err)
			}
		}
		if _, err := stmt.ExecContext(ctx,
			r.RunID, i, sc.Name, sc.Passed, sc.Error, int64(sc.Elapsed), string(detail),
		); err != nil {
			return fmt.Errorf("report: insert scenario %s: %w", sc.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("report: commit: %w", err)
	}
	return nil
}

// Recent returns up to n reports, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]*Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, started_at, host FROM runs ORDER BY started_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("report: query runs: %w", err)
	}

	var reports []*Report
	for rows.Next() {
		var (
			r       Report
			started int64
			host    string
		)
		if err := rows.Scan(&r.RunID, &started, &host); err != nil {
			rows.Close()
			return nil, fmt.Errorf("report: scan run: %w", err)
		}
		if err := sonnet.Unmarshal([]byte(host), &r.Host); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: host of %s: %v", ErrDecode, r.RunID, err)
		}
		r.StartedAt = time.Unix(0, started).UTC()
		reports = append(reports, &r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("report: iterate runs: %w", err)
	}
	rows.Close()

	for _, r := range reports {
		if err := s.loadScenarios(ctx, r); err != nil {
			return nil, err
		}
	}
	return reports, nil
}

func (s *Store) loadScenarios(ctx context.Context, r *Report) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, passed, error, elapsed_ns, detail FROM scenarios WHERE run_id = ? ORDER BY seq`,
		r.RunID)
	if err != nil {
		return fmt.Errorf("report: query scenarios of %s: %w", r.RunID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			sc      ScenarioResult
			elapsed int64
			detail  string
		)
		if err := rows.Scan(&sc.Name, &sc.Passed, &sc.Error, &elapsed, &detail); err != nil {
			return fmt.Errorf("report: scan scenario of %s: %w", r.RunID, err)
		}
		sc.Elapsed = time.Duration(elapsed)
		if err := sonnet.Unmarshal([]byte(detail), &sc.Detail); err != nil {
			return fmt.Errorf("%w: detail of %s/%s: %v", ErrDecode, r.RunID, sc.Name, err)
		}
		r.Scenarios = append(r.Scenarios, sc)
	}
	return rows.Err()
}
