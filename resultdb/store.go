/*
Package resultdb persists completed study runs to SQLite so repeated
analyses of the same dataset can be compared later without rerunning
the resampling.
*/
package resultdb

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/xerrors"

	"crossval/study"
	"crossval/validate"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at    TEXT NOT NULL,
	dataset       TEXT NOT NULL,
	outcome       TEXT NOT NULL,
	seed          INTEGER NOT NULL,
	folds         INTEGER NOT NULL,
	repeats       INTEGER NOT NULL,
	positive      TEXT NOT NULL,
	selected_spec TEXT NOT NULL,
	accuracy      REAL NOT NULL,
	sensitivity   REAL NOT NULL,
	specificity   REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS spec_means (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	spec   TEXT NOT NULL,
	mean   REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS fold_results (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	spec   TEXT NOT NULL,
	repeat INTEGER NOT NULL,
	fold   INTEGER NOT NULL,
	metric REAL NOT NULL
);
`

// Store wraps a SQLite database holding run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, xerrors.Errorf("open result db: %w", err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, xerrors.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenMemory opens an in-memory database for tests.
func OpenMemory() (*Store, error) { return Open(":memory:") }

func (s *Store) Close() error { return s.db.Close() }

// SaveRun writes one completed run in a single transaction and
// returns its id.
func (s *Store) SaveRun(res *study.Result) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, xerrors.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	r, err := tx.Exec(`INSERT INTO runs
		(created_at, dataset, outcome, seed, folds, repeats, positive, selected_spec, accuracy, sensitivity, specificity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		res.Config.Dataset, res.Config.Outcome, res.Config.Seed,
		res.Compared.Plan.Folds, res.Compared.Plan.Repeats,
		res.Positive, res.Selected.Name,
		res.Confusion.Accuracy(), res.Confusion.Sensitivity(), res.Confusion.Specificity())
	if err != nil {
		return 0, xerrors.Errorf("insert run: %w", err)
	}
	id, err := r.LastInsertId()
	if err != nil {
		return 0, xerrors.Errorf("run id: %w", err)
	}

	for _, sr := range res.Compared.Specs {
		if _, err := tx.Exec(`INSERT INTO spec_means (run_id, spec, mean) VALUES (?, ?, ?)`,
			id, sr.Spec.Name, sr.Mean); err != nil {
			return 0, xerrors.Errorf("insert spec mean: %w", err)
		}
		for _, fr := range sr.Folds {
			if _, err := tx.Exec(`INSERT INTO fold_results (run_id, spec, repeat, fold, metric) VALUES (?, ?, ?, ?, ?)`,
				id, fr.Spec, fr.Repeat, fr.Fold, fr.Metric); err != nil {
				return 0, xerrors.Errorf("insert fold result: %w", err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, xerrors.Errorf("commit: %w", err)
	}
	return id, nil
}

/*
Run is one persisted run header.
*/
type Run struct {
	ID          int64
	CreatedAt   string
	Dataset     string
	Outcome     string
	Seed        int64
	Folds       int
	Repeats     int
	Positive    string
	Selected    string
	Accuracy    float64
	Sensitivity float64
	Specificity float64
}

// Runs lists persisted runs, newest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`SELECT id, created_at, dataset, outcome, seed, folds, repeats, positive,
		selected_spec, accuracy, sensitivity, specificity FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, xerrors.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Dataset, &r.Outcome, &r.Seed, &r.Folds, &r.Repeats,
			&r.Positive, &r.Selected, &r.Accuracy, &r.Sensitivity, &r.Specificity); err != nil {
			return nil, xerrors.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FoldResults loads the fold history of one run in insert order.
func (s *Store) FoldResults(runID int64) ([]validate.FoldResult, error) {
	rows, err := s.db.Query(`SELECT spec, repeat, fold, metric FROM fold_results WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, xerrors.Errorf("query fold results: %w", err)
	}
	defer rows.Close()
	var out []validate.FoldResult
	for rows.Next() {
		var fr validate.FoldResult
		if err := rows.Scan(&fr.Spec, &fr.Repeat, &fr.Fold, &fr.Metric); err != nil {
			return nil, xerrors.Errorf("scan fold result: %w", err)
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}
