package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Run statuses.
const (
	StatusRunning = "running"
	StatusOK      = "ok"
	StatusFailed  = "failed"
)

type Store struct {
	db *sql.DB
}

type Run struct {
	ID         int64
	StartedAt  string
	FinishedAt string
	Status     string
	Error      string
}

// Answer is one recorded value of a run, e.g. question "q2", metric "population".
type Answer struct {
	Question string
	Metric   string
	Num      *float64
	Text     *string
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InitSchema() error {
	ddl := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  started_at TEXT NOT NULL,
  finished_at TEXT,
  status TEXT NOT NULL,              -- running, ok, failed
  error TEXT
);

CREATE TABLE IF NOT EXISTS answers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id INTEGER NOT NULL,
  question TEXT NOT NULL,            -- q1, q2, q3
  metric TEXT NOT NULL,
  value_num REAL,
  value_text TEXT,
  UNIQUE(run_id, question, metric),
  FOREIGN KEY(run_id) REFERENCES runs(id)
);

CREATE TABLE IF NOT EXISTS state (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *Store) BeginRun(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO runs(started_at, status) VALUES(?,?)`,
		time.Now().UTC().Format(time.RFC3339), StatusRunning)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// FinishRun marks the run ok when runErr is nil and failed otherwise.
func (s *Store) FinishRun(ctx context.Context, runID int64, runErr error) error {
	status := StatusOK
	var msg *string
	if runErr != nil {
		status = StatusFailed
		m := runErr.Error()
		msg = &m
	}
	_, err := s.db.ExecContext(ctx, `UPDATE runs SET finished_at=?, status=?, error=? WHERE id=?`,
		time.Now().UTC().Format(time.RFC3339), status, msg, runID)
	return err
}

// PutAnswers records a question's values in one transaction.
func (s *Store) PutAnswers(ctx context.Context, runID int64, answers []Answer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO answers(run_id, question, metric, value_num, value_text)
VALUES(?,?,?,?,?)
ON CONFLICT(run_id, question, metric) DO UPDATE SET value_num=excluded.value_num, value_text=excluded.value_text
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range answers {
		if _, err := stmt.ExecContext(ctx, runID, a.Question, a.Metric, a.Num, a.Text); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) RunAnswers(ctx context.Context, runID int64) ([]Answer, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT question, metric, value_num, value_text
FROM answers
WHERE run_id=?
ORDER BY question, id
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Answer
	for rows.Next() {
		var a Answer
		var num sql.NullFloat64
		var txt sql.NullString
		if err := rows.Scan(&a.Question, &a.Metric, &num, &txt); err != nil {
			return nil, err
		}
		if num.Valid {
			v := num.Float64
			a.Num = &v
		}
		if txt.Valid {
			v := txt.String
			a.Text = &v
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// LatestRun returns the most recent run with the given status, or any
// status when status is empty. ok is false when there is none.
func (s *Store) LatestRun(ctx context.Context, status string) (Run, bool, error) {
	q := `SELECT id, started_at, finished_at, status, error FROM runs`
	var args []any
	if status != "" {
		q += ` WHERE status=?`
		args = append(args, status)
	}
	q += ` ORDER BY id DESC LIMIT 1`

	var r Run
	var finished, msg sql.NullString
	err := s.db.QueryRowContext(ctx, q, args...).Scan(&r.ID, &r.StartedAt, &finished, &r.Status, &msg)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, err
	}
	r.FinishedAt = finished.String
	r.Error = msg.String
	return r, true, nil
}

func (s *Store) SetState(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO state(key, value) VALUES(?,?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value
`, key, value)
	return err
}

// GetState returns "" for a missing key.
func (s *Store) GetState(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM state WHERE key=?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}
