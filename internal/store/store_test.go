package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.sqlite")
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_foreign_keys=1")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	st := New(db)
	if err := st.InitSchema(); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return st
}

func num(v float64) *float64 { return &v }
func text(v string) *string { return &v }

func TestStateRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	val, err := st.GetState(ctx, "last_run")
	if err != nil {
		t.Fatalf("get missing state: %v", err)
	}
	if val != "" {
		t.Fatalf("expected empty value, got %q", val)
	}
	if err := st.SetState(ctx, "last_run", "2025-01-01T00:00:00Z"); err != nil {
		t.Fatalf("set state: %v", err)
	}
	if err := st.SetState(ctx, "last_run", "2025-01-02T00:00:00Z"); err != nil {
		t.Fatalf("overwrite state: %v", err)
	}
	val, err = st.GetState(ctx, "last_run")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if val != "2025-01-02T00:00:00Z" {
		t.Fatalf("unexpected state value: %q", val)
	}
}

func TestRunAnswers(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	runID, err := st.BeginRun(ctx)
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}
	if err := st.PutAnswers(ctx, runID, []Answer{
		{Question: "q1", Metric: "average_loan", Num: num(50000)},
	}); err != nil {
		t.Fatalf("put q1: %v", err)
	}
	if err := st.PutAnswers(ctx, runID, []Answer{
		{Question: "q2", Metric: "state", Text: text("Alaska")},
		{Question: "q2", Metric: "population", Num: num(733406)},
	}); err != nil {
		t.Fatalf("put q2: %v", err)
	}
	// Re-recording a metric replaces the value.
	if err := st.PutAnswers(ctx, runID, []Answer{
		{Question: "q1", Metric: "average_loan", Num: num(42)},
	}); err != nil {
		t.Fatalf("replace q1: %v", err)
	}
	if err := st.FinishRun(ctx, runID, nil); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	answers, err := st.RunAnswers(ctx, runID)
	if err != nil {
		t.Fatalf("run answers: %v", err)
	}
	if len(answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(answers))
	}
	if answers[0].Question != "q1" || *answers[0].Num != 42 {
		t.Fatalf("unexpected q1 answer: %#v", answers[0])
	}
	if answers[1].Metric != "state" || answers[1].Text == nil || *answers[1].Text != "Alaska" || answers[1].Num != nil {
		t.Fatalf("unexpected q2 state answer: %#v", answers[1])
	}

	run, ok, err := st.LatestRun(ctx, StatusOK)
	if err != nil || !ok {
		t.Fatalf("latest run: ok=%v err=%v", ok, err)
	}
	if run.ID != runID || run.FinishedAt == "" || run.Error != "" {
		t.Fatalf("unexpected run: %#v", run)
	}
}

func TestFailedRun(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	okID, err := st.BeginRun(ctx)
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}
	if err := st.FinishRun(ctx, okID, nil); err != nil {
		t.Fatalf("finish ok run: %v", err)
	}
	failedID, err := st.BeginRun(ctx)
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}
	if err := st.FinishRun(ctx, failedID, errors.New("state not found: atlantis")); err != nil {
		t.Fatalf("finish failed run: %v", err)
	}

	latest, ok, err := st.LatestRun(ctx, "")
	if err != nil || !ok {
		t.Fatalf("latest run: ok=%v err=%v", ok, err)
	}
	if latest.ID != failedID || latest.Status != StatusFailed || latest.Error != "state not found: atlantis" {
		t.Fatalf("unexpected latest run: %#v", latest)
	}

	latestOK, ok, err := st.LatestRun(ctx, StatusOK)
	if err != nil || !ok {
		t.Fatalf("latest ok run: ok=%v err=%v", ok, err)
	}
	if latestOK.ID != okID {
		t.Fatalf("expected run %d, got %d", okID, latestOK.ID)
	}
}

func TestLatestRunEmpty(t *testing.T) {
	st := newTestStore(t)
	_, ok, err := st.LatestRun(context.Background(), "")
	if err != nil {
		t.Fatalf("latest run: %v", err)
	}
	if ok {
		t.Fatalf("expected no runs")
	}
}
