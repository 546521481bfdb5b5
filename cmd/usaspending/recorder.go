package main

import (
	"context"
	"fmt"
	"time"

	"usaspending-analytics/internal/store"
)

// recorder writes a run's answers to the history store. A nil store makes
// every method a no-op.
type recorder struct {
	st    *store.Store
	runID int64
}

func beginRecording(ctx context.Context, st *store.Store) (*recorder, error) {
	if st == nil {
		return &recorder{}, nil
	}
	id, err := st.BeginRun(ctx)
	if err != nil {
		return nil, err
	}
	return &recorder{st: st, runID: id}, nil
}

func (r *recorder) put(ctx context.Context, question string, answers ...store.Answer) error {
	if r.st == nil {
		return nil
	}
	for i := range answers {
		answers[i].Question = question
	}
	if err := r.st.PutAnswers(ctx, r.runID, answers); err != nil {
		return fmt.Errorf("record %s: %w", question, err)
	}
	return nil
}

func (r *recorder) finish(ctx context.Context, runErr error) error {
	if r.st == nil {
		return nil
	}
	if err := r.st.FinishRun(ctx, r.runID, runErr); err != nil {
		return err
	}
	if runErr != nil {
		return nil
	}
	return r.st.SetState(ctx, "last_run", time.Now().UTC().Format(time.RFC3339))
}

func numAnswer(metric string, v float64) store.Answer {
	return store.Answer{Metric: metric, Num: &v}
}

func textAnswer(metric, v string) store.Answer {
	return store.Answer{Metric: metric, Text: &v}
}
