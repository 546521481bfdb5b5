package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"usaspending-analytics/internal/config"
	"usaspending-analytics/internal/logger"
	"usaspending-analytics/internal/report"
	"usaspending-analytics/internal/store"
	"usaspending-analytics/internal/usaspending"
)

// main answers the three spending questions and prints them to stdout.
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := execute(cfg, log); err != nil {
		log.Error("analysis failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

// execute acquires the run's resources, runs the analysis and releases them.
func execute(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st *store.Store
	if cfg.RecordRuns {
		db, err := openDB(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open run history: %w", err)
		}
		defer db.Close()
		st = store.New(db)
		if err := st.InitSchema(); err != nil {
			return fmt.Errorf("init run history schema: %w", err)
		}
	}

	hc := usaspending.NewHTTPClient(cfg.HTTPTimeout)
	defer hc.CloseIdleConnections()
	cli := usaspending.NewClient(cfg.BaseURL, hc, log.Named("usaspending"))

	return run(ctx, cfg, cli, st, os.Stdout, log)
}

// openDB opens the run history database under dataDir, creating the directory.
func openDB(dataDir string) (*sql.DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return sql.Open("sqlite3", filepath.Join(dataDir, "usaspending.sqlite")+"?_busy_timeout=5000&_foreign_keys=1")
}

// run executes Q1, Q2 and Q3 in order. The first error aborts the run.
// st may be nil, in which case nothing is recorded.
func run(ctx context.Context, cfg *config.Config, cli *usaspending.Client, st *store.Store, out io.Writer, log *zap.Logger) (err error) {
	rec, err := beginRecording(ctx, st)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	defer func() {
		if ferr := rec.finish(context.WithoutCancel(ctx), err); ferr != nil {
			log.Warn("record run status", zap.Error(ferr))
		}
	}()

	p := report.New(out)
	p.Header()

	start := time.Now()
	p.LoanStart(cfg.LoanState, cfg.LoanFiscalYear)
	avg, err := cli.AverageLoanAmount(ctx, cfg.LoanState, cfg.LoanFiscalYear)
	if err != nil {
		return fmt.Errorf("q1 average loan amount: %w", err)
	}
	p.Loan(avg)
	log.Info("q1 done", zap.Float64("average_loan", avg), zap.Duration("took", time.Since(start)))
	if err := rec.put(ctx, "q1",
		numAnswer("average_loan", avg),
	); err != nil {
		return err
	}

	start = time.Now()
	p.GrantStart(cfg.GrantYear)
	leader, err := cli.HighestGrantPerCapita(ctx, cfg.GrantYear)
	if err != nil {
		return fmt.Errorf("q2 highest grant per capita: %w", err)
	}
	p.Grant(leader)
	log.Info("q2 done", zap.String("state", leader.State), zap.Duration("took", time.Since(start)))
	if err := rec.put(ctx, "q2",
		textAnswer("state", leader.State),
		numAnswer("population", float64(leader.Population)),
		numAnswer("total_grants", leader.TotalGrants),
		numAnswer("per_resident", leader.PerResident),
	); err != nil {
		return err
	}

	start = time.Now()
	p.BudgetStart(cfg.BudgetAgency, cfg.BudgetYear)
	ratio, err := cli.BudgetToAwardRatio(ctx, cfg.BudgetAgency, cfg.BudgetYear)
	if err != nil {
		return fmt.Errorf("q3 budget to award ratio: %w", err)
	}
	p.Budget(ratio)
	log.Info("q3 done", zap.Float64("ratio", ratio.Ratio), zap.Duration("took", time.Since(start)))
	if err := rec.put(ctx, "q3",
		numAnswer("total_budgetary_resources", ratio.Resources),
		numAnswer("new_awards", float64(ratio.NewAwards)),
		numAnswer("ratio", ratio.Ratio),
	); err != nil {
		return err
	}

	return p.Err()
}
