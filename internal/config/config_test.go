package config

import (
	"strings"
	"testing"
	"time"

	"usaspending-analytics/internal/usaspending"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"USASPENDING_BASE_URL", "USASPENDING_HTTP_TIMEOUT", "DATA_DIR", "RECORD_RUNS", "APP_ENV", "LOG_LEVEL",
		"Q1_STATE", "Q1_FISCAL_YEAR", "Q2_YEAR", "Q3_AGENCY", "Q3_FISCAL_YEAR"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.BaseURL != usaspending.DefaultBaseURL {
		t.Fatalf("unexpected base URL %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 60*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.HTTPTimeout)
	}
	if cfg.LoanState != "Texas" || cfg.LoanFiscalYear != 2019 {
		t.Fatalf("unexpected Q1 defaults: %q %d", cfg.LoanState, cfg.LoanFiscalYear)
	}
	if cfg.DataDir != "./data" || !cfg.RecordRuns {
		t.Fatalf("unexpected history defaults: %q %v", cfg.DataDir, cfg.RecordRuns)
	}
	if cfg.GrantYear != 2023 {
		t.Fatalf("unexpected Q2 default: %d", cfg.GrantYear)
	}
	if cfg.BudgetAgency != "NASA" || cfg.BudgetYear != 2024 {
		t.Fatalf("unexpected Q3 defaults: %q %d", cfg.BudgetAgency, cfg.BudgetYear)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("USASPENDING_BASE_URL", "http://localhost:9000/api/v2")
	t.Setenv("USASPENDING_HTTP_TIMEOUT", "5s")
	t.Setenv("RECORD_RUNS", "false")
	t.Setenv("Q1_STATE", "Ohio")
	t.Setenv("Q1_FISCAL_YEAR", "2020")
	t.Setenv("Q3_FISCAL_YEAR", "not-a-number")

	cfg := Load()
	if cfg.BaseURL != "http://localhost:9000/api/v2" {
		t.Fatalf("unexpected base URL %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.HTTPTimeout)
	}
	if cfg.LoanState != "Ohio" || cfg.LoanFiscalYear != 2020 {
		t.Fatalf("unexpected Q1 overrides: %q %d", cfg.LoanState, cfg.LoanFiscalYear)
	}
	if cfg.RecordRuns {
		t.Fatalf("expected run recording to be disabled")
	}
	if cfg.BudgetYear != 2024 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.BudgetYear)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		BaseURL:        "ftp://example.test",
		HTTPTimeout:    0,
		RecordRuns:     true,
		LoanState:      " ",
		LoanFiscalYear: 1999,
		GrantYear:      2023,
		BudgetAgency:   "NASA",
		BudgetYear:     2024,
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"scheme 'ftp'", "data directory", "HTTP timeout", "Q1 state", "Q1 fiscal year 1999"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %q", want, err.Error())
		}
	}
}
