package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"usaspending-analytics/internal/usaspending"
)

type Config struct {
	BaseURL     string
	HTTPTimeout time.Duration

	// DataDir holds the run history database.
	DataDir    string
	RecordRuns bool

	Env      string
	LogLevel string

	LoanState      string
	LoanFiscalYear int
	GrantYear      int
	BudgetAgency   string
	BudgetYear     int
}

// Load reads the configuration from the environment. Values from .env and
// .env.local fill in variables that are not already set.
func Load() *Config {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	return &Config{
		BaseURL:     getEnv("USASPENDING_BASE_URL", usaspending.DefaultBaseURL),
		HTTPTimeout: getEnvDuration("USASPENDING_HTTP_TIMEOUT", 60*time.Second),
		DataDir:     getEnv("DATA_DIR", "./data"),
		RecordRuns:  getEnvBool("RECORD_RUNS", true),
		Env:         getEnv("APP_ENV", "local"),
		LogLevel:    os.Getenv("LOG_LEVEL"),

		LoanState:      getEnv("Q1_STATE", "Texas"),
		LoanFiscalYear: getEnvInt("Q1_FISCAL_YEAR", 2019),
		GrantYear:      getEnvInt("Q2_YEAR", 2023),
		BudgetAgency:   getEnv("Q3_AGENCY", "NASA"),
		BudgetYear:     getEnvInt("Q3_FISCAL_YEAR", 2024),
	}
}

// Validate returns an error listing every invalid setting.
func (c *Config) Validate() error {
	var errs []string

	if u, err := url.Parse(c.BaseURL); err != nil {
		errs = append(errs, fmt.Sprintf("invalid base URL '%s': %v", c.BaseURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("invalid base URL scheme '%s': must be 'http' or 'https'", u.Scheme))
	}
	if c.RecordRuns && strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, "data directory cannot be empty when run recording is enabled")
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("invalid HTTP timeout %s: must be positive", c.HTTPTimeout))
	}
	if strings.TrimSpace(c.LoanState) == "" {
		errs = append(errs, "Q1 state cannot be empty")
	}
	if strings.TrimSpace(c.BudgetAgency) == "" {
		errs = append(errs, "Q3 agency cannot be empty")
	}
	years := []struct {
		name string
		year int
	}{
		{"Q1 fiscal year", c.LoanFiscalYear},
		{"Q2 year", c.GrantYear},
		{"Q3 fiscal year", c.BudgetYear},
	}
	for _, y := range years {
		if y.year < 2000 || y.year > 2100 {
			errs = append(errs, fmt.Sprintf("invalid %s %d", y.name, y.year))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// getEnv returns the environment variable or a default.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt returns an int environment variable or a default.
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
