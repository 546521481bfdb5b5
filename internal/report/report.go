// Package report writes the plain-text analysis printed by the CLI.
package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"usaspending-analytics/internal/usaspending"
)

// Printer writes report sections to w. The first write error sticks and is
// returned by Err.
type Printer struct {
	w   io.Writer
	err error
}

func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Err() error { return p.err }

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) Header() {
	p.printf("USASpending API Analysis\n\n")
}

func (p *Printer) LoanStart(state string, fiscalYear int) {
	p.printf("Calculating Q1: Average loan amount to %s in FY %d...\n", state, fiscalYear)
}

func (p *Printer) Loan(avg float64) {
	p.printf("Results for Q1:\n")
	p.printf("%s\n\n", Dollars(avg))
}

func (p *Printer) GrantStart(year int) {
	p.printf("Calculating Q2: Finding state with highest grant value per resident in %d...\n", year)
}

func (p *Printer) Grant(g usaspending.GrantLeader) {
	p.printf("Results for Q2:\n")
	p.printf("State: %s\n", g.State)
	p.printf("Population: %s\n", humanize.Comma(g.Population))
	p.printf("Total Grants: %s\n", Dollars(g.TotalGrants))
	p.printf("Amount per resident: %s\n\n", Dollars(g.PerResident))
}

func (p *Printer) BudgetStart(agency string, fiscalYear int) {
	p.printf("Calculating Q3: Determining %s's budget/awards ratio for FY %d...\n", agency, fiscalYear)
}

func (p *Printer) Budget(r usaspending.BudgetRatio) {
	p.printf("Results for Q3:\n")
	p.printf("Total Budgetary Resources: %s\n", Dollars(r.Resources))
	p.printf("New Awards: %s\n", humanize.Comma(r.NewAwards))
	p.printf("Ratio (Resources per Award): %s\n", Dollars(r.Ratio))
}

// Dollars formats v as "$1,234.56".
func Dollars(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}
