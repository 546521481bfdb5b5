package usaspending

import (
	"context"

	"go.uber.org/zap"
)

// AverageLoanAmount returns the mean loan size awarded to recipients in the
// named state for a fiscal year. It is 0 when the state has no loan record or
// a zero loan count.
func (c *Client) AverageLoanAmount(ctx context.Context, state string, fiscalYear int) (float64, error) {
	fips, err := c.StateFIPS(ctx, state)
	if err != nil {
		return 0, err
	}
	awards, err := c.StateAwards(ctx, fips, fiscalYear)
	if err != nil {
		return 0, err
	}
	loans, ok := FindAward(awards, "loans")
	if !ok {
		c.log.Debug("no loan record", zap.String("state", state), zap.Int("fiscal_year", fiscalYear))
		return 0, nil
	}
	return AverageAmount(loans), nil
}

// HighestGrantPerCapita scans every entity of type "state" and returns the one
// with the highest grant dollars per resident. States without population data
// or without a grant record are skipped. The zero GrantLeader is returned when
// no state qualifies.
func (c *Client) HighestGrantPerCapita(ctx context.Context, year int) (GrantLeader, error) {
	all, err := c.States(ctx)
	if err != nil {
		return GrantLeader{}, err
	}

	var t grantTracker
	for _, s := range all {
		if s.Type != "state" {
			continue
		}
		details, err := c.StateDetails(ctx, s.FIPS, year)
		if err != nil {
			return GrantLeader{}, err
		}
		if details.Population == nil || *details.Population == 0 {
			c.log.Debug("skipping state without population", zap.String("state", s.Name))
			continue
		}

		awards, err := c.StateAwards(ctx, s.FIPS, year)
		if err != nil {
			return GrantLeader{}, err
		}
		grants, ok := FindAward(awards, "grants")
		if !ok {
			c.log.Debug("skipping state without grants", zap.String("state", s.Name))
			continue
		}

		perResident, _ := PerCapita(grants.Amount, details.Population)
		t.offer(s.Name, grants.Amount, *details.Population, perResident)
	}
	return t.leader, nil
}

// BudgetToAwardRatio divides an agency's total budgetary resources for a
// fiscal year by the number of new awards it made that year.
func (c *Client) BudgetToAwardRatio(ctx context.Context, abbreviation string, fiscalYear int) (BudgetRatio, error) {
	code, err := c.AgencyCode(ctx, abbreviation)
	if err != nil {
		return BudgetRatio{}, err
	}

	years, err := c.BudgetaryResources(ctx, code)
	if err != nil {
		return BudgetRatio{}, err
	}
	fy, ok := FindFiscalYear(years, fiscalYear)
	if !ok {
		return BudgetRatio{}, &NoDataError{FiscalYear: fiscalYear}
	}

	nac, err := c.NewAwardCount(ctx, code, fiscalYear)
	if err != nil {
		return BudgetRatio{}, err
	}
	var count int64
	if nac.NewAwardCount != nil {
		count = *nac.NewAwardCount
	}

	return BudgetRatio{
		Resources: fy.TotalBudgetaryResources,
		NewAwards: count,
		Ratio:     Ratio(fy.TotalBudgetaryResources, count),
	}, nil
}
