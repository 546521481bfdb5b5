package usaspending

// FindAward returns the first summary row of the given type.
func FindAward(awards []AwardSummary, typ string) (AwardSummary, bool) {
	for _, a := range awards {
		if a.Type == typ {
			return a, true
		}
	}
	return AwardSummary{}, false
}

// AverageAmount is amount/count, or 0 when count is zero.
func AverageAmount(a AwardSummary) float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Amount / float64(a.Count)
}

// PerCapita divides an amount by a population. ok is false when the
// population is missing or zero.
func PerCapita(amount float64, population *int64) (v float64, ok bool) {
	if population == nil || *population == 0 {
		return 0, false
	}
	return amount / float64(*population), true
}

func Ratio(resources float64, count int64) float64 {
	if count <= 0 {
		return 0
	}
	return resources / float64(count)
}

func FindFiscalYear(years []BudgetaryResourcesByYear, fiscalYear int) (BudgetaryResourcesByYear, bool) {
	for _, y := range years {
		if y.FiscalYear == fiscalYear {
			return y, true
		}
	}
	return BudgetaryResourcesByYear{}, false
}

// grantTracker keeps the running per-resident maximum. Only a strictly greater
// value replaces the leader, so earlier states win ties.
type grantTracker struct {
	max    float64
	leader GrantLeader
}

func (t *grantTracker) offer(name string, grants float64, population int64, perResident float64) {
	if perResident > t.max {
		t.max = perResident
		t.leader = GrantLeader{
			State:       name,
			TotalGrants: grants,
			PerResident: perResident,
			Population:  population,
		}
	}
}
