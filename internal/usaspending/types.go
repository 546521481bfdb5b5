package usaspending

type Agency struct {
	AgencyID     int    `json:"agency_id"`
	ToptierCode  string `json:"toptier_code"`
	Abbreviation string `json:"abbreviation"`
	AgencyName   string `json:"agency_name"`
}

type State struct {
	FIPS   string  `json:"fips"`
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Type   string  `json:"type"` // state, territory, district
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

type StateDetails struct {
	Name        string   `json:"name"`
	Code        string   `json:"code"`
	FIPS        string   `json:"fips"`
	Type        string   `json:"type"`
	Population  *int64   `json:"population"`
	PopYear     *int     `json:"pop_year"`
	TotalAmount *float64 `json:"total_prime_amount"`
	AwardCount  *int64   `json:"total_prime_awards"`
}

// AwardSummary is one row of a state's award breakdown; Type is e.g. "loans"
// or "grants".
type AwardSummary struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

type BudgetaryResourcesByYear struct {
	FiscalYear               int     `json:"fiscal_year"`
	TotalBudgetaryResources  float64 `json:"total_budgetary_resources"`
	AgencyBudgetaryResources float64 `json:"agency_budgetary_resources"`
	AgencyTotalObligated     float64 `json:"agency_total_obligated"`
}

type NewAwardCount struct {
	ToptierCode   string `json:"toptier_code"`
	FiscalYear    int    `json:"fiscal_year"`
	NewAwardCount *int64 `json:"new_award_count"`
}

// GrantLeader is the state with the highest grant dollars per resident.
type GrantLeader struct {
	State       string
	TotalGrants float64
	PerResident float64
	Population  int64
}

type BudgetRatio struct {
	Resources float64
	NewAwards int64
	Ratio     float64
}
