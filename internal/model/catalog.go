package model

import "github.com/shopspring/decimal"

// Plan is the static catalog entry a checkout resolves against. Products are
// seeded from this catalog and re-upserted on checkout so the catalog heals
// itself if rows go missing.
type Plan struct {
	ID           string
	Name         string
	Description  string
	PriceUsd     decimal.Decimal
	DurationDays int
}

var PlanCatalog = []Plan{
	{
		ID:           "plan_3m",
		Name:         "3 Months IPTV",
		Description:  "Reliable IPTV access for 3 months.",
		PriceUsd:     decimal.NewFromInt(29),
		DurationDays: 90,
	},
	{
		ID:           "plan_6m",
		Name:         "6 Months IPTV",
		Description:  "Half-year IPTV with VOD and sports.",
		PriceUsd:     decimal.NewFromInt(39),
		DurationDays: 180,
	},
	{
		ID:           "plan_12m",
		Name:         "12 Months IPTV",
		Description:  "Best value annual IPTV subscription.",
		PriceUsd:     decimal.NewFromInt(59),
		DurationDays: 365,
	},
}

// legacyPlanAliases maps plan ids used by older checkout forms.
var legacyPlanAliases = map[string]string{
	"3m": "plan_3m",
	"6m": "plan_6m",
	"1y": "plan_12m",
}

// ResolvePlan returns the catalog entry for a plan id, accepting legacy
// aliases. ok is false when the id matches nothing.
func ResolvePlan(planID string) (Plan, bool) {
	if canonical, found := legacyPlanAliases[planID]; found {
		planID = canonical
	}
	for _, p := range PlanCatalog {
		if p.ID == planID {
			return p, true
		}
	}
	return Plan{}, false
}
