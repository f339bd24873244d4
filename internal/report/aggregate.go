package report

import (
	"sort"

	"github.com/avelora/salesboard/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// UnassignedTeam is the sentinel bucket for records whose staff member
// matched neither directory. They are reported, not dropped.
const UnassignedTeam = "unassigned"

// AggregateFilter narrows the record set before grouping. Empty slices and
// an empty team mean "all". Matching is done on normalized keys so filter
// values are casing- and whitespace-insensitive.
type AggregateFilter struct {
	Team     string
	Products []string
	Markets  []string
	Shifts   []string
}

// Match reports whether a record passes every filter predicate.
func (f AggregateFilter) Match(a entity.Activity) bool {
	if f.Team != "" && NormalizeKey(a.Team) != NormalizeKey(f.Team) {
		return false
	}
	return inSet(f.Products, a.Product) && inSet(f.Markets, a.Market) && inSet(f.Shifts, a.Shift)
}

func inSet(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	k := NormalizeKey(v)
	for _, s := range set {
		if NormalizeKey(s) == k {
			return true
		}
	}
	return false
}

type groupKey struct {
	team  string
	staff string
}

// Aggregate groups enriched records by (team, staff), sums every numeric
// field and derives the ratio metrics from the summed numerators. The grand
// total is computed the same way from the grand sums; averaging per-row
// ratios would weight a 10-message day the same as a 10-thousand-message day
// and is wrong by construction.
//
// Rows come back ordered by team then staff name using a case-insensitive
// collator, so ordering is stable for accented names too.
func Aggregate(records []entity.Activity, f AggregateFilter) ([]entity.StaffSummary, entity.StaffSummary) {
	groups := make(map[groupKey]*entity.StaffSummary)
	var total entity.StaffSummary

	for _, a := range records {
		if !f.Match(a) {
			continue
		}
		team := a.Team
		if team == "" {
			team = UnassignedTeam
		}
		k := groupKey{team: NormalizeKey(team), staff: NormalizeKey(a.StaffName)}
		g, ok := groups[k]
		if !ok {
			g = &entity.StaffSummary{Team: team, StaffName: a.StaffName}
			groups[k] = g
		}
		accumulate(g, a)
		accumulate(&total, a)
	}

	rows := make([]entity.StaffSummary, 0, len(groups))
	for _, g := range groups {
		deriveRatios(g)
		rows = append(rows, *g)
	}

	c := collate.New(language.Und, collate.IgnoreCase)
	sort.Slice(rows, func(i, j int) bool {
		if cmp := c.CompareString(rows[i].Team, rows[j].Team); cmp != 0 {
			return cmp < 0
		}
		return c.CompareString(rows[i].StaffName, rows[j].StaffName) < 0
	})

	deriveRatios(&total)
	return rows, total
}

func accumulate(s *entity.StaffSummary, a entity.Activity) {
	s.AdSpend = s.AdSpend.Add(a.AdSpend)
	s.MessageCount += a.MessageCount
	s.ClaimedOrders += a.ClaimedOrders
	s.ClaimedRevenue = s.ClaimedRevenue.Add(a.ClaimedRevenue)
	s.CancelledOrders += a.CancelledOrders
	s.CancelledRevenue = s.CancelledRevenue.Add(a.CancelledRevenue)
	s.PostShippingRevenue = s.PostShippingRevenue.Add(a.PostShippingRevenue)
	s.KPITarget = s.KPITarget.Add(a.KPITarget)
	s.ConfirmedOrders += a.ConfirmedOrders
	s.ConfirmedRevenue = s.ConfirmedRevenue.Add(a.ConfirmedRevenue)
}

func deriveRatios(s *entity.StaffSummary) {
	messages := decimal.NewFromInt(int64(s.MessageCount))
	claimed := decimal.NewFromInt(int64(s.ClaimedOrders))
	confirmed := decimal.NewFromInt(int64(s.ConfirmedOrders))

	s.ClosingRate = safeDiv(claimed, messages)
	s.ClosingRateConfirmed = safeDiv(confirmed, messages)
	s.CostPerMessage = safeDiv(s.AdSpend, messages)
	s.CostPerOrder = safeDiv(s.AdSpend, claimed)
	s.CostToRevenue = safeDiv(s.AdSpend, s.ClaimedRevenue)
	s.AvgOrderValue = safeDiv(s.ClaimedRevenue, claimed)
	s.CostToRevenueAfterShipping = safeDiv(s.AdSpend, s.PostShippingRevenue)
	s.KPIAttainment = safeDiv(s.PostShippingRevenue, s.KPITarget)
}

// safeDiv is the one division the whole engine uses: a zero denominator
// yields zero, never NaN, Inf or a panic. A zero ratio and a no-data ratio
// render the same on the dashboard, which is the accepted trade-off.
func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}
