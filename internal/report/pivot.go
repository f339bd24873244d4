package report

import (
	"sort"
	"strings"

	"github.com/avelora/salesboard/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TotalLabel is the product name carried by the prepended grand-total row.
const TotalLabel = "total"

// Markets routed to the overseas pivot table unless overridden by
// configuration. Matching is a case-insensitive substring test, so
// "Thailand - North" still routes overseas.
var defaultOverseasMarkets = []string{
	"cambodia",
	"indonesia",
	"malaysia",
	"philippines",
	"singapore",
	"thailand",
}

// PivotFilter narrows the record set before pivoting; every field is a
// single optional value.
type PivotFilter struct {
	Product string
	Market  string
	Team    string
}

func (f PivotFilter) match(a entity.Activity) bool {
	if f.Product != "" && NormalizeKey(a.Product) != NormalizeKey(f.Product) {
		return false
	}
	if f.Market != "" && NormalizeKey(a.Market) != NormalizeKey(f.Market) {
		return false
	}
	if f.Team != "" && NormalizeKey(a.Team) != NormalizeKey(f.Team) {
		return false
	}
	return true
}

// PivotBuilder produces the three (product, market) tables of a report run.
type PivotBuilder struct {
	overseas []string
}

// NewPivotBuilder builds a pivot builder routing the given market names to
// the overseas table; an empty list falls back to the defaults.
func NewPivotBuilder(overseasMarkets []string) *PivotBuilder {
	if len(overseasMarkets) == 0 {
		overseasMarkets = defaultOverseasMarkets
	}
	normalized := make([]string, 0, len(overseasMarkets))
	for _, m := range overseasMarkets {
		if k := NormalizeKey(m); k != "" {
			normalized = append(normalized, k)
		}
	}
	return &PivotBuilder{overseas: normalized}
}

func (b *PivotBuilder) isOverseas(market string) bool {
	k := NormalizeKey(market)
	for _, m := range b.overseas {
		if strings.Contains(k, m) {
			return true
		}
	}
	return false
}

// Build partitions the filtered records by geography, pivots each partition
// by (product, market), and adds an un-partitioned summary table that keeps
// product as the only dimension.
func (b *PivotBuilder) Build(records []entity.Activity, f PivotFilter) entity.PivotReport {
	matched := make([]entity.Activity, 0, len(records))
	for _, a := range records {
		if f.match(a) {
			matched = append(matched, a)
		}
	}

	var domestic, overseas []entity.Activity
	for _, a := range matched {
		if b.isOverseas(a.Market) {
			overseas = append(overseas, a)
		} else {
			domestic = append(domestic, a)
		}
	}

	return entity.PivotReport{
		Domestic: buildPivotTable(domestic, true),
		Overseas: buildPivotTable(overseas, true),
		Summary:  buildPivotTable(matched, false),
	}
}

type pivotKey struct {
	product string
	market  string
}

// buildPivotTable groups records by (product, market), or product alone
// when byMarket is false, and assembles the ordered table: grand total
// first, then products alphabetically with their markets alphabetically
// inside, and a subtotal row after a product's markets only when the product
// spans more than one market in this table.
func buildPivotTable(records []entity.Activity, byMarket bool) []entity.PivotRow {
	if len(records) == 0 {
		return nil
	}

	cells := make(map[pivotKey]*entity.PivotRow)
	for _, a := range records {
		k := pivotKey{product: NormalizeKey(a.Product)}
		if byMarket {
			k.market = NormalizeKey(a.Market)
		}
		cell, ok := cells[k]
		if !ok {
			cell = &entity.PivotRow{Product: a.Product}
			if byMarket {
				cell.Market = a.Market
			}
			cells[k] = cell
		}
		accumulatePivot(cell, a)
	}

	leaves := make([]entity.PivotRow, 0, len(cells))
	for _, cell := range cells {
		derivePivotRatios(cell)
		leaves = append(leaves, *cell)
	}

	c := collate.New(language.Und, collate.IgnoreCase)
	sort.Slice(leaves, func(i, j int) bool {
		if cmp := c.CompareString(leaves[i].Product, leaves[j].Product); cmp != 0 {
			return cmp < 0
		}
		return c.CompareString(leaves[i].Market, leaves[j].Market) < 0
	})

	grand := entity.PivotRow{Product: TotalLabel}
	for _, a := range records {
		accumulatePivot(&grand, a)
	}
	derivePivotRatios(&grand)

	out := make([]entity.PivotRow, 0, len(leaves)+4)
	out = append(out, grand)
	for i := 0; i < len(leaves); {
		j := i
		for j < len(leaves) && NormalizeKey(leaves[j].Product) == NormalizeKey(leaves[i].Product) {
			j++
		}
		out = append(out, leaves[i:j]...)
		if byMarket && j-i > 1 {
			sub := entity.PivotRow{Product: leaves[i].Product, IsSubtotal: true}
			for _, a := range records {
				if NormalizeKey(a.Product) == NormalizeKey(leaves[i].Product) {
					accumulatePivot(&sub, a)
				}
			}
			derivePivotRatios(&sub)
			out = append(out, sub)
		}
		i = j
	}
	return out
}

func accumulatePivot(p *entity.PivotRow, a entity.Activity) {
	p.AdSpend = p.AdSpend.Add(a.AdSpend)
	p.MessageCount += a.MessageCount
	p.ClaimedOrders += a.ClaimedOrders
	p.ClaimedRevenue = p.ClaimedRevenue.Add(a.ClaimedRevenue)
	p.CancelledOrders += a.CancelledOrders
	p.CancelledRevenue = p.CancelledRevenue.Add(a.CancelledRevenue)
	p.PostShippingRevenue = p.PostShippingRevenue.Add(a.PostShippingRevenue)
	p.ConfirmedOrders += a.ConfirmedOrders
	p.ConfirmedRevenue = p.ConfirmedRevenue.Add(a.ConfirmedRevenue)
}

var hundred = decimal.NewFromInt(100)

func derivePivotRatios(p *entity.PivotRow) {
	messages := decimal.NewFromInt(int64(p.MessageCount))
	claimed := decimal.NewFromInt(int64(p.ClaimedOrders))
	confirmed := decimal.NewFromInt(int64(p.ConfirmedOrders))

	p.CostPercent = safeDiv(p.AdSpend, p.ClaimedRevenue).Mul(hundred)
	p.CostPerOrder = safeDiv(p.AdSpend, claimed)
	p.AvgOrderValue = safeDiv(p.ClaimedRevenue, claimed)
	p.ClosingRate = safeDiv(claimed, messages)
	p.ClosingRateConfirmed = safeDiv(confirmed, messages)
}
