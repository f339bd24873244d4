package report

import (
	"time"

	"github.com/avelora/salesboard/internal/entity"
	"github.com/shopspring/decimal"
)

type ledgerKey struct {
	staff  string
	day    string
	market string
}

type ledgerAgg struct {
	orders int
	amount decimal.Decimal
}

// LedgerIndex cross-references self-reported activity against the order
// ledger. The key is (normalized staff name, day, normalized market).
// Product is deliberately left out because fulfillment does not attribute
// ledger entries to a product reliably. All entries sharing a key accumulate
// into one count and amount, so lookups are O(1) per record instead of a
// scan over the ledger.
type LedgerIndex struct {
	idx map[ledgerKey]ledgerAgg
}

// NewLedgerIndex builds the hash index over all ledger entries fetched for
// the report's date range.
func NewLedgerIndex(entries []entity.LedgerEntry) *LedgerIndex {
	ix := &LedgerIndex{idx: make(map[ledgerKey]ledgerAgg, len(entries))}
	for _, e := range entries {
		k := ledgerKey{
			staff:  NormalizeKey(e.StaffName),
			day:    DayKey(e.SoldAt),
			market: NormalizeKey(e.Market),
		}
		agg := ix.idx[k]
		agg.orders++
		agg.amount = agg.amount.Add(e.Amount)
		ix.idx[k] = agg
	}
	return ix
}

// Lookup returns the confirmed order count and revenue for a staff/day/market
// combination. A miss yields explicit zeros, never an error: an unmatched
// record is an expected steady-state condition.
func (ix *LedgerIndex) Lookup(staffName string, day time.Time, market string) (int, decimal.Decimal) {
	agg, ok := ix.idx[ledgerKey{
		staff:  NormalizeKey(staffName),
		day:    DayKey(day),
		market: NormalizeKey(market),
	}]
	if !ok {
		return 0, decimal.Zero
	}
	return agg.orders, agg.amount
}
