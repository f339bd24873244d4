package report

import (
	"database/sql"

	"github.com/avelora/salesboard/internal/entity"
	"github.com/shopspring/decimal"
)

// Enrich converts raw activity rows into the derived copies the report
// consumers share. Fetched rows are never mutated. Three things happen here
// and nowhere else: the raw entry date is normalized (or dropped), the team
// is resolved through the directory index, and the ledger index fills in
// confirmed figures. Missing numerics become zero, since blank means "nothing
// reported" under the data-entry convention.
func Enrich(rows []entity.ActivityRow, teams *TeamIndex, ledger *LedgerIndex) []entity.Activity {
	out := make([]entity.Activity, 0, len(rows))
	for _, row := range rows {
		a := entity.Activity{
			StaffName:  row.StaffName,
			StaffEmail: row.StaffEmail,
			Shift:      row.Shift,
			Product:    row.Product,
			Market:     row.Market,

			AdSpend:             nullDec(row.AdSpend),
			MessageCount:        nullInt(row.MessageCount),
			ClaimedOrders:       nullInt(row.ClaimedOrders),
			ClaimedRevenue:      nullDec(row.ClaimedRevenue),
			CancelledOrders:     nullInt(row.CancelledOrders),
			CancelledRevenue:    nullDec(row.CancelledRevenue),
			PostShippingRevenue: nullDec(row.PostShippingRevenue),
			KPITarget:           nullDec(row.KPITarget),
		}

		if row.EntryDate.Valid {
			if d, ok := ParseDate(row.EntryDate.String); ok {
				a.Date = &d
			}
		}

		if row.Team.Valid && row.Team.String != "" {
			a.Team = row.Team.String
		} else if team, ok := teams.Resolve(row.StaffName, row.StaffEmail); ok {
			a.Team = team
		}

		if a.Date != nil {
			a.ConfirmedOrders, a.ConfirmedRevenue = ledger.Lookup(row.StaffName, *a.Date, row.Market)
		}

		out = append(out, a)
	}
	return out
}

func nullInt(v sql.NullInt64) int {
	if !v.Valid {
		return 0
	}
	return int(v.Int64)
}

func nullDec(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}
