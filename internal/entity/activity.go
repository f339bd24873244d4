package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// ActivityRow represents the activity_log table as stored. Data entry is
// forgiving, so numeric columns are nullable and the entry date is kept as
// raw text in whatever format the operator typed it in.
type ActivityRow struct {
	ID                  int                 `db:"id"`
	StaffName           string              `db:"staff_name"`
	StaffEmail          string              `db:"staff_email"`
	Team                sql.NullString      `db:"team"`
	EntryDate           sql.NullString      `db:"entry_date"`
	Shift               string              `db:"shift"`
	Product             string              `db:"product"`
	Market              string              `db:"market"`
	AdSpend             decimal.NullDecimal `db:"ad_spend"`
	MessageCount        sql.NullInt64       `db:"message_count"`
	ClaimedOrders       sql.NullInt64       `db:"claimed_orders"`
	ClaimedRevenue      decimal.NullDecimal `db:"claimed_revenue"`
	CancelledOrders     sql.NullInt64       `db:"cancelled_orders"`
	CancelledRevenue    decimal.NullDecimal `db:"cancelled_revenue"`
	PostShippingRevenue decimal.NullDecimal `db:"post_shipping_revenue"`
	KPITarget           decimal.NullDecimal `db:"kpi_target"`
	CreatedAt           time.Time           `db:"created_at"`
}

// Activity is the enriched, read-only copy of an ActivityRow that the report
// engine works on. Converting missing numerics to zero happens exactly once,
// here, as a business rule: an operator who left a field blank reported
// nothing, not unknown. Date is nil when the raw entry date matched no
// supported format. Team is empty when neither directory knows the staff
// member.
type Activity struct {
	StaffName  string
	StaffEmail string
	Team       string
	Date       *time.Time
	Shift      string
	Product    string
	Market     string

	AdSpend             decimal.Decimal
	MessageCount        int
	ClaimedOrders       int
	ClaimedRevenue      decimal.Decimal
	CancelledOrders     int
	CancelledRevenue    decimal.Decimal
	PostShippingRevenue decimal.Decimal
	KPITarget           decimal.Decimal

	// Filled from the order ledger; zero when no ledger entry matched.
	ConfirmedOrders  int
	ConfirmedRevenue decimal.Decimal
}

// LedgerEntry represents one confirmed order from the order_ledger table,
// recorded by fulfillment independently of self-reported activity.
type LedgerEntry struct {
	ID        int             `db:"id"`
	StaffName string          `db:"staff_name"`
	SoldAt    time.Time       `db:"sold_at"`
	Market    string          `db:"market"`
	Amount    decimal.Decimal `db:"amount"`
}

// IdentityRecord represents a row from either staff directory. Both
// directories may know the same person; team may be blank in either.
type IdentityRecord struct {
	Name  string `db:"name"`
	Email string `db:"email"`
	Team  string `db:"team"`
}
