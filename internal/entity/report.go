package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type TimeRange struct {
	From time.Time
	To   time.Time
}

// Requester identifies who is asking for a report. Role and delegated names
// are resolved by the caller; the engine only consumes them.
type Requester struct {
	Name           string
	Email          string
	Role           string
	DelegatedNames []string
}

// ReportQuery is the input of a single report run. Empty filter slices mean
// "all"; an empty team means all teams.
type ReportQuery struct {
	Period    TimeRange
	Team      string
	Products  []string
	Markets   []string
	Shifts    []string
	Requester Requester
}

// StaffSummary is one aggregated row keyed by (team, staff), or by
// (team, staff, date) in the daily breakdown where Date is set. Ratio fields
// are always derived from the summed numerators below them, never averaged
// across rows, and evaluate to zero when their denominator is zero.
type StaffSummary struct {
	Team      string
	StaffName string
	Date      *time.Time

	AdSpend             decimal.Decimal
	MessageCount        int
	ClaimedOrders       int
	ClaimedRevenue      decimal.Decimal
	CancelledOrders     int
	CancelledRevenue    decimal.Decimal
	PostShippingRevenue decimal.Decimal
	KPITarget           decimal.Decimal
	ConfirmedOrders     int
	ConfirmedRevenue    decimal.Decimal

	ClosingRate                decimal.Decimal
	ClosingRateConfirmed       decimal.Decimal
	CostPerMessage             decimal.Decimal
	CostPerOrder               decimal.Decimal
	CostToRevenue              decimal.Decimal
	AvgOrderValue              decimal.Decimal
	CostToRevenueAfterShipping decimal.Decimal
	KPIAttainment              decimal.Decimal
}

// DaySummary carries one calendar day of the daily breakdown.
type DaySummary struct {
	Date  time.Time
	Rows  []StaffSummary
	Total StaffSummary
}

// PivotRow is one row of a (product, market) pivot table. IsSubtotal marks
// product-level rollups; the grand-total row uses the TotalLabel product name.
type PivotRow struct {
	Product    string
	Market     string
	IsSubtotal bool

	AdSpend             decimal.Decimal
	MessageCount        int
	ClaimedOrders       int
	ClaimedRevenue      decimal.Decimal
	CancelledOrders     int
	CancelledRevenue    decimal.Decimal
	PostShippingRevenue decimal.Decimal
	ConfirmedOrders     int
	ConfirmedRevenue    decimal.Decimal

	CostPercent          decimal.Decimal
	CostPerOrder         decimal.Decimal
	AvgOrderValue        decimal.Decimal
	ClosingRate          decimal.Decimal
	ClosingRateConfirmed decimal.Decimal
}

// PivotReport partitions records into a domestic and an overseas table, plus
// a summary table over the whole set that ignores market as a dimension.
type PivotReport struct {
	Domestic []PivotRow
	Overseas []PivotRow
	Summary  []PivotRow
}

// Report is the full output of one report run.
type Report struct {
	Rows  []StaffSummary
	Total StaffSummary
	Daily []DaySummary
	Pivot PivotReport
}
