package dto

import (
	"fmt"

	"github.com/avelora/salesboard/internal/entity"
	"github.com/avelora/salesboard/internal/report"
	"github.com/shopspring/decimal"
)

// ReportRequest is the JSON body of a report call. Dates accept the same
// forgiving formats as activity entry dates; To is inclusive of its whole day.
type ReportRequest struct {
	From     string   `json:"from" valid:"required"`
	To       string   `json:"to" valid:"required"`
	Team     string   `json:"team,omitempty"`
	Products []string `json:"products,omitempty"`
	Markets  []string `json:"markets,omitempty"`
	Shifts   []string `json:"shifts,omitempty"`
}

// ToQuery converts the request into an engine query for the given requester.
func (r *ReportRequest) ToQuery(requester entity.Requester) (entity.ReportQuery, error) {
	from, ok := report.ParseDate(r.From)
	if !ok {
		return entity.ReportQuery{}, fmt.Errorf("unparseable from date %q", r.From)
	}
	to, ok := report.ParseDate(r.To)
	if !ok {
		return entity.ReportQuery{}, fmt.Errorf("unparseable to date %q", r.To)
	}
	if to.Before(from) {
		return entity.ReportQuery{}, fmt.Errorf("to date %q precedes from date %q", r.To, r.From)
	}
	return entity.ReportQuery{
		Period: entity.TimeRange{
			From: from,
			To:   to.AddDate(0, 0, 1),
		},
		Team:      r.Team,
		Products:  r.Products,
		Markets:   r.Markets,
		Shifts:    r.Shifts,
		Requester: requester,
	}, nil
}

// Report is the JSON shape of a computed report.
type Report struct {
	Rows  []ReportRow `json:"rows"`
	Total ReportRow   `json:"total"`
	Daily []DayReport `json:"daily"`
	Pivot PivotReport `json:"pivot"`
}

type ReportRow struct {
	Team      string `json:"team"`
	StaffName string `json:"staffName"`
	Date      string `json:"date,omitempty"`

	MessageCount        int             `json:"messageCount"`
	ClaimedOrders       int             `json:"claimedOrders"`
	ClaimedRevenue      decimal.Decimal `json:"claimedRevenue"`
	ConfirmedOrders     int             `json:"confirmedOrders"`
	ConfirmedRevenue    decimal.Decimal `json:"confirmedRevenue"`
	CancelledOrders     int             `json:"cancelledOrders"`
	CancelledRevenue    decimal.Decimal `json:"cancelledRevenue"`
	AdSpend             decimal.Decimal `json:"adSpend"`
	PostShippingRevenue decimal.Decimal `json:"postShippingRevenue"`
	KPITarget           decimal.Decimal `json:"kpiTarget"`

	ClosingRate                decimal.Decimal `json:"closingRate"`
	ClosingRateConfirmed       decimal.Decimal `json:"closingRateConfirmed"`
	CostPerMessage             decimal.Decimal `json:"costPerMessage"`
	CostPerOrder               decimal.Decimal `json:"costPerOrder"`
	CostToRevenue              decimal.Decimal `json:"costToRevenue"`
	AvgOrderValue              decimal.Decimal `json:"avgOrderValue"`
	CostToRevenueAfterShipping decimal.Decimal `json:"costToRevenueAfterShipping"`
	KPIAttainment              decimal.Decimal `json:"kpiAttainment"`
}

type DayReport struct {
	Date  string      `json:"date"`
	Rows  []ReportRow `json:"rows"`
	Total ReportRow   `json:"total"`
}

type PivotReport struct {
	Domestic []PivotRow `json:"domestic"`
	Overseas []PivotRow `json:"overseas"`
	Summary  []PivotRow `json:"summary"`
}

type PivotRow struct {
	Product    string `json:"product"`
	Market     string `json:"market,omitempty"`
	IsSubtotal bool   `json:"isSubtotal,omitempty"`

	MessageCount        int             `json:"messageCount"`
	ClaimedOrders       int             `json:"claimedOrders"`
	ClaimedRevenue      decimal.Decimal `json:"claimedRevenue"`
	CancelledOrders     int             `json:"cancelledOrders"`
	CancelledRevenue    decimal.Decimal `json:"cancelledRevenue"`
	PostShippingRevenue decimal.Decimal `json:"postShippingRevenue"`
	ConfirmedOrders     int             `json:"confirmedOrders"`
	ConfirmedRevenue    decimal.Decimal `json:"confirmedRevenue"`
	AdSpend             decimal.Decimal `json:"adSpend"`

	CostPercent          decimal.Decimal `json:"costPercent"`
	CostPerOrder         decimal.Decimal `json:"costPerOrder"`
	AvgOrderValue        decimal.Decimal `json:"avgOrderValue"`
	ClosingRate          decimal.Decimal `json:"closingRate"`
	ClosingRateConfirmed decimal.Decimal `json:"closingRateConfirmed"`
}

// ConvertEntityReport converts a computed report to its JSON shape.
func ConvertEntityReport(rep *entity.Report) *Report {
	if rep == nil {
		return nil
	}
	out := &Report{
		Rows:  make([]ReportRow, 0, len(rep.Rows)),
		Total: convertStaffSummary(rep.Total),
		Daily: make([]DayReport, 0, len(rep.Daily)),
		Pivot: PivotReport{
			Domestic: convertPivotRows(rep.Pivot.Domestic),
			Overseas: convertPivotRows(rep.Pivot.Overseas),
			Summary:  convertPivotRows(rep.Pivot.Summary),
		},
	}
	for _, r := range rep.Rows {
		out.Rows = append(out.Rows, convertStaffSummary(r))
	}
	for _, d := range rep.Daily {
		day := DayReport{
			Date:  report.DayKey(d.Date),
			Rows:  make([]ReportRow, 0, len(d.Rows)),
			Total: convertStaffSummary(d.Total),
		}
		for _, r := range d.Rows {
			day.Rows = append(day.Rows, convertStaffSummary(r))
		}
		out.Daily = append(out.Daily, day)
	}
	return out
}

func convertStaffSummary(s entity.StaffSummary) ReportRow {
	row := ReportRow{
		Team:      s.Team,
		StaffName: s.StaffName,

		MessageCount:        s.MessageCount,
		ClaimedOrders:       s.ClaimedOrders,
		ClaimedRevenue:      s.ClaimedRevenue,
		ConfirmedOrders:     s.ConfirmedOrders,
		ConfirmedRevenue:    s.ConfirmedRevenue,
		CancelledOrders:     s.CancelledOrders,
		CancelledRevenue:    s.CancelledRevenue,
		AdSpend:             s.AdSpend,
		PostShippingRevenue: s.PostShippingRevenue,
		KPITarget:           s.KPITarget,

		ClosingRate:                s.ClosingRate,
		ClosingRateConfirmed:       s.ClosingRateConfirmed,
		CostPerMessage:             s.CostPerMessage,
		CostPerOrder:               s.CostPerOrder,
		CostToRevenue:              s.CostToRevenue,
		AvgOrderValue:              s.AvgOrderValue,
		CostToRevenueAfterShipping: s.CostToRevenueAfterShipping,
		KPIAttainment:              s.KPIAttainment,
	}
	if s.Date != nil {
		row.Date = report.DayKey(*s.Date)
	}
	return row
}

func convertPivotRows(rows []entity.PivotRow) []PivotRow {
	if len(rows) == 0 {
		return nil
	}
	out := make([]PivotRow, len(rows))
	for i, r := range rows {
		out[i] = PivotRow{
			Product:    r.Product,
			Market:     r.Market,
			IsSubtotal: r.IsSubtotal,

			MessageCount:        r.MessageCount,
			ClaimedOrders:       r.ClaimedOrders,
			ClaimedRevenue:      r.ClaimedRevenue,
			CancelledOrders:     r.CancelledOrders,
			CancelledRevenue:    r.CancelledRevenue,
			PostShippingRevenue: r.PostShippingRevenue,
			ConfirmedOrders:     r.ConfirmedOrders,
			ConfirmedRevenue:    r.ConfirmedRevenue,
			AdSpend:             r.AdSpend,

			CostPercent:          r.CostPercent,
			CostPerOrder:         r.CostPerOrder,
			AvgOrderValue:        r.AvgOrderValue,
			ClosingRate:          r.ClosingRate,
			ClosingRateConfirmed: r.ClosingRateConfirmed,
		}
	}
	return out
}
