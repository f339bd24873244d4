package report

import (
	"sort"

	"github.com/avelora/salesboard/internal/entity"
)

// DailyBreakdown re-runs the aggregation independently for every calendar
// day, newest day first. Records without a normalized date are excluded here,
// the day being structurally required, but still count in the flat report.
// Days with no qualifying records are simply absent; there is no zero
// padding. Each day's total is computed from that day's summed numerators,
// exactly like the flat grand total.
func DailyBreakdown(records []entity.Activity, f AggregateFilter) []entity.DaySummary {
	buckets := make(map[string][]entity.Activity)
	for _, a := range records {
		if a.Date == nil {
			continue
		}
		key := DayKey(*a.Date)
		buckets[key] = append(buckets[key], a)
	}

	days := make([]entity.DaySummary, 0, len(buckets))
	for _, recs := range buckets {
		rows, total := Aggregate(recs, f)
		if len(rows) == 0 {
			continue
		}
		day := *recs[0].Date
		for i := range rows {
			d := day
			rows[i].Date = &d
		}
		days = append(days, entity.DaySummary{Date: day, Rows: rows, Total: total})
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}
