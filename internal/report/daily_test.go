package report

import (
	"testing"
	"time"

	"github.com/avelora/salesboard/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onDay(a entity.Activity, d time.Time) entity.Activity {
	a.Date = &d
	return a
}

func TestDailyBreakdownOrderedDescending(t *testing.T) {
	d1 := day(2024, 5, 1)
	d2 := day(2024, 5, 3)
	records := []entity.Activity{
		onDay(activity("A", "T1", 10, 1, 0), d1),
		onDay(activity("A", "T1", 20, 2, 0), d2),
	}

	days := DailyBreakdown(records, AggregateFilter{})
	require.Len(t, days, 2)
	assert.Equal(t, d2, days[0].Date)
	assert.Equal(t, d1, days[1].Date)
	assert.Equal(t, 20, days[0].Total.MessageCount)
}

func TestDailyBreakdownSkipsUndatedButFlatKeepsThem(t *testing.T) {
	records := []entity.Activity{
		onDay(activity("A", "T1", 10, 1, 0), day(2024, 5, 1)),
		activity("B", "T1", 99, 9, 0), // unparseable entry date upstream
	}

	days := DailyBreakdown(records, AggregateFilter{})
	require.Len(t, days, 1)
	assert.Equal(t, 10, days[0].Total.MessageCount)

	_, flatTotal := Aggregate(records, AggregateFilter{})
	assert.Equal(t, 109, flatTotal.MessageCount)
}

func TestDailyBreakdownOmitsEmptyDays(t *testing.T) {
	records := []entity.Activity{
		onDay(activity("A", "T1", 10, 1, 0), day(2024, 5, 1)),
		onDay(activity("A", "T1", 10, 1, 0), day(2024, 5, 7)),
	}

	days := DailyBreakdown(records, AggregateFilter{})
	assert.Len(t, days, 2) // nothing for May 2..6
}

// Summing the per-day totals must reproduce the flat grand total when every
// record carries a date in range.
func TestDailyTotalsAddUpToFlatTotal(t *testing.T) {
	records := []entity.Activity{
		onDay(activity("A", "T1", 10, 3, 100), day(2024, 5, 1)),
		onDay(activity("B", "T1", 20, 4, 200), day(2024, 5, 1)),
		onDay(activity("A", "T1", 30, 5, 300), day(2024, 5, 2)),
	}

	days := DailyBreakdown(records, AggregateFilter{})
	_, flatTotal := Aggregate(records, AggregateFilter{})

	sumOrders := 0
	for _, d := range days {
		sumOrders += d.Total.ClaimedOrders
	}
	assert.Equal(t, flatTotal.ClaimedOrders, sumOrders)
}

func TestDailyRowsCarryTheirDate(t *testing.T) {
	d := day(2024, 5, 1)
	days := DailyBreakdown([]entity.Activity{onDay(activity("A", "T1", 1, 1, 0), d)}, AggregateFilter{})
	require.Len(t, days, 1)
	require.Len(t, days[0].Rows, 1)
	require.NotNil(t, days[0].Rows[0].Date)
	assert.Equal(t, d, *days[0].Rows[0].Date)
}
