package report

import (
	"testing"

	"github.com/avelora/salesboard/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sale(product, market string, messages, orders int, spend, revenue int64) entity.Activity {
	return entity.Activity{
		StaffName:      "A",
		Team:           "T1",
		Product:        product,
		Market:         market,
		MessageCount:   messages,
		ClaimedOrders:  orders,
		AdSpend:        decimal.NewFromInt(spend),
		ClaimedRevenue: decimal.NewFromInt(revenue),
	}
}

func TestPivotGrandTotalPrepended(t *testing.T) {
	b := NewPivotBuilder(nil)
	rep := b.Build([]entity.Activity{
		sale("serum", "hanoi", 100, 10, 500, 2000),
		sale("cream", "hanoi", 50, 5, 100, 1000),
	}, PivotFilter{})

	require.NotEmpty(t, rep.Domestic)
	grand := rep.Domestic[0]
	assert.Equal(t, TotalLabel, grand.Product)
	assert.False(t, grand.IsSubtotal)
	assert.Equal(t, 15, grand.ClaimedOrders)
	assert.True(t, grand.AdSpend.Equal(decimal.NewFromInt(600)))
	// 600 / 3000 * 100
	assert.True(t, grand.CostPercent.Equal(decimal.NewFromInt(20)), "got %s", grand.CostPercent)
}

func TestPivotSubtotalOnlyForMultiMarketProducts(t *testing.T) {
	b := NewPivotBuilder(nil)
	rep := b.Build([]entity.Activity{
		sale("serum", "hanoi", 10, 1, 0, 0),
		sale("serum", "saigon", 10, 1, 0, 0),
		sale("cream", "hanoi", 10, 1, 0, 0),
	}, PivotFilter{})

	var subtotals []entity.PivotRow
	for _, row := range rep.Domestic {
		if row.IsSubtotal {
			subtotals = append(subtotals, row)
		}
	}
	require.Len(t, subtotals, 1)
	assert.Equal(t, "serum", subtotals[0].Product)
	assert.Equal(t, 2, subtotals[0].ClaimedOrders)
}

func TestPivotRowsGroupedAlphabetically(t *testing.T) {
	b := NewPivotBuilder(nil)
	rep := b.Build([]entity.Activity{
		sale("serum", "saigon", 1, 0, 0, 0),
		sale("serum", "hanoi", 1, 0, 0, 0),
		sale("cream", "hanoi", 1, 0, 0, 0),
	}, PivotFilter{})

	// total, cream/hanoi, serum/hanoi, serum/saigon, serum subtotal
	require.Len(t, rep.Domestic, 5)
	assert.Equal(t, "cream", rep.Domestic[1].Product)
	assert.Equal(t, "hanoi", rep.Domestic[2].Market)
	assert.Equal(t, "saigon", rep.Domestic[3].Market)
	assert.True(t, rep.Domestic[4].IsSubtotal)
}

func TestPivotGeographyPartition(t *testing.T) {
	b := NewPivotBuilder(nil)
	rep := b.Build([]entity.Activity{
		sale("serum", "hanoi", 10, 1, 0, 0),
		sale("serum", "Thailand - North", 10, 2, 0, 0),
		sale("serum", "SINGAPORE", 10, 3, 0, 0),
	}, PivotFilter{})

	require.NotEmpty(t, rep.Domestic)
	require.NotEmpty(t, rep.Overseas)
	assert.Equal(t, 1, rep.Domestic[0].ClaimedOrders)
	assert.Equal(t, 5, rep.Overseas[0].ClaimedOrders)

	// The summary table is built from the whole set and ignores market.
	require.Len(t, rep.Summary, 2)
	assert.Equal(t, TotalLabel, rep.Summary[0].Product)
	assert.Equal(t, 6, rep.Summary[0].ClaimedOrders)
	assert.Equal(t, "serum", rep.Summary[1].Product)
	assert.Equal(t, "", rep.Summary[1].Market)
	assert.False(t, rep.Summary[1].IsSubtotal)
}

func TestPivotCustomOverseasMarkets(t *testing.T) {
	b := NewPivotBuilder([]string{"mars"})
	rep := b.Build([]entity.Activity{
		sale("serum", "Mars Colony", 1, 1, 0, 0),
		sale("serum", "thailand", 1, 1, 0, 0),
	}, PivotFilter{})

	assert.Equal(t, 1, rep.Overseas[0].ClaimedOrders)
	assert.Equal(t, 1, rep.Domestic[0].ClaimedOrders)
}

func TestPivotSingleValueFilters(t *testing.T) {
	b := NewPivotBuilder(nil)
	rep := b.Build([]entity.Activity{
		sale("serum", "hanoi", 10, 1, 0, 0),
		sale("cream", "hanoi", 10, 2, 0, 0),
	}, PivotFilter{Product: "serum"})

	require.Len(t, rep.Domestic, 2)
	assert.Equal(t, 1, rep.Domestic[0].ClaimedOrders)
	assert.Equal(t, "serum", rep.Domestic[1].Product)
}

func TestPivotEmptyInput(t *testing.T) {
	b := NewPivotBuilder(nil)
	rep := b.Build(nil, PivotFilter{})
	assert.Empty(t, rep.Domestic)
	assert.Empty(t, rep.Overseas)
	assert.Empty(t, rep.Summary)
}
