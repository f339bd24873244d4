package store

import (
	"context"
	"testing"
	"time"

	"github.com/avelora/salesboard/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedger_InsertAndPage(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ls := db.Ledger()

	ctx := context.Background()
	soldAt := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	err := ls.InsertLedgerEntries(ctx, []entity.LedgerEntry{
		{StaffName: "An", SoldAt: soldAt, Market: "hanoi", Amount: decimal.NewFromInt(700)},
		{StaffName: "An", SoldAt: soldAt, Market: "hanoi", Amount: decimal.NewFromInt(300)},
		{StaffName: "Binh", SoldAt: soldAt.Add(24 * time.Hour), Market: "saigon", Amount: decimal.NewFromInt(100)},
	})
	assert.NoError(t, err)

	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	page, err := ls.GetLedgerPaged(ctx, from, to, 2, 0)
	assert.NoError(t, err)
	assert.Len(t, page, 2)
	assert.True(t, page[0].Amount.Equal(decimal.NewFromInt(700)))

	page, err = ls.GetLedgerPaged(ctx, from, to, 2, 2)
	assert.NoError(t, err)
	assert.Len(t, page, 1)
	assert.Equal(t, "Binh", page[0].StaffName)

	// window ending before the third sale excludes it
	page, err = ls.GetLedgerPaged(ctx, from, soldAt.Add(time.Hour), 10, 0)
	assert.NoError(t, err)
	assert.Len(t, page, 2)
}
