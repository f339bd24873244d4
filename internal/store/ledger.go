package store

import (
	"context"
	"fmt"
	"time"

	"github.com/avelora/salesboard/internal/dependency"
	"github.com/avelora/salesboard/internal/entity"
)

type ledgerStore struct {
	*MYSQLStore
}

// Ledger returns an object implementing Ledger interface
func (ms *MYSQLStore) Ledger() dependency.Ledger {
	return &ledgerStore{
		MYSQLStore: ms,
	}
}

// GetLedgerPaged returns one page of confirmed orders sold inside [from, to),
// ordered by id.
func (ms *MYSQLStore) GetLedgerPaged(ctx context.Context, from, to time.Time, limit, offset int) ([]entity.LedgerEntry, error) {
	query := `
	SELECT id, staff_name, sold_at, market, amount
	FROM order_ledger
	WHERE sold_at >= :from AND sold_at < :to
	ORDER BY id
	LIMIT :limit OFFSET :offset`

	entries, err := QueryListNamed[entity.LedgerEntry](ctx, ms.DB(), query, map[string]any{
		"from":   from,
		"to":     to,
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	return entries, nil
}

// InsertLedgerEntries bulk-inserts confirmed orders.
func (ms *MYSQLStore) InsertLedgerEntries(ctx context.Context, entries []entity.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	maps := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		maps = append(maps, map[string]any{
			"staff_name": e.StaffName,
			"sold_at":    e.SoldAt,
			"market":     e.Market,
			"amount":     e.Amount,
		})
	}

	if err := BulkInsert(ctx, ms.DB(), "order_ledger", maps); err != nil {
		return fmt.Errorf("failed to insert ledger entries: %w", err)
	}
	return nil
}
