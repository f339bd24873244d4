package store

import (
	"context"
	"fmt"
	"time"

	"github.com/avelora/salesboard/internal/dependency"
	"github.com/avelora/salesboard/internal/entity"
)

type activityStore struct {
	*MYSQLStore
}

// Activity returns an object implementing Activity interface
func (ms *MYSQLStore) Activity() dependency.Activity {
	return &activityStore{
		MYSQLStore: ms,
	}
}

// GetActivityPaged returns one page of activity rows recorded inside
// [from, to), ordered by id so pages never overlap between calls.
func (ms *MYSQLStore) GetActivityPaged(ctx context.Context, from, to time.Time, limit, offset int) ([]entity.ActivityRow, error) {
	query := `
	SELECT id, staff_name, staff_email, team, entry_date, shift, product, market,
		ad_spend, message_count, claimed_orders, claimed_revenue,
		cancelled_orders, cancelled_revenue, post_shipping_revenue, kpi_target,
		created_at
	FROM activity_log
	WHERE created_at >= :from AND created_at < :to
	ORDER BY id
	LIMIT :limit OFFSET :offset`

	rows, err := QueryListNamed[entity.ActivityRow](ctx, ms.DB(), query, map[string]any{
		"from":   from,
		"to":     to,
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get activity rows: %w", err)
	}
	return rows, nil
}

// InsertActivityRows bulk-inserts raw activity rows as typed by the operator.
// Nothing is normalized on the way in; the report engine owns that.
func (ms *MYSQLStore) InsertActivityRows(ctx context.Context, rows []entity.ActivityRow) error {
	if len(rows) == 0 {
		return nil
	}

	maps := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		maps = append(maps, map[string]any{
			"staff_name":            r.StaffName,
			"staff_email":           r.StaffEmail,
			"team":                  r.Team,
			"entry_date":            r.EntryDate,
			"shift":                 r.Shift,
			"product":               r.Product,
			"market":                r.Market,
			"ad_spend":              r.AdSpend,
			"message_count":         r.MessageCount,
			"claimed_orders":        r.ClaimedOrders,
			"claimed_revenue":       r.ClaimedRevenue,
			"cancelled_orders":      r.CancelledOrders,
			"cancelled_revenue":     r.CancelledRevenue,
			"post_shipping_revenue": r.PostShippingRevenue,
			"kpi_target":            r.KPITarget,
		})
	}

	if err := BulkInsert(ctx, ms.DB(), "activity_log", maps); err != nil {
		return fmt.Errorf("failed to insert activity rows: %w", err)
	}
	return nil
}
