package report

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/avelora/salesboard/internal/dependency"
	"github.com/avelora/salesboard/internal/entity"
	"golang.org/x/sync/errgroup"
)

const defaultPageSize = 500

// Config tunes the engine. Zero values fall back to built-in defaults.
type Config struct {
	PageSize        int      `mapstructure:"page_size"`
	ElevatedRoles   []string `mapstructure:"elevated_roles"`
	OverseasMarkets []string `mapstructure:"overseas_markets"`
}

// Engine runs reports. It holds no mutable state between runs: every run
// refetches from the backing tables and rebuilds its indexes, so staleness is
// bounded only by the store itself.
type Engine struct {
	repo     dependency.Repository
	vis      *VisibilityFilter
	pivot    *PivotBuilder
	pageSize int
}

// New creates an engine over the given repository.
func New(cfg *Config, repo dependency.Repository) *Engine {
	pageSize := defaultPageSize
	if cfg != nil && cfg.PageSize > 0 {
		pageSize = cfg.PageSize
	}
	var elevated, overseas []string
	if cfg != nil {
		elevated = cfg.ElevatedRoles
		overseas = cfg.OverseasMarkets
	}
	return &Engine{
		repo:     repo,
		vis:      NewVisibilityFilter(elevated),
		pivot:    NewPivotBuilder(overseas),
		pageSize: pageSize,
	}
}

// FetchAllPages drains a paginated read: sequential pages, stop on the first
// short page, no page issued after the context is done. It returns either the
// complete result set or an error. A partially fetched set is never handed
// to a caller, since a partial aggregate is indistinguishable from a valid
// small one.
func FetchAllPages[T any](ctx context.Context, pageSize int, fetch func(ctx context.Context, limit, offset int) ([]T, error)) ([]T, error) {
	var out []T
	for offset := 0; ; offset += pageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := fetch(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < pageSize {
			return out, nil
		}
	}
}

// RunReport executes one full report request: paginated activity fetch,
// visibility filter, concurrent ledger and directory fetches, one enrichment
// pass, then the three consumers over the same immutable enriched slice.
// Any upstream fetch error aborts the whole run.
func (e *Engine) RunReport(ctx context.Context, q entity.ReportQuery) (*entity.Report, error) {
	started := time.Now()

	raw, err := FetchAllPages(ctx, e.pageSize, func(ctx context.Context, limit, offset int) ([]entity.ActivityRow, error) {
		return e.repo.Activity().GetActivityPaged(ctx, q.Period.From, q.Period.To, limit, offset)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch activity: %w", err)
	}

	visible := e.vis.Apply(raw, q.Requester)

	names, emails := identitySets(visible)

	var (
		ledger   []entity.LedgerEntry
		staffDir []entity.IdentityRecord
		crmDir   []entity.IdentityRecord
	)
	// Three different tables, so the fetches may overlap; pagination within
	// each table stays sequential.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ledger, err = FetchAllPages(gctx, e.pageSize, func(ctx context.Context, limit, offset int) ([]entity.LedgerEntry, error) {
			return e.repo.Ledger().GetLedgerPaged(ctx, q.Period.From, q.Period.To, limit, offset)
		})
		if err != nil {
			return fmt.Errorf("fetch ledger: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		staffDir, err = e.repo.Directory().GetStaffDirectory(gctx, names, emails)
		if err != nil {
			return fmt.Errorf("fetch staff directory: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		crmDir, err = e.repo.Directory().GetCrmDirectory(gctx, names, emails)
		if err != nil {
			return fmt.Errorf("fetch crm directory: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	enriched := Enrich(visible, NewTeamIndex(staffDir, crmDir), NewLedgerIndex(ledger))

	filter := AggregateFilter{
		Team:     q.Team,
		Products: q.Products,
		Markets:  q.Markets,
		Shifts:   q.Shifts,
	}

	rows, total := Aggregate(enriched, filter)
	daily := DailyBreakdown(enriched, filter)
	pivot := e.pivot.Build(enriched, PivotFilter{Team: q.Team})

	slog.Default().InfoContext(ctx, "report computed",
		slog.Int("fetched", len(raw)),
		slog.Int("visible", len(visible)),
		slog.Int("rows", len(rows)),
		slog.Int("days", len(daily)),
		slog.Duration("took", time.Since(started)),
	)

	return &entity.Report{
		Rows:  rows,
		Total: total,
		Daily: daily,
		Pivot: pivot,
	}, nil
}

// identitySets collects the distinct raw names and emails of a record set,
// used to narrow the bulk directory reads.
func identitySets(rows []entity.ActivityRow) ([]string, []string) {
	nameSet := make(map[string]struct{}, len(rows))
	emailSet := make(map[string]struct{}, len(rows))
	var names, emails []string
	for _, r := range rows {
		if k := NormalizeKey(r.StaffName); k != "" {
			if _, ok := nameSet[k]; !ok {
				nameSet[k] = struct{}{}
				names = append(names, r.StaffName)
			}
		}
		if k := NormalizeKey(r.StaffEmail); k != "" {
			if _, ok := emailSet[k]; !ok {
				emailSet[k] = struct{}{}
				emails = append(emails, r.StaffEmail)
			}
		}
	}
	return names, emails
}
