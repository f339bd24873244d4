package store

import (
	"context"
	"fmt"

	"github.com/avelora/salesboard/internal/dependency"
	"github.com/avelora/salesboard/internal/entity"
)

type directoryStore struct {
	*MYSQLStore
}

// Directory returns an object implementing Directory interface
func (ms *MYSQLStore) Directory() dependency.Directory {
	return &directoryStore{
		MYSQLStore: ms,
	}
}

func (ms *MYSQLStore) GetStaffDirectory(ctx context.Context, names, emails []string) ([]entity.IdentityRecord, error) {
	return ms.getDirectory(ctx, "staff_directory", names, emails)
}

func (ms *MYSQLStore) GetCrmDirectory(ctx context.Context, names, emails []string) ([]entity.IdentityRecord, error) {
	return ms.getDirectory(ctx, "crm_directory", names, emails)
}

// getDirectory reads the rows of one directory table matching any of the
// given names or emails. Matching is case-insensitive; both directory tables
// use a case-insensitive collation, so the IN lists need no lowering here.
func (ms *MYSQLStore) getDirectory(ctx context.Context, table string, names, emails []string) ([]entity.IdentityRecord, error) {
	if len(names) == 0 && len(emails) == 0 {
		return nil, nil
	}

	var (
		query  string
		params = map[string]any{}
	)
	switch {
	case len(names) > 0 && len(emails) > 0:
		query = `SELECT name, email, team FROM ` + table + ` WHERE name IN (:names) OR email IN (:emails)`
		params["names"] = names
		params["emails"] = emails
	case len(names) > 0:
		query = `SELECT name, email, team FROM ` + table + ` WHERE name IN (:names)`
		params["names"] = names
	default:
		query = `SELECT name, email, team FROM ` + table + ` WHERE email IN (:emails)`
		params["emails"] = emails
	}

	recs, err := QueryListNamed[entity.IdentityRecord](ctx, ms.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s records: %w", table, err)
	}
	return recs, nil
}

func (ms *MYSQLStore) UpsertStaffDirectory(ctx context.Context, recs []entity.IdentityRecord) error {
	return ms.upsertDirectory(ctx, "staff_directory", recs)
}

func (ms *MYSQLStore) UpsertCrmDirectory(ctx context.Context, recs []entity.IdentityRecord) error {
	return ms.upsertDirectory(ctx, "crm_directory", recs)
}

func (ms *MYSQLStore) upsertDirectory(ctx context.Context, table string, recs []entity.IdentityRecord) error {
	if len(recs) == 0 {
		return nil
	}

	return ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		query := `
		INSERT INTO ` + table + ` (name, email, team)
		VALUES (:name, :email, :team)
		ON DUPLICATE KEY UPDATE name = VALUES(name), team = VALUES(team)`
		for _, r := range recs {
			err := ExecNamed(ctx, rep.DB(), query, map[string]any{
				"name":  r.Name,
				"email": r.Email,
				"team":  r.Team,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert %s record for %s: %w", table, r.Email, err)
			}
		}
		return nil
	})
}
