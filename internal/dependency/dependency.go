package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/avelora/salesboard/internal/entity"
	"github.com/jmoiron/sqlx"
)

//go:generate mockery --with-expecter --case underscore --all --output=./mocks
type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	// Activity is the primary activity table. The engine only reads it;
	// the insert path exists for ingestion and tests.
	Activity interface {
		// GetActivityPaged returns one page of activity rows whose entry
		// falls inside [from, to), ordered by id for stable pagination.
		GetActivityPaged(ctx context.Context, from, to time.Time, limit, offset int) ([]entity.ActivityRow, error)
		// InsertActivityRows bulk-inserts raw activity rows.
		InsertActivityRows(ctx context.Context, rows []entity.ActivityRow) error
	}

	// Ledger is the independent order ledger written by fulfillment.
	Ledger interface {
		// GetLedgerPaged returns one page of ledger entries sold inside
		// [from, to), ordered by id.
		GetLedgerPaged(ctx context.Context, from, to time.Time, limit, offset int) ([]entity.LedgerEntry, error)
		// InsertLedgerEntries bulk-inserts confirmed orders.
		InsertLedgerEntries(ctx context.Context, entries []entity.LedgerEntry) error
	}

	// Directory covers both independent staff directories. Reads are bulk,
	// filtered by the identities actually present in a record set.
	Directory interface {
		// GetStaffDirectory returns staff-directory rows whose name or email
		// matches one of the given values; both slices empty returns nothing.
		GetStaffDirectory(ctx context.Context, names, emails []string) ([]entity.IdentityRecord, error)
		// GetCrmDirectory does the same against the CRM-sourced directory.
		GetCrmDirectory(ctx context.Context, names, emails []string) ([]entity.IdentityRecord, error)
		// UpsertStaffDirectory replaces or inserts staff-directory rows.
		UpsertStaffDirectory(ctx context.Context, recs []entity.IdentityRecord) error
		// UpsertCrmDirectory replaces or inserts CRM-directory rows.
		UpsertCrmDirectory(ctx context.Context, recs []entity.IdentityRecord) error
	}

	Repository interface {
		Activity() Activity
		Ledger() Ledger
		Directory() Directory
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		Ping(ctx context.Context) error
		IsErrUniqueViolation(err error) bool
		IsErrorRepeat(err error) bool
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		NamedQuery(query string, arg interface{}) (*sqlx.Rows, error)
		PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
		PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
