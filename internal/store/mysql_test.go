package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDB(t *testing.T) *MYSQLStore {
	db, err := New(context.Background(), Config{
		// TODO: use test database
		DSN:         "user:pass@(localhost:3306)/salesboard?charset=utf8&parseTime=true",
		Automigrate: true,
	})
	assert.NoError(t, err)

	for _, table := range []string{"activity_log", "order_ledger", "staff_directory", "crm_directory"} {
		_, err = db.db.ExecContext(context.Background(), "DELETE FROM "+table)
		assert.NoError(t, err)
	}

	return db
}
