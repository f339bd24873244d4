package report

import (
	"testing"

	"github.com/avelora/salesboard/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRow(staff, email string) entity.ActivityRow {
	return entity.ActivityRow{StaffName: staff, StaffEmail: email}
}

func TestVisibilityOwnRowsOnly(t *testing.T) {
	f := NewVisibilityFilter(nil)
	rows := []entity.ActivityRow{
		rawRow("An", "an@avelora.io"),
		rawRow("Binh", "binh@avelora.io"),
	}

	got := f.Apply(rows, entity.Requester{Name: "An", Email: "an@avelora.io", Role: "operator"})
	require.Len(t, got, 1)
	assert.Equal(t, "An", got[0].StaffName)
}

func TestVisibilityMatchesByEmailToo(t *testing.T) {
	f := NewVisibilityFilter(nil)
	rows := []entity.ActivityRow{
		rawRow("A. Nguyen", "an@avelora.io"), // display name drifted
		rawRow("Binh", "binh@avelora.io"),
	}

	got := f.Apply(rows, entity.Requester{Name: "An Nguyen", Email: "AN@avelora.io", Role: "operator"})
	require.Len(t, got, 1)
	assert.Equal(t, "A. Nguyen", got[0].StaffName)
}

func TestVisibilityDelegatedNames(t *testing.T) {
	f := NewVisibilityFilter(nil)
	rows := []entity.ActivityRow{
		rawRow("An", "an@avelora.io"),
		rawRow("Binh", "binh@avelora.io"),
		rawRow("Chi", "chi@avelora.io"),
	}

	got := f.Apply(rows, entity.Requester{
		Name:           "An",
		Email:          "an@avelora.io",
		Role:           "operator",
		DelegatedNames: []string{"binh"},
	})
	require.Len(t, got, 2)
}

func TestVisibilityElevatedRoleSeesEverything(t *testing.T) {
	f := NewVisibilityFilter(nil)
	rows := []entity.ActivityRow{
		rawRow("An", "an@avelora.io"),
		rawRow("Binh", "binh@avelora.io"),
	}

	got := f.Apply(rows, entity.Requester{Name: "Someone Else", Email: "x@avelora.io", Role: "Admin"})
	assert.Len(t, got, 2)
}

func TestVisibilityCustomElevatedRoles(t *testing.T) {
	f := NewVisibilityFilter([]string{"auditor"})
	rows := []entity.ActivityRow{rawRow("An", "an@avelora.io")}

	got := f.Apply(rows, entity.Requester{Name: "x", Email: "x@x", Role: "admin"})
	assert.Empty(t, got) // admin is not elevated once the set is overridden

	got = f.Apply(rows, entity.Requester{Name: "x", Email: "x@x", Role: "auditor"})
	assert.Len(t, got, 1)
}
