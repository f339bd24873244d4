package report

import "github.com/avelora/salesboard/internal/entity"

// Roles exempt from row-level visibility filtering unless overridden by
// configuration.
var defaultElevatedRoles = []string{"admin", "director", "manager"}

// VisibilityFilter restricts a fetched record set to rows the requester owns
// or was delegated. It runs before enrichment so that directory and ledger
// work is never spent on rows the caller cannot see.
type VisibilityFilter struct {
	elevated map[string]struct{}
}

// NewVisibilityFilter builds a filter with the given elevated role set; an
// empty set falls back to the defaults.
func NewVisibilityFilter(elevatedRoles []string) *VisibilityFilter {
	if len(elevatedRoles) == 0 {
		elevatedRoles = defaultElevatedRoles
	}
	f := &VisibilityFilter{elevated: make(map[string]struct{}, len(elevatedRoles))}
	for _, r := range elevatedRoles {
		f.elevated[NormalizeKey(r)] = struct{}{}
	}
	return f
}

// Apply returns the subset of rows visible to the requester. Elevated roles
// pass the whole set through unchanged.
func (f *VisibilityFilter) Apply(rows []entity.ActivityRow, req entity.Requester) []entity.ActivityRow {
	if _, ok := f.elevated[NormalizeKey(req.Role)]; ok {
		return rows
	}

	names := make(map[string]struct{}, len(req.DelegatedNames)+1)
	if k := NormalizeKey(req.Name); k != "" {
		names[k] = struct{}{}
	}
	for _, n := range req.DelegatedNames {
		if k := NormalizeKey(n); k != "" {
			names[k] = struct{}{}
		}
	}
	email := NormalizeKey(req.Email)

	out := make([]entity.ActivityRow, 0, len(rows))
	for _, row := range rows {
		if _, ok := names[NormalizeKey(row.StaffName)]; ok {
			out = append(out, row)
			continue
		}
		if email != "" && NormalizeKey(row.StaffEmail) == email {
			out = append(out, row)
		}
	}
	return out
}
