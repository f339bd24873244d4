package report

import "github.com/avelora/salesboard/internal/entity"

// TeamIndex resolves a staff member to a team across both directories. It is
// built once per report run; lookups are plain map hits.
//
// Email matches outrank name matches because emails are unique per person
// while display names collide across teams. Within one index, the first
// directory entry carrying a non-empty team wins; entries with a blank team
// never displace one that has a team.
type TeamIndex struct {
	byEmail map[string]string
	byName  map[string]string
}

// NewTeamIndex builds the lookup chain from the union of the given
// directories, in the order provided.
func NewTeamIndex(directories ...[]entity.IdentityRecord) *TeamIndex {
	ix := &TeamIndex{
		byEmail: make(map[string]string),
		byName:  make(map[string]string),
	}
	for _, dir := range directories {
		for _, rec := range dir {
			ix.add(ix.byEmail, rec.Email, rec.Team)
			ix.add(ix.byName, rec.Name, rec.Team)
		}
	}
	return ix
}

func (ix *TeamIndex) add(m map[string]string, key, team string) {
	k := NormalizeKey(key)
	if k == "" {
		return
	}
	if existing, ok := m[k]; ok && existing != "" {
		return
	}
	m[k] = team
}

// Resolve returns the team for a name/email pair. A missing match is a
// normal outcome, not an error: the record keeps an empty team and groups
// under the unassigned bucket downstream.
func (ix *TeamIndex) Resolve(name, email string) (string, bool) {
	if team, ok := ix.byEmail[NormalizeKey(email)]; ok && team != "" {
		return team, true
	}
	if team, ok := ix.byName[NormalizeKey(name)]; ok && team != "" {
		return team, true
	}
	return "", false
}
