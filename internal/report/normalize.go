package report

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	wsRe       = regexp.MustCompile(`\s+`)
	isoFirstRe = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})`)
	dayFirstRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
)

// NormalizeKey is the one normalization used by every matcher in the engine:
// trimmed, lowercased, internal whitespace collapsed to single spaces.
// Identity and ledger lookups must agree on this or cross-source matching
// silently diverges.
func NormalizeKey(s string) string {
	return wsRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// fallback layouts tried after the two explicit rules. All are interpreted
// by components only, never through a location-sensitive parse.
var fallbackLayouts = []string{
	"2006.01.02",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate turns a raw operator-typed date into a calendar day.
//
// Rule order: an ISO-like prefix (4-digit year, dash) wins; then a strict
// day-first DD/MM/YYYY whose components must survive a round trip (rejects
// 31/04/2024 and the like); then a short list of fallback layouts. Anything
// else reports false. The result is always midnight UTC so that day-keyed
// grouping is stable regardless of server timezone.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if m := isoFirstRe.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC), true
	}

	if m := dayFirstRe.FindStringSubmatch(s); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes overflow (Apr 31 -> May 1); a changed
		// component means the typed date never existed.
		if t.Year() == y && t.Month() == time.Month(mo) && t.Day() == d {
			return t, true
		}
		return time.Time{}, false
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// DayKey formats a normalized date as the canonical per-day bucket key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
