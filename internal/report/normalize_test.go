package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "foo bar", NormalizeKey("  Foo   BAR "))
	assert.Equal(t, "", NormalizeKey("   "))
	assert.Equal(t, "a b c", NormalizeKey("a\tb\n c"))
}

func TestParseDateISOFirst(t *testing.T) {
	want := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{
		"2024-04-30",
		"2024-4-30",
		"2024-04-30T15:04:05Z",
		"2024-04-30 15:04:05",
	} {
		got, ok := ParseDate(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestParseDateDayFirst(t *testing.T) {
	want := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

	got, ok := ParseDate("30/04/2024")
	assert.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = ParseDate("30-4-2024")
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

// Both representations of the same calendar day must normalize identically,
// otherwise day buckets split by input format.
func TestParseDateRoundTrip(t *testing.T) {
	iso, ok1 := ParseDate("2024-02-29")
	dayFirst, ok2 := ParseDate("29/02/2024")
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, iso, dayFirst)
}

func TestParseDateRejectsImpossibleDayFirst(t *testing.T) {
	// April has 30 days; time.Date would roll this into May 1.
	_, ok := ParseDate("31/04/2024")
	assert.False(t, ok)

	_, ok = ParseDate("29/02/2023")
	assert.False(t, ok)
}

func TestParseDateFallbackAndGarbage(t *testing.T) {
	got, ok := ParseDate("2024.04.30")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), got)

	for _, raw := range []string{"", "   ", "soon", "13th of never", "99/99/9999"} {
		_, ok := ParseDate(raw)
		assert.False(t, ok, raw)
	}
}
