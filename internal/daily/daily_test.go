package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyIsUTC(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	// 00:30 in Paris is still the previous day in UTC.
	ts := time.Date(2026, 3, 2, 0, 30, 0, 0, paris)
	assert.Equal(t, "2026-03-01", DateKey(ts))
}

func TestSeedIsStablePerDay(t *testing.T) {
	morning := time.Date(2026, 10, 15, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 10, 15, 22, 0, 0, 0, time.UTC)
	tomorrow := morning.Add(24 * time.Hour)

	assert.Equal(t, Seed(morning, "s"), Seed(evening, "s"))
	assert.NotEqual(t, Seed(morning, "s"), Seed(tomorrow, "s"))
	assert.NotEqual(t, Seed(morning, "s"), Seed(morning, "other"))
	assert.GreaterOrEqual(t, Seed(morning, "s"), int64(0))
}

func TestPuzzleIndex(t *testing.T) {
	day := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, PuzzleIndex(day, "s", 0))
	assert.Equal(t, 0, PuzzleIndex(day, "s", 1))

	seen := map[int]bool{}
	for i := 0; i < 60; i++ {
		idx := PuzzleIndex(day.AddDate(0, 0, i), "s", 3)
		assert.True(t, idx >= 0 && idx < 3)
		seen[idx] = true
	}
	assert.Len(t, seen, 3, "sixty days should visit every puzzle")
}

func TestCandidates(t *testing.T) {
	got := Candidates([]string{"zeta", "alpha", "zeta", "mid"})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, got)
	assert.Empty(t, Candidates(nil))
}

func TestPickIgnoresOrderAndDuplicates(t *testing.T) {
	day := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		d := day.AddDate(0, 0, i)
		a, ok := Pick(d, "s", []string{"zeta", "alpha"})
		assert.True(t, ok)
		b, _ := Pick(d, "s", []string{"alpha", "zeta", "alpha"})
		assert.Equal(t, a, b, "day %s", DateKey(d))
	}

	_, ok := Pick(day, "s", nil)
	assert.False(t, ok)
}
