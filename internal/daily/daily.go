// internal/daily/daily.go
//
// Daily puzzle selection. Everyone playing on the same UTC day gets the same
// puzzle and the same grid: both are derived from HMAC(salt, YYYY-MM-DD).

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"slices"
	"sort"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func digest(t time.Time, salt, purpose string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(purpose))
	h.Write([]byte{0})
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64
	return binary.BigEndian.Uint64(sum[:8])
}

// Seed returns the grid seed for the day.
func Seed(t time.Time, salt string) int64 {
	return int64(digest(t, salt, "seed") >> 1)
}

// PuzzleIndex returns a deterministic index in [0, n) for the day.
func PuzzleIndex(t time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	return int(digest(t, salt, "puzzle") % uint64(n))
}

// Candidates returns names sorted and without duplicates. Every caller
// picking a daily puzzle indexes this list, so the pick does not depend on
// load order or on where a puzzle came from.
func Candidates(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return slices.Compact(out)
}

// Pick returns the day's puzzle name among names, or false if there is none.
func Pick(t time.Time, salt string, names []string) (string, bool) {
	c := Candidates(names)
	if len(c) == 0 {
		return "", false
	}
	return c[PuzzleIndex(t, salt, len(c))], true
}
