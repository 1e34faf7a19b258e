package service

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/multitimer/internal/timers"
)

// FindTimer picks the timer whose label best matches query. A case-insensitive
// substring hit wins outright (first in list order); otherwise the closest label
// by edit distance is returned, unless it differs by more than half its length.
func FindTimer(list []timers.Timer, query string) (timers.Timer, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(list) == 0 {
		return timers.Timer{}, false
	}
	for _, t := range list {
		if strings.Contains(strings.ToLower(t.Label), q) {
			return t, true
		}
	}

	best, bestDist := -1, 0
	for i, t := range list {
		d := levenshtein.ComputeDistance(q, strings.ToLower(t.Label))
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	limit := max(len([]rune(q)), len([]rune(list[best].Label))) / 2
	if bestDist > limit {
		return timers.Timer{}, false
	}
	return list[best], true
}
