// Package vault holds the read-time projections over the entry set:
// the impression tag aggregation and the per-person deck grouping.
// Both are pure functions of the current entries and carry no state,
// so every read reflects deletes and inserts immediately.
package vault

import (
	"math"
	"sort"

	"github.com/wedding-message-vault/internal/models"
)

// Summarize computes the respondent-based percentage breakdown of
// firstImpressions tags. Only entries declaring at least one tag count
// toward the denominator; a tag repeated within one entry counts once,
// but multiple entries under the same name each count separately.
func Summarize(entries []models.Entry) models.Summary {
	counts := make(map[string]int)
	var order []string // first-seen order, used as the tie-breaker
	respondents := 0

	for _, e := range entries {
		if len(e.FirstImpressions) == 0 {
			continue
		}
		respondents++

		seen := make(map[string]bool, len(e.FirstImpressions))
		for _, tag := range e.FirstImpressions {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			if _, ok := counts[tag]; !ok {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	sorted := make([]models.TagCount, 0, len(order))
	for _, label := range order {
		n := counts[label]
		sorted = append(sorted, models.TagCount{
			Label: label,
			Count: n,
			Pct:   int(math.Round(float64(n*100) / float64(respondents))),
		})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	top := sorted
	if len(top) > 3 {
		top = top[:3]
	}

	return models.Summary{
		Respondents: respondents,
		Top:         top,
		Sorted:      sorted,
	}
}
