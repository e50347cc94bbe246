package temporal

import (
	"sort"

	"github.com/rohankatakam/gitclock/internal/models"
)

// RankEstimates orders estimates by duration, then commit count, both
// descending. Exact ties keep their input order.
func RankEstimates(estimates []models.AuthorTimeEstimate) {
	sort.SliceStable(estimates, func(i, j int) bool {
		if estimates[i].Duration != estimates[j].Duration {
			return estimates[i].Duration > estimates[j].Duration
		}
		return estimates[i].CommitCount > estimates[j].CommitCount
	})
}

// Totals sums hours and commit counts across all estimates
func Totals(estimates []models.AuthorTimeEstimate) (hours float32, commits int) {
	for _, e := range estimates {
		hours += e.Hours()
		commits += e.CommitCount
	}
	return hours, commits
}
