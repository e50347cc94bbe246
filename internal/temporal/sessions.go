package temporal

import (
	"sort"
	"time"

	"github.com/rohankatakam/gitclock/internal/models"
)

// EstimateOptions configures the session gap heuristic
type EstimateOptions struct {
	// Gaps shorter than this are counted as continuous work
	MaxCommitDiff time.Duration
	// Credited instead of any gap that reaches MaxCommitDiff
	FirstCommitAddition time.Duration
	// Secondary email -> primary email
	EmailAliases map[string]string
}

// CanonicalEmail applies the alias table to an author email
func CanonicalEmail(email string, aliases map[string]string) string {
	if primary, ok := aliases[email]; ok {
		return primary
	}
	return email
}

// EstimateAuthorTimes groups commits by canonical email and estimates the
// working time of each group. Commits without an email share one bucket that
// is reported first under the name of its first collected commit. The other
// groups follow in order of first appearance. The result is not ranked.
func EstimateAuthorTimes(commits []models.Commit, opts EstimateOptions) []models.AuthorTimeEstimate {
	var noEmail []models.Commit
	byEmail := make(map[string][]models.Commit)
	var order []string

	for _, commit := range commits {
		if commit.AuthorEmail == "" {
			noEmail = append(noEmail, commit)
			continue
		}

		email := CanonicalEmail(commit.AuthorEmail, opts.EmailAliases)
		if _, exists := byEmail[email]; !exists {
			order = append(order, email)
		}
		byEmail[email] = append(byEmail[email], commit)
	}

	result := make([]models.AuthorTimeEstimate, 0, len(order)+1)
	if len(noEmail) > 0 {
		result = append(result, estimateAuthorTime(noEmail, "", opts))
	}
	for _, email := range order {
		result = append(result, estimateAuthorTime(byEmail[email], email, opts))
	}

	return result
}

// estimateAuthorTime sums the gaps between consecutive commits of one identity.
// The display name comes from the first commit in collected order.
func estimateAuthorTime(commits []models.Commit, email string, opts EstimateOptions) models.AuthorTimeEstimate {
	authorName := commits[0].AuthorName

	sorted := make([]models.Commit, len(commits))
	copy(sorted, commits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var total time.Duration
	for i := 0; i < len(sorted)-1; i++ {
		diff := sorted[i+1].Timestamp.Sub(sorted[i].Timestamp)
		if diff < opts.MaxCommitDiff {
			total += diff
		} else {
			total += opts.FirstCommitAddition
		}
	}

	return models.AuthorTimeEstimate{
		AuthorName:  authorName,
		Email:       email,
		Duration:    total,
		CommitCount: len(sorted),
	}
}
