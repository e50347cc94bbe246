package git

import (
	"github.com/rohankatakam/gitclock/internal/models"
	"github.com/rohankatakam/gitclock/internal/temporal"
)

// FilterCommits drops commits outside the window and, unless includeMerges is
// set, commits whose summary starts with "Merge ". Order is preserved.
func FilterCommits(commits []models.Commit, window temporal.Window, includeMerges bool) []models.Commit {
	filtered := make([]models.Commit, 0, len(commits))
	for _, commit := range commits {
		if !window.Contains(commit.Timestamp) {
			continue
		}
		if !includeMerges && commit.IsMerge() {
			continue
		}
		filtered = append(filtered, commit)
	}
	return filtered
}
