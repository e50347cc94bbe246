package git

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rohankatakam/gitclock/internal/models"
	"github.com/rohankatakam/gitclock/internal/temporal"
)

func TestFilterCommitsMerges(t *testing.T) {
	commits := []models.Commit{
		{SHA: "1", Summary: "Merge branch 'feature'"},
		{SHA: "2", Summary: "merge branch lowercase"},
		{SHA: "3", Summary: "Merged things"},
		{SHA: "4", Summary: "Fix parser"},
	}

	assert.Equal(t, []string{"2", "3", "4"}, shas(FilterCommits(commits, temporal.Window{}, false)))
	assert.Equal(t, []string{"1", "2", "3", "4"}, shas(FilterCommits(commits, temporal.Window{}, true)))
}

func TestFilterCommitsWindow(t *testing.T) {
	since := time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2022, time.June, 3, 0, 0, 0, 0, time.UTC)
	at := func(sha string, ts time.Time) models.Commit {
		return models.Commit{SHA: sha, Timestamp: ts, Summary: "work"}
	}

	commits := []models.Commit{
		at("before", since.Add(-time.Second)),
		at("at-since", since),
		at("middle", since.Add(24*time.Hour)),
		at("at-until", until),
		at("after", until.Add(time.Second)),
	}

	got := FilterCommits(commits, temporal.Window{Since: since, Until: until}, false)
	assert.Equal(t, []string{"at-since", "middle", "at-until"}, shas(got))

	got = FilterCommits(commits, temporal.Window{Since: since}, false)
	assert.Equal(t, []string{"at-since", "middle", "at-until", "after"}, shas(got))
}

func TestFilterCommitsComparesInstantsAcrossZones(t *testing.T) {
	since := time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)
	// 2022-06-01 01:30 in UTC+2 is 2022-05-31 23:30 UTC
	zone := time.FixedZone("UTC+2", 2*60*60)
	commits := []models.Commit{{SHA: "x", Timestamp: time.Date(2022, time.June, 1, 1, 30, 0, 0, zone)}}

	assert.Empty(t, FilterCommits(commits, temporal.Window{Since: since}, false))
}
