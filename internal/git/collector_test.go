package git

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/gitclock/internal/errors"
	"github.com/rohankatakam/gitclock/internal/models"
)

// fakeBackend serves canned references and per-target histories
type fakeBackend struct {
	refs    []models.Reference
	history map[string][]models.Commit
	walked  []string
	walkErr error
}

func (f *fakeBackend) References() ([]models.Reference, error) {
	return f.refs, nil
}

func (f *fakeBackend) Walk(target string) ([]models.Commit, error) {
	f.walked = append(f.walked, target)
	if f.walkErr != nil {
		return nil, f.walkErr
	}
	return f.history[target], nil
}

func commit(sha string, minute int) models.Commit {
	return models.Commit{
		SHA:         sha,
		AuthorName:  "Dev",
		AuthorEmail: "dev@example.com",
		Timestamp:   time.Date(2022, time.June, 1, 9, minute, 0, 0, time.UTC),
		Summary:     "commit " + sha,
	}
}

func shas(commits []models.Commit) []string {
	out := make([]string, 0, len(commits))
	for _, c := range commits {
		out = append(out, c.SHA)
	}
	return out
}

func newFakeBackend() *fakeBackend {
	a, b, c, d := commit("a", 0), commit("b", 1), commit("c", 2), commit("d", 3)
	return &fakeBackend{
		refs: []models.Reference{
			{Name: "refs/heads/main", Target: "c"},
			{Name: "refs/heads/feature", Target: "d"},
			{Name: "refs/remotes/origin/main", Target: "b"},
			{Name: "refs/tags/v1", Target: "a"},
		},
		history: map[string][]models.Commit{
			"b": {a, b},
			"c": {a, b, c},
			"d": {a, b, d},
		},
	}
}

func TestMatchReferences(t *testing.T) {
	refs := newFakeBackend().refs

	tests := []struct {
		name   string
		branch string
		kind   models.BranchKind
		want   []string
	}{
		{"all local", "", models.BranchKindLocal, []string{"refs/heads/main", "refs/heads/feature"}},
		{"all remote", "", models.BranchKindRemote, []string{"refs/remotes/origin/main"}},
		{"named local", "feature", models.BranchKindLocal, []string{"refs/heads/feature"}},
		{"named remote", "origin/main", models.BranchKindRemote, []string{"refs/remotes/origin/main"}},
		{"named remote is not local", "main", models.BranchKindRemote, nil},
		{"missing branch", "nope", models.BranchKindLocal, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := MatchReferences(refs, tt.branch, tt.kind)
			require.NoError(t, err)

			var names []string
			for _, r := range matched {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestCollectCommitsDeduplicatesAcrossReferences(t *testing.T) {
	backend := newFakeBackend()

	commits, err := CollectCommits(backend, "", models.BranchKindLocal)
	require.NoError(t, err)

	assert.Equal(t, []string{"c", "d"}, backend.walked)
	assert.Equal(t, []string{"a", "b", "c", "d"}, shas(commits))
}

func TestCollectCommitsSingleBranch(t *testing.T) {
	backend := newFakeBackend()

	commits, err := CollectCommits(backend, "feature", models.BranchKindLocal)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "d"}, shas(commits))
}

func TestCollectCommitsNoMatch(t *testing.T) {
	commits, err := CollectCommits(newFakeBackend(), "missing", models.BranchKindLocal)
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestCollectCommitsPropagatesWalkError(t *testing.T) {
	backend := newFakeBackend()
	backend.walkErr = errors.RepositoryAccessErrorf(fmt.Errorf("object not found"), "failed to walk history from c")

	_, err := CollectCommits(backend, "", models.BranchKindLocal)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrRepositoryAccess))
}
