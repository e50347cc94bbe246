package analysis

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/gitclock/internal/config"
	"github.com/rohankatakam/gitclock/internal/errors"
	"github.com/rohankatakam/gitclock/internal/models"
	"github.com/rohankatakam/gitclock/internal/temporal"
	"github.com/rohankatakam/gitclock/internal/testutil"
)

var now = time.Date(2024, time.March, 6, 9, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func defaultSettings(repoPath string) *config.StatsSettings {
	return &config.StatsSettings{
		RepoPath:            repoPath,
		MaxCommitDiff:       120 * time.Minute,
		FirstCommitAddition: 30 * time.Minute,
		Since:               temporal.TimeBound{Kind: temporal.Always},
		Until:               temporal.TimeBound{Kind: temporal.Always},
		BranchKind:          models.BranchKindLocal,
		Format:              config.OutputStdout,
	}
}

func TestRunSingleAuthorSession(t *testing.T) {
	repo := testutil.InitRepo(t)
	day := time.Date(2015, time.February, 18, 0, 0, 0, 0, time.UTC)
	repo.Commit("init 1", day.Add(10*time.Hour+10*time.Minute+9*time.Second))
	repo.Commit("Commit A", day.Add(11*time.Hour+10*time.Minute+9*time.Second))
	repo.Commit("Commit B", day.Add(12*time.Hour+time.Minute))

	result, err := Run(defaultSettings(repo.Path), quietLogger(), now)
	require.NoError(t, err)

	require.Len(t, result.Estimates, 1)
	estimate := result.Estimates[0]
	assert.Equal(t, testutil.DefaultName, estimate.AuthorName)
	assert.Equal(t, testutil.DefaultEmail, estimate.Email)
	assert.Equal(t, 3, estimate.CommitCount)
	assert.Equal(t, float32(1.8333334), estimate.Hours())
	assert.Equal(t, 3, result.Commits)
}

func TestRunMissingBranch(t *testing.T) {
	repo := testutil.InitRepo(t)
	repo.Commit("init 1", time.Date(2015, time.February, 18, 10, 10, 9, 0, time.UTC))

	settings := defaultSettings(repo.Path)
	settings.Branch = "does-not-exist"

	_, err := Run(settings, quietLogger(), now)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoMatchingCommits)
	assert.Equal(t, "No commits found for branch 'does-not-exist' (local).", err.Error())
}

func TestRunWindowExcludesEverything(t *testing.T) {
	repo := testutil.InitRepo(t)
	repo.Commit("init 1", time.Date(2015, time.February, 18, 10, 10, 9, 0, time.UTC))

	settings := defaultSettings(repo.Path)
	settings.Since = temporal.TimeBound{Kind: temporal.Today}

	_, err := Run(settings, quietLogger(), now)
	assert.ErrorIs(t, err, errors.ErrNoMatchingCommits)
	assert.Equal(t, "No commits found.", err.Error())
}

func TestRunUnclonedSubmodule(t *testing.T) {
	parent := testutil.InitRepo(t)
	parent.Commit("init 1", time.Date(2015, time.February, 18, 10, 10, 9, 0, time.UTC))
	subPath := parent.RegisterSubmodule("sub", "sub")

	_, err := Run(defaultSettings(subPath), quietLogger(), now)
	assert.ErrorIs(t, err, errors.ErrRepositoryAccess)
}

func TestRunMissingRepository(t *testing.T) {
	_, err := Run(defaultSettings(t.TempDir()), quietLogger(), now)
	assert.ErrorIs(t, err, errors.ErrRepositoryNotFound)
}

func TestRunSubmodule(t *testing.T) {
	parent := testutil.InitRepo(t)
	day := time.Date(2015, time.February, 18, 0, 0, 0, 0, time.UTC)
	parent.Commit("init 1", day.Add(9*time.Hour))
	parent.Commit("Commit Main", day.Add(9*time.Hour+30*time.Minute))

	sub := parent.AddSubmodule("submodule_a", "packages/submodule_a")
	sub.Commit("init 1", day.Add(10*time.Hour+10*time.Minute+9*time.Second))
	sub.Commit("Commit A A", day.Add(12*time.Hour+time.Minute))
	sub.Commit("Commit A B", day.Add(24*time.Hour+3*time.Hour+11*time.Minute+9*time.Second))
	sub.UnlinkWorktree()

	result, err := Run(defaultSettings(sub.Path), quietLogger(), now)
	require.NoError(t, err)

	require.Len(t, result.Estimates, 1)
	assert.Equal(t, 3, result.Estimates[0].CommitCount)
	assert.Equal(t, float32(2.3333333), result.Estimates[0].Hours())
}

func TestRunMergeFiltering(t *testing.T) {
	repo := testutil.InitRepo(t)
	day := time.Date(2015, time.February, 18, 0, 0, 0, 0, time.UTC)
	repo.Commit("init 1", day.Add(10*time.Hour))
	repo.Commit("Merge branch 'feature'", day.Add(11*time.Hour))
	repo.Commit("Commit B", day.Add(12*time.Hour))

	excluded, err := Run(defaultSettings(repo.Path), quietLogger(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, excluded.Commits)
	assert.Equal(t, 2, excluded.Estimates[0].CommitCount)

	settings := defaultSettings(repo.Path)
	settings.IncludeMerges = true
	included, err := Run(settings, quietLogger(), now)
	require.NoError(t, err)
	assert.Equal(t, 3, included.Estimates[0].CommitCount)
	assert.Equal(t, float32(2), included.Estimates[0].Hours())
}

func TestRunRanksAuthors(t *testing.T) {
	repo := testutil.InitRepo(t)
	day := time.Date(2015, time.February, 18, 0, 0, 0, 0, time.UTC)
	repo.CommitAs("a1", day.Add(9*time.Hour), "Short", "short@example.com")
	repo.CommitAs("b1", day.Add(10*time.Hour), "Long", "long@example.com")
	repo.CommitAs("b2", day.Add(11*time.Hour), "Long", "long@example.com")
	repo.CommitAs("a2", day.Add(11*time.Hour+30*time.Minute), "Short", "short@example.com")

	result, err := Run(defaultSettings(repo.Path), quietLogger(), now)
	require.NoError(t, err)

	require.Len(t, result.Estimates, 2)
	assert.Equal(t, "long@example.com", result.Estimates[0].Email)
	assert.Equal(t, "short@example.com", result.Estimates[1].Email)
}
