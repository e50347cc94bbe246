// Package analysis runs the end-to-end work time estimation for one repository.
package analysis

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/gitclock/internal/config"
	"github.com/rohankatakam/gitclock/internal/errors"
	"github.com/rohankatakam/gitclock/internal/git"
	"github.com/rohankatakam/gitclock/internal/models"
	"github.com/rohankatakam/gitclock/internal/temporal"
)

// Result is the ranked outcome of one statistics run
type Result struct {
	// Root of the repository whose history was read (a submodule when one was targeted)
	RepoPath  string
	Estimates []models.AuthorTimeEstimate
	// Commits left after filtering
	Commits int
	// Wall time of the run
	Duration time.Duration
}

// Run opens the repository, collects and filters commits, then estimates and
// ranks per-author working time. now anchors the symbolic time bounds and is
// read once for the whole run.
func Run(settings *config.StatsSettings, logger *logrus.Logger, now time.Time) (*Result, error) {
	start := time.Now()

	repo, err := git.Open(settings.RepoPath, logger)
	if err != nil {
		return nil, err
	}
	return runWithBackend(repo, repo.Path(), settings, logger, now, start)
}

func runWithBackend(backend git.Backend, repoPath string, settings *config.StatsSettings, logger *logrus.Logger, now, start time.Time) (*Result, error) {
	log := logger.WithFields(logrus.Fields{
		"repository":  repoPath,
		"branch":      settings.Branch,
		"branch_type": settings.BranchKind,
	})

	commits, err := git.CollectCommits(backend, settings.Branch, settings.BranchKind)
	if err != nil {
		return nil, err
	}
	log.WithField("commits", len(commits)).Debug("Collected commits")

	window := temporal.ResolveWindow(settings.Since, settings.Until, now)
	commits = git.FilterCommits(commits, window, settings.IncludeMerges)
	log.WithFields(logrus.Fields{
		"commits": len(commits),
		"since":   settings.Since.String(),
		"until":   settings.Until.String(),
		"merges":  settings.IncludeMerges,
	}).Debug("Filtered commits")

	if len(commits) == 0 {
		if settings.Branch != "" {
			return nil, errors.NoMatchingCommitsErrorf("No commits found for branch '%s' (%s).", settings.Branch, settings.BranchKind)
		}
		return nil, errors.NoMatchingCommitsErrorf("No commits found.")
	}

	estimates := temporal.EstimateAuthorTimes(commits, temporal.EstimateOptions{
		MaxCommitDiff:       settings.MaxCommitDiff,
		FirstCommitAddition: settings.FirstCommitAddition,
		EmailAliases:        settings.EmailAliases,
	})
	temporal.RankEstimates(estimates)

	result := &Result{
		RepoPath:  repoPath,
		Estimates: estimates,
		Commits:   len(commits),
		Duration:  time.Since(start),
	}
	log.WithFields(logrus.Fields{
		"authors":  len(estimates),
		"duration": result.Duration,
	}).Debug("Estimated author times")

	return result, nil
}
