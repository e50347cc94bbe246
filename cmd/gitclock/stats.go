package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rohankatakam/gitclock/internal/analysis"
	"github.com/rohankatakam/gitclock/internal/config"
	"github.com/rohankatakam/gitclock/internal/errors"
	"github.com/rohankatakam/gitclock/internal/logging"
	"github.com/rohankatakam/gitclock/internal/output"
	"github.com/rohankatakam/gitclock/internal/storage"
)

type statsFlags struct {
	maxCommitDiff  int
	firstCommitAdd int
	since          string
	until          string
	emails         []string
	mergeRequests  bool
	branch         string
	branchType     string
	format         string
	save           bool
}

func newStatsCmd(c *cli) *cobra.Command {
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:     "stats [REPO_PATH]",
		Aliases: []string{"statistics"},
		Short:   "Estimate hours worked per author",
		Long: `Estimate the hours each author worked on a repository.

Commits are grouped by author email. Gaps between consecutive commits of an author
shorter than --max-commit-diff count as continuous work; every other gap, including
the start of the first session, is credited --first-commit-add minutes.

Examples:
  # All local branches of the current repository
  gitclock stats

  # Only main, this week, as JSON
  gitclock stats ~/src/project --branch main --since thisweek --format json

  # Fold a work address into a personal one
  gitclock stats -e me@work.example=me@home.example`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath := "."
			if len(args) == 1 {
				repoPath = args[0]
			}
			return c.runStats(cmd, repoPath, flags)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.maxCommitDiff, "max-commit-diff", "d", 120, "maximum minutes between commits counted as one session")
	f.IntVarP(&flags.firstCommitAdd, "first-commit-add", "a", 30, "minutes credited for the work before the first commit of a session")
	f.StringVarP(&flags.since, "since", "s", "always", "count commits from: always, today, yesterday, thisweek, lastweek or YYYY-MM-DD")
	f.StringVarP(&flags.until, "until", "u", "always", "count commits until: always, today, yesterday, thisweek, lastweek or YYYY-MM-DD")
	f.StringArrayVarP(&flags.emails, "email", "e", nil, "treat OTHER_EMAIL as MAIN_EMAIL (OTHER_EMAIL=MAIN_EMAIL, repeatable)")
	f.BoolVarP(&flags.mergeRequests, "merge-requests", "m", false, "include commits whose summary starts with \"Merge \"")
	f.StringVarP(&flags.branch, "branch", "b", "", "analyze only this branch (default: every branch of --branch-type)")
	f.StringVarP(&flags.branchType, "branch-type", "t", "local", "branch namespace: local or remote (requires --branch)")
	f.StringVarP(&flags.format, "format", "f", "stdout", "output format: stdout, json or yaml")
	f.BoolVar(&flags.save, "save", false, "store the report in the configured report store")

	cmd.RegisterFlagCompletionFunc("branch-type", cobra.FixedCompletions([]string{"local", "remote"}, cobra.ShellCompDirectiveNoFileComp))
	cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(config.OutputFormats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// mergeStatsFlags overlays explicitly set flags on the configured statistics options
func mergeStatsFlags(cmd *cobra.Command, raw config.StatsConfig, flags *statsFlags) (config.StatsConfig, error) {
	changed := cmd.Flags().Changed

	if changed("max-commit-diff") {
		raw.MaxCommitDiff = flags.maxCommitDiff
	}
	if changed("first-commit-add") {
		raw.FirstCommitAdd = flags.firstCommitAdd
	}
	if changed("since") {
		raw.Since = flags.since
	}
	if changed("until") {
		raw.Until = flags.until
	}
	if changed("email") {
		raw.Emails = flags.emails
	}
	if changed("merge-requests") {
		raw.MergeRequests = flags.mergeRequests
	}
	if changed("branch") {
		raw.Branch = flags.branch
	}
	if changed("branch-type") {
		if raw.Branch == "" {
			return raw, errors.ParseErrorf("--branch-type requires --branch")
		}
		raw.BranchType = flags.branchType
	}
	if changed("format") {
		raw.Format = flags.format
	}
	return raw, nil
}

func (c *cli) runStats(cmd *cobra.Command, repoPath string, flags *statsFlags) error {
	raw, err := mergeStatsFlags(cmd, c.cfg.Stats, flags)
	if err != nil {
		return err
	}

	settings, err := config.ParseStats(repoPath, raw)
	if err != nil {
		return err
	}

	now := c.now()
	result, err := analysis.Run(settings, c.logger, now)
	if err != nil {
		return err
	}

	if err := output.NewFormatter(settings.Format).Format(result.Estimates, cmd.OutOrStdout()); err != nil {
		return errors.OutputErrorf(err, "failed to write report")
	}

	if flags.save {
		return c.saveReport(cmd.Context(), settings, result, now)
	}
	return nil
}

func (c *cli) saveReport(ctx context.Context, settings *config.StatsSettings, result *analysis.Result, now time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := storage.Open(c.cfg.Storage, c.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	report := storage.NewReport(settings, result.RepoPath, result.Estimates, now)
	if err := store.SaveReport(ctx, report); err != nil {
		return errors.StorageErrorf(err, "failed to save report")
	}

	logging.Component(c.logger, "storage").WithFields(logrus.Fields{
		"id":    report.ID,
		"store": c.cfg.Storage.Type,
	}).Info("Saved report")
	return nil
}
