package main

import (
	"context"
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/rohankatakam/gitclock/internal/config"
	"github.com/rohankatakam/gitclock/internal/errors"
	"github.com/rohankatakam/gitclock/internal/output"
	"github.com/rohankatakam/gitclock/internal/storage"
)

func newReportsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Inspect reports saved with stats --save",
	}

	var (
		limit      int
		listFormat string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := config.ParseOutputFormat(listFormat)
			if err != nil {
				return err
			}
			return c.withStore(cmd, func(ctx context.Context, store storage.Store) error {
				reports, err := store.ListReports(ctx, limit)
				if err != nil {
					return errors.StorageErrorf(err, "failed to list reports")
				}
				if err := output.FormatReportList(reports, format, cmd.OutOrStdout()); err != nil {
					return errors.OutputErrorf(err, "failed to write report list")
				}
				return nil
			})
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "maximum number of reports to list (0 for all)")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "stdout", "output format: stdout, json or yaml")

	var showFormat string
	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Render a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := config.ParseOutputFormat(showFormat)
			if err != nil {
				return err
			}
			return c.withStore(cmd, func(ctx context.Context, store storage.Store) error {
				report, err := store.GetReport(ctx, args[0])
				if err != nil {
					if stderrors.Is(err, storage.ErrNotFound) {
						return errors.StorageErrorf(err, "report '%s'", args[0])
					}
					return errors.StorageErrorf(err, "failed to load report '%s'", args[0])
				}
				if err := output.NewFormatter(format).Format(report.Estimates, cmd.OutOrStdout()); err != nil {
					return errors.OutputErrorf(err, "failed to write report")
				}
				return nil
			})
		},
	}
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "stdout", "output format: stdout, json or yaml")

	cmd.AddCommand(listCmd)
	cmd.AddCommand(showCmd)
	return cmd
}

// withStore opens the configured report store for the duration of fn
func (c *cli) withStore(cmd *cobra.Command, fn func(ctx context.Context, store storage.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := storage.Open(c.cfg.Storage, c.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(ctx, store)
}
