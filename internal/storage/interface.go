package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rohankatakam/gitclock/internal/config"
	"github.com/rohankatakam/gitclock/internal/models"
	"github.com/rohankatakam/gitclock/internal/temporal"
)

// Common errors
var (
	ErrNotFound = errors.New("not found")
)

// Store persists statistics reports
type Store interface {
	// SaveReport stores a report together with its ranked estimates
	SaveReport(ctx context.Context, report *models.Report) error
	// ListReports returns report headers (no estimates), newest first.
	// A non-positive limit returns every report.
	ListReports(ctx context.Context, limit int) ([]*models.Report, error)
	// GetReport returns a report with estimates in rank order
	GetReport(ctx context.Context, id string) (*models.Report, error)

	Close() error
}

// NewReport builds a report for ranked estimates with a fresh id
func NewReport(settings *config.StatsSettings, repoPath string, estimates []models.AuthorTimeEstimate, now time.Time) *models.Report {
	hours, commits := temporal.Totals(estimates)
	return &models.Report{
		ID:             uuid.NewString(),
		RepoPath:       repoPath,
		Branch:         settings.Branch,
		BranchKind:     settings.BranchKind,
		Since:          settings.Since.String(),
		Until:          settings.Until.String(),
		IncludeMerges:  settings.IncludeMerges,
		MaxCommitDiff:  settings.MaxCommitDiff,
		FirstCommitAdd: settings.FirstCommitAddition,
		TotalHours:     hours,
		TotalCommits:   commits,
		CreatedAt:      now.UTC(),
		Estimates:      estimates,
	}
}
