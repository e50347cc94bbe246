package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/gitclock/internal/models"
)

// sqlStore implements Store over any sqlx driver; dialects differ only in schema
type sqlStore struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

type entryRow struct {
	ReportID string `db:"report_id"`
	Position int    `db:"position"`
	models.AuthorTimeEstimate
}

const reportColumns = `id, repo_path, branch, branch_kind, since_bound, until_bound,
	include_merges, max_commit_diff, first_commit_add, total_hours, total_commits, created_at`

func (s *sqlStore) initSchema(schema string) error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *sqlStore) Close() error {
	return s.db.Close()
}

func (s *sqlStore) SaveReport(ctx context.Context, report *models.Report) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES (:id, :repo_path, :branch, :branch_kind, :since_bound, :until_bound,
			:include_merges, :max_commit_diff, :first_commit_add, :total_hours, :total_commits, :created_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	entryQuery := `
		INSERT INTO report_entries (report_id, position, author_name, email, duration, commit_count)
		VALUES (:report_id, :position, :author_name, :email, :duration, :commit_count)
	`
	for i, estimate := range report.Estimates {
		row := entryRow{ReportID: report.ID, Position: i, AuthorTimeEstimate: estimate}
		if _, err := tx.NamedExecContext(ctx, entryQuery, row); err != nil {
			return fmt.Errorf("insert report entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":      report.ID,
		"entries": len(report.Estimates),
	}).Debug("Saved report")
	return nil
}

func (s *sqlStore) ListReports(ctx context.Context, limit int) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var reports []*models.Report
	if err := s.db.SelectContext(ctx, &reports, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (s *sqlStore) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	query := s.db.Rebind(`SELECT ` + reportColumns + ` FROM reports WHERE id = ?`)
	if err := s.db.GetContext(ctx, &report, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get report: %w", err)
	}

	var rows []entryRow
	entryQuery := s.db.Rebind(`
		SELECT report_id, position, author_name, email, duration, commit_count
		FROM report_entries WHERE report_id = ? ORDER BY position
	`)
	if err := s.db.SelectContext(ctx, &rows, entryQuery, id); err != nil {
		return nil, fmt.Errorf("get report entries: %w", err)
	}

	report.Estimates = make([]models.AuthorTimeEstimate, 0, len(rows))
	for _, row := range rows {
		report.Estimates = append(report.Estimates, row.AuthorTimeEstimate)
	}
	return &report, nil
}
