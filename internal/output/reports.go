package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rohankatakam/gitclock/internal/config"
	"github.com/rohankatakam/gitclock/internal/models"
)

var reportTitles = []string{"ID", "Created", "Repository", "Branch", "Commits", "Estimated Hours"}

// ReportSummary is the serialized header of a saved report
type ReportSummary struct {
	ID           string  `json:"id" yaml:"id"`
	CreatedAt    string  `json:"created_at" yaml:"created_at"`
	RepoPath     string  `json:"repo_path" yaml:"repo_path"`
	Branch       string  `json:"branch" yaml:"branch"`
	Since        string  `json:"since" yaml:"since"`
	Until        string  `json:"until" yaml:"until"`
	TotalCommits int     `json:"total_commits" yaml:"total_commits"`
	TotalHours   float32 `json:"total_hours" yaml:"total_hours"`
}

// SummarizeReport flattens a report header for listing
func SummarizeReport(report *models.Report) ReportSummary {
	return ReportSummary{
		ID:           report.ID,
		CreatedAt:    report.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		RepoPath:     report.RepoPath,
		Branch:       BranchLabel(report.Branch, report.BranchKind),
		Since:        report.Since,
		Until:        report.Until,
		TotalCommits: report.TotalCommits,
		TotalHours:   report.TotalHours,
	}
}

// BranchLabel describes a branch selector, e.g. "main (local)" or "all remote"
func BranchLabel(branch string, kind models.BranchKind) string {
	if branch == "" {
		return fmt.Sprintf("all %s", kind)
	}
	return fmt.Sprintf("%s (%s)", branch, kind)
}

// FormatReportList renders saved report headers in the given format
func FormatReportList(reports []*models.Report, format config.OutputFormat, w io.Writer) error {
	summaries := make([]ReportSummary, 0, len(reports))
	for _, report := range reports {
		summaries = append(summaries, SummarizeReport(report))
	}

	switch format {
	case config.OutputJSON:
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(summaries); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(summaries) == 0 {
		_, err := io.WriteString(w, "No saved reports.\n")
		return err
	}

	rows := [][]string{reportTitles, blankRow(len(reportTitles))}
	for _, s := range summaries {
		rows = append(rows, []string{
			s.ID,
			s.CreatedAt,
			s.RepoPath,
			s.Branch,
			strconv.Itoa(s.TotalCommits),
			formatHours(s.TotalHours),
		})
	}
	return drawTable(rows, w)
}
