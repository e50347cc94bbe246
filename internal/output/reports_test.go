package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/gitclock/internal/config"
	"github.com/rohankatakam/gitclock/internal/models"
)

func sampleReports() []*models.Report {
	return []*models.Report{
		{
			ID:           "a",
			RepoPath:     "/src/repo",
			Branch:       "main",
			BranchKind:   models.BranchKindLocal,
			Since:        "always",
			Until:        "today",
			TotalHours:   1.5,
			TotalCommits: 4,
			CreatedAt:    time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			ID:           "b",
			RepoPath:     "/src/other",
			BranchKind:   models.BranchKindRemote,
			Since:        "lastweek",
			Until:        "always",
			TotalCommits: 1,
			CreatedAt:    time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
		},
	}
}

func TestBranchLabel(t *testing.T) {
	assert.Equal(t, "main (local)", BranchLabel("main", models.BranchKindLocal))
	assert.Equal(t, "all remote", BranchLabel("", models.BranchKindRemote))
}

func TestFormatReportListTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatReportList(sampleReports(), config.OutputStdout, &buf))

	out := buf.String()
	assert.Contains(t, out, "| ID | Created             | Repository | Branch       | Commits | Estimated Hours |")
	assert.Contains(t, out, "| a  | 2024-03-01 12:30:00 | /src/repo  | main (local) | 4       | 1.5             |")
	assert.Contains(t, out, "| b  | 2024-02-01 08:00:00 | /src/other | all remote   | 1       | 0               |")
}

func TestFormatReportListEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatReportList(nil, config.OutputStdout, &buf))
	assert.Equal(t, "No saved reports.\n", buf.String())

	buf.Reset()
	require.NoError(t, FormatReportList(nil, config.OutputJSON, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestFormatReportListJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatReportList(sampleReports(), config.OutputJSON, &buf))

	var decoded []ReportSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "a", decoded[0].ID)
	assert.Equal(t, "main (local)", decoded[0].Branch)
	assert.Equal(t, float32(1.5), decoded[0].TotalHours)
}
