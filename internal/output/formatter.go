package output

import (
	"io"
	"strconv"

	"github.com/rohankatakam/gitclock/internal/config"
	"github.com/rohankatakam/gitclock/internal/models"
)

// Formatter renders ranked estimates followed by their totals
type Formatter interface {
	Format(estimates []models.AuthorTimeEstimate, w io.Writer) error
}

// NewFormatter creates the formatter for an output format
func NewFormatter(format config.OutputFormat) Formatter {
	switch format {
	case config.OutputJSON:
		return &JSONFormatter{}
	case config.OutputYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// formatHours prints a float32 in its shortest exact form, e.g. 1.8333334
func formatHours(h float32) string {
	return strconv.FormatFloat(float64(h), 'f', -1, 32)
}
