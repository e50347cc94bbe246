package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rohankatakam/gitclock/internal/models"
	"github.com/rohankatakam/gitclock/internal/temporal"
)

// EstimateRecord is the serialized form of one estimate or of the totals row.
// Absent names and emails are encoded as null.
type EstimateRecord struct {
	Email       *string `json:"email" yaml:"email"`
	AuthorName  *string `json:"author_name" yaml:"author_name"`
	Hours       float32 `json:"hours" yaml:"hours"`
	CommitCount int     `json:"commit_count" yaml:"commit_count"`
}

// Records converts estimates to records and appends the "Total" record
func Records(estimates []models.AuthorTimeEstimate) []EstimateRecord {
	records := make([]EstimateRecord, 0, len(estimates)+1)
	for _, e := range estimates {
		records = append(records, EstimateRecord{
			Email:       optional(e.Email),
			AuthorName:  optional(e.AuthorName),
			Hours:       e.Hours(),
			CommitCount: e.CommitCount,
		})
	}

	hours, commits := temporal.Totals(estimates)
	total := "Total"
	records = append(records, EstimateRecord{
		AuthorName:  &total,
		Hours:       hours,
		CommitCount: commits,
	})
	return records
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// JSONFormatter writes indented JSON
type JSONFormatter struct{}

func (f *JSONFormatter) Format(estimates []models.AuthorTimeEstimate, w io.Writer) error {
	data, err := json.MarshalIndent(Records(estimates), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// YAMLFormatter writes a YAML sequence of records
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(estimates []models.AuthorTimeEstimate, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Records(estimates)); err != nil {
		return err
	}
	return enc.Close()
}
