package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rohankatakam/gitclock/internal/models"
	"github.com/rohankatakam/gitclock/internal/temporal"
)

// TableFormatter draws a bordered text table:
//
//	+--------+-------+---------+-----------------+
//	| Author | Email | Commits | Estimated Hours |
//	|        |       |         |                 |
//	| ...    | ...   | ...     | ...             |
//	|        |       |         |                 |
//	| Total  |       | 3       | 1.8333334       |
//	+--------+-------+---------+-----------------+
type TableFormatter struct{}

var tableTitles = []string{"Author", "Email", "Commits", "Estimated Hours"}

func (f *TableFormatter) Format(estimates []models.AuthorTimeEstimate, w io.Writer) error {
	rows := [][]string{tableTitles, blankRow(len(tableTitles))}
	for _, e := range estimates {
		email := e.Email
		if email == "" {
			email = "(none)"
		}
		rows = append(rows, []string{e.AuthorName, email, strconv.Itoa(e.CommitCount), formatHours(e.Hours())})
	}
	rows = append(rows, blankRow(len(tableTitles)))

	hours, commits := temporal.Totals(estimates)
	rows = append(rows, []string{"Total", "", strconv.Itoa(commits), formatHours(hours)})

	return drawTable(rows, w)
}

// drawTable pads every cell to its column width and frames the rows.
// All rows must have the same number of cells.
func drawTable(rows [][]string, w io.Writer) error {
	if len(rows) == 0 {
		return nil
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	border := separator(widths)
	b.WriteString(border)
	for _, row := range rows {
		b.WriteString("|")
		for i, cell := range row {
			fmt.Fprintf(&b, " %s%s |", cell, strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
		b.WriteString("\n")
	}
	b.WriteString(border)

	_, err := io.WriteString(w, b.String())
	return err
}

func blankRow(n int) []string {
	return make([]string, n)
}

func separator(widths []int) string {
	var b strings.Builder
	b.WriteString("+")
	for _, width := range widths {
		b.WriteString(strings.Repeat("-", width+2))
		b.WriteString("+")
	}
	b.WriteString("\n")
	return b.String()
}
