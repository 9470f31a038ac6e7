package inventory

import (
	"fmt"
	"io"
	"strconv"

	md "github.com/nao1215/markdown"
)

// WriteMarkdown renders the run summary as a markdown section suitable for
// a CI step summary.
func (s Summary) WriteMarkdown(w io.Writer, title string) error {
	rows := make([][]string, 0, len(Statuses())+1)
	for _, status := range Statuses() {
		rows = append(rows, []string{status.String(), strconv.Itoa(s.Count(status))})
	}
	if s.Other > 0 {
		rows = append(rows, []string{"Other", strconv.Itoa(s.Other)})
	}
	rows = append(rows, []string{md.Bold("Total"), md.Bold(strconv.Itoa(s.Total))})

	return md.NewMarkdown(w).
		H2(title).
		Table(md.TableSet{
			Header: []string{"Status", "Count"},
			Rows:   rows,
		}).
		PlainText(fmt.Sprintf("Processed %d inventory rows.", s.Total)).
		LF().
		Build()
}
