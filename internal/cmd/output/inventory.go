package output

import (
	"strconv"

	"github.com/fatih/color"

	"github.com/agentstation/assetmap/pkg/inventory"
)

var statusColors = map[inventory.Status]*color.Color{
	inventory.StatusExisting:   color.New(color.FgGreen),
	inventory.StatusRemoved:    color.New(color.FgRed),
	inventory.StatusNewlyAdded: color.New(color.FgYellow),
}

// Status renders a status label, colored when colorize is set.
func Status(status inventory.Status, colorize bool) string {
	if !colorize || !status.IsValid() {
		return string(status)
	}
	c := statusColors[status]
	c.EnableColor()
	return c.Sprint(string(status))
}

// SummaryData converts status counts into a two-column table.
func SummaryData(s inventory.Summary, colorize bool) Data {
	rows := make([][]string, 0, 5)
	for _, status := range inventory.Statuses() {
		rows = append(rows, []string{Status(status, colorize), strconv.Itoa(s.Count(status))})
	}
	if s.Other > 0 {
		rows = append(rows, []string{"Other", strconv.Itoa(s.Other)})
	}
	rows = append(rows, []string{"Total", strconv.Itoa(s.Total)})
	return Data{
		Headers:         []string{"Status", "Count"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// ValueCountsData converts a column histogram into a two-column table.
func ValueCountsData(column string, counts []inventory.ValueCount, colorize bool) Data {
	rows := make([][]string, 0, len(counts))
	for _, vc := range counts {
		label := vc.Value
		if column == inventory.ColumnStatus {
			label = Status(inventory.Status(vc.Value), colorize)
		}
		rows = append(rows, []string{label, strconv.Itoa(vc.Count)})
	}
	return Data{
		Headers:         []string{column, "Count"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}
