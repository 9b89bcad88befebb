package pipeline

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mwiater/benchchart/internal/chart"
	"github.com/mwiater/benchchart/internal/report"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	virtualStyle = cellStyle.Foreground(lipgloss.Color("34"))
	directStyle  = cellStyle.Foreground(lipgloss.Color("33"))
)

// renderSummary formats the per-case statistics as a bordered table. Case
// names are coloured with the same classification the chart uses.
func renderSummary(rows []report.SummaryRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("CASE", "SAMPLES", "MEAN", "MEDIAN", "STDDEV", "CV", "UNIT")

	for _, r := range rows {
		t.Row(
			r.Key,
			strconv.Itoa(r.Samples),
			strconv.FormatFloat(r.Mean, 'f', 4, 64),
			strconv.FormatFloat(r.Median, 'f', 4, 64),
			strconv.FormatFloat(r.StdDev, 'f', 4, 64),
			fmt.Sprintf("%.2f%%", r.CV*100),
			r.Unit,
		)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == 0 && row >= 0 && row < len(rows) {
			if chart.BarColor(rows[row].Key) == chart.VirtualColor {
				return virtualStyle
			}
			return directStyle
		}
		return cellStyle
	})

	return t.String()
}
