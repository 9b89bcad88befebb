package viewer

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/benchchart/internal/report"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	frameStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

type tableModel struct {
	chartPath string
	table     table.Model
}

func newTableModel(chartPath string, rows []report.SummaryRow) tableModel {
	columns := []table.Column{
		{Title: "Case", Width: 36},
		{Title: "Samples", Width: 8},
		{Title: "Mean", Width: 12},
		{Title: "Median", Width: 12},
		{Title: "StdDev", Width: 12},
		{Title: "CV", Width: 8},
		{Title: "Unit", Width: 5},
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, table.Row{
			r.Key,
			strconv.Itoa(r.Samples),
			formatFloat(r.Mean),
			formatFloat(r.Median),
			formatFloat(r.StdDev),
			fmt.Sprintf("%.2f%%", r.CV*100),
			r.Unit,
		})
	}

	// The header and its bottom border take two of the rows.
	height := len(tableRows) + 3
	if height > 20 {
		height = 20
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return tableModel{chartPath: chartPath, table: t}
}

func (m tableModel) Init() tea.Cmd { return nil }

func (m tableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m tableModel) View() string {
	return titleStyle.Render("Benchmark Performance") + "\n" +
		helpStyle.Render("chart: "+m.chartPath) + "\n" +
		frameStyle.Render(m.table.View()) + "\n" +
		helpStyle.Render("↑/↓ move • q quit") + "\n"
}

// RunTable shows the per-case statistics in an interactive terminal table
// until the user quits.
func RunTable(chartPath string, rows []report.SummaryRow) error {
	if _, err := tea.NewProgram(newTableModel(chartPath, rows)).Run(); err != nil {
		return fmt.Errorf("run results viewer: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
