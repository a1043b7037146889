package sink

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/diverging"
)

var (
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tableHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableNumberStyle = tableCellStyle.Align(lipgloss.Right)
)

// RenderDatasetTable renders records as a terminal table with one column
// per series.
func RenderDatasetTable(ds chart.Dataset) string {
	left, right := ds.Labels()
	rows := make([][]string, len(ds.Records))
	for i, r := range ds.Records {
		rows[i] = []string{r.Category, diverging.FormatValue(r.Left), diverging.FormatValue(r.Right)}
	}
	return newTable([]string{"Category", left, right}, rows).Render()
}

// RenderLayoutTable renders the rows of a layout with their signed values
// and value labels.
func RenderLayoutTable(l chart.Layout) string {
	rows := make([][]string, len(l.Rows))
	for i, r := range l.Rows {
		rows[i] = []string{
			r.Category,
			diverging.FormatValue(r.SignedLeft),
			diverging.FormatValue(r.SignedRight),
			labelText(r.LeftValue),
			labelText(r.RightValue),
		}
	}
	headers := []string{"Category", l.LeftLabel, l.RightLabel, "Left label", "Right label"}
	return newTable(headers, rows).Render()
}

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle.Padding(0, 1)
			}
			if col == 0 {
				return tableCellStyle
			}
			return tableNumberStyle
		})
}

func labelText(l *chart.Label) string {
	if l == nil {
		return ""
	}
	return l.Text
}
