package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/diverging"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// RowListModel - Interactive layout browsing
// =============================================================================

// RowListModel is the bubbletea model for browsing the rows of a layout.
// The table lists every category with its signed values; the panel below
// shows the bar rectangles and label anchors of the row under the cursor.
type RowListModel struct {
	Layout chart.Layout
	Cursor int
	Height int
	Offset int
}

// NewRowListModel creates a new row list model.
func NewRowListModel(l chart.Layout) RowListModel {
	return RowListModel{
		Layout: l,
		Height: 15,
	}
}

func (m RowListModel) Init() tea.Cmd {
	return nil
}

func (m RowListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Layout.Rows)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			if n > 0 {
				m.Cursor = n - 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 14
		if m.Height < 3 {
			m.Height = 3
		}
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *RowListModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m RowListModel) View() string {
	var b strings.Builder
	l := m.Layout

	title := "Butterfly Layout"
	if l.Appearance.Title != "" {
		title = l.Appearance.Title
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("domain ±%s  ·  %.0f×%.0f  ·  ↑/↓ navigate  q quit",
		diverging.FormatValue(l.Domain), l.Width, l.Height)))
	b.WriteString("\n\n")

	if len(l.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  no rows"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(l.Rows) {
		end = len(l.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := l.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			r.Category,
			diverging.FormatValue(r.SignedLeft),
			diverging.FormatValue(r.SignedRight),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Category", l.LeftLabel, l.RightLabel).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			base := lipgloss.NewStyle()
			switch col {
			case 2:
				base = styleLeft
			case 3:
				base = styleRight
			}
			if m.Offset+row == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(m.detail(l.Rows[m.Cursor]))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(l.Rows))))

	return b.String()
}

// detail renders the geometry of one row.
func (m RowListModel) detail(r chart.Row) string {
	var b strings.Builder
	line := func(key, value string) {
		keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
		b.WriteString("  " + keyStyle.Render(key) + " " + StyleValue.Render(value) + "\n")
	}
	line("center y", fmt.Sprintf("%.2f", r.CenterY))
	line("left bar", rectText(r.LeftBar))
	line("right bar", rectText(r.RightBar))
	line("left label", anchorText(r.LeftValue))
	line("right label", anchorText(r.RightValue))
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func rectText(r chart.Rect) string {
	return fmt.Sprintf("x=%.2f y=%.2f w=%.2f h=%.2f", r.X, r.Y, r.Width, r.Height)
}

func anchorText(l *chart.Label) string {
	if l == nil {
		return "—"
	}
	return fmt.Sprintf("%q at x=%.2f y=%.2f (%s)", l.Text, l.X, l.Y, l.Align)
}
