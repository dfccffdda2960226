package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cutstack/cutstack/pkg/imposition"
)

var (
	tuiBlankStyle = lipgloss.NewStyle().Foreground(colorDim)
	tuiCellStyle  = lipgloss.NewStyle().Foreground(colorWhite).Align(lipgloss.Center).Padding(0, 1)
	tuiSideStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
)

// =============================================================================
// SheetModel - Interactive sheet browser
// =============================================================================

// SheetModel is the bubbletea model for browsing the sheets of a plan.
type SheetModel struct {
	Plan   *imposition.Plan
	Cursor int  // current sheet index
	Back   bool // showing the back side
}

// NewSheetModel creates a sheet browser for plan.
func NewSheetModel(plan *imposition.Plan) SheetModel {
	return SheetModel{Plan: plan}
}

func (m SheetModel) Init() tea.Cmd {
	return nil
}

func (m SheetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "right", "l":
			if m.Cursor < len(m.Plan.Cells)-1 {
				m.Cursor++
			}
		case "tab", "f", "b":
			m.Back = !m.Back
		}
	}
	return m, nil
}

func (m SheetModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Sheet Preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ sheet  tab flip side  q quit"))
	b.WriteString("\n\n")

	side := "front"
	cells := m.Plan.Cells[m.Cursor].Front
	if m.Back {
		side = "back"
		cells = m.Plan.Cells[m.Cursor].Back
	}

	b.WriteString(fmt.Sprintf("Sheet %s of %d, %s side\n\n",
		StyleHighlight.Render(fmt.Sprintf("%d", m.Cursor+1)),
		m.Plan.Stats.SheetCount,
		tuiSideStyle.Render(side)))

	b.WriteString(m.renderGrid(cells))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("%s grid · %d pages · %d sheets",
		m.Plan.Layout.String(), m.Plan.Stats.InputPages, m.Plan.Stats.SheetCount)
	if m.Plan.Stats.PaddingPages > 0 {
		stats += fmt.Sprintf(" · %d blank", m.Plan.Stats.PaddingPages)
	}
	b.WriteString(StyleDim.Render("  " + stats))

	return b.String()
}

// renderGrid lays the side's cells out as a bordered table in row-major order.
func (m SheetModel) renderGrid(cells []imposition.CellAssignment) string {
	rows := make([][]string, m.Plan.Layout.Rows)
	for i := range rows {
		rows[i] = make([]string, m.Plan.Layout.Columns)
		for j := range rows[i] {
			rows[i][j] = "·"
		}
	}
	for _, cell := range cells {
		label := fmt.Sprintf("%d", cell.Slot.Page)
		if cell.Slot.Blank {
			label = "—"
		}
		rows[cell.Row][cell.Column] = label
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row >= 0 && row < len(rows) && rows[row][col] == "—" {
				return tuiBlankStyle.Align(lipgloss.Center).Padding(0, 1)
			}
			return tuiCellStyle
		})

	return t.Render()
}
