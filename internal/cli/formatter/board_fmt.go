package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/danielbarros/scrumcore/internal/service"
)

const boardColumnWidth = 24

var (
	boardColumnStyle = lipgloss.NewStyle().
				Width(boardColumnWidth).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorDim)

	boardCardStyle = lipgloss.NewStyle().
			Width(boardColumnWidth - 4).
			Foreground(ColorFg)
)

// FormatBoard renders kanban columns side by side. Columns over their WIP
// limit get a yellow count marker.
func FormatBoard(columns []service.BoardColumn) string {
	rendered := make([]string, 0, len(columns))
	for _, col := range columns {
		rendered = append(rendered, RenderBoardColumn(col, -1))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// RenderBoardColumn renders one column; selected >= 0 highlights that card.
func RenderBoardColumn(col service.BoardColumn, selected int) string {
	count := fmt.Sprintf("%d", len(col.Tasks))
	if col.WIPLimit > 0 {
		count = fmt.Sprintf("%d/%d", len(col.Tasks), col.WIPLimit)
		if len(col.Tasks) > col.WIPLimit {
			count = StyleYellow.Render(count)
		}
	}
	title := fmt.Sprintf("%s %s",
		StatusStyle(col.Status).Bold(true).Render(strings.ToUpper(string(col.Status))),
		Dim(count))

	lines := []string{title, ""}
	for i, t := range col.Tasks {
		label := t.Title
		if t.StoryPoints != nil {
			label = fmt.Sprintf("%s (%d)", t.Title, *t.StoryPoints)
		}
		card := boardCardStyle.Render(fmt.Sprintf("%s %s", PriorityBadge(t.Priority), label))
		if i == selected {
			card = lipgloss.NewStyle().
				Width(boardColumnWidth-4).
				Foreground(ColorHeader).
				Bold(true).
				Render(fmt.Sprintf("▸ %s", label))
		}
		lines = append(lines, card)
	}
	return boardColumnStyle.Render(strings.Join(lines, "\n"))
}
