package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/danielbarros/scrumcore/internal/cli/formatter"
	"github.com/danielbarros/scrumcore/internal/service"
)

type boardKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Refresh   key.Binding
	Quit      key.Binding
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev card")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next card")),
		MoveLeft:  key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H", "move card left")),
		MoveRight: key.NewBinding(key.WithKeys("L", "shift+right"), key.WithHelp("L", "move card right")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardModel is the interactive kanban view. Card moves go through the
// board service, so WIP warnings and status invariants apply as on the CLI.
type boardModel struct {
	app      *App
	sprintID *string
	keys     boardKeyMap

	columns []service.BoardColumn
	col     int
	row     int

	status   string
	quitting bool
}

func newBoardModel(ctx context.Context, app *App, sprintID *string) (boardModel, error) {
	m := boardModel{
		app:      app,
		sprintID: sprintID,
		keys:     defaultBoardKeyMap(),
	}
	if err := m.reload(ctx); err != nil {
		return boardModel{}, err
	}
	return m, nil
}

func (m *boardModel) reload(ctx context.Context) error {
	columns, err := m.app.Board.Columns(ctx, m.app.Config.Project, m.sprintID)
	if err != nil {
		return err
	}
	m.columns = columns
	m.clampCursor()
	return nil
}

func (m *boardModel) clampCursor() {
	if m.col >= len(m.columns) {
		m.col = len(m.columns) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	if n := len(m.columns[m.col].Tasks); m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *boardModel) selectedTask() (taskID string, ok bool) {
	tasks := m.columns[m.col].Tasks
	if m.row < 0 || m.row >= len(tasks) {
		return "", false
	}
	return tasks[m.row].ID, true
}

// moveSelected drops the selected card onto the neighbouring column.
func (m *boardModel) moveSelected(delta int) {
	taskID, ok := m.selectedTask()
	if !ok {
		return
	}
	target := m.col + delta
	if target < 0 || target >= len(m.columns) {
		return
	}

	ctx := context.Background()
	res, err := m.app.Board.MoveTask(ctx, taskID, string(m.columns[target].Status))
	if err != nil {
		m.status = formatter.StyleRed.Render(err.Error())
		return
	}
	m.status = fmt.Sprintf("Moved %s to %s", res.Task.Title, res.To)
	if res.WIPWarning != "" {
		m.status = formatter.StyleYellow.Render(res.WIPWarning)
	}
	if err := m.reload(ctx); err != nil {
		m.status = formatter.StyleRed.Render(err.Error())
		return
	}
	m.col = target
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Left):
		m.col--
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.Right):
		m.col++
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.Up):
		m.row--
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.Down):
		m.row++
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.MoveLeft):
		m.moveSelected(-1)
	case key.Matches(keyMsg, m.keys.MoveRight):
		m.moveSelected(1)
	case key.Matches(keyMsg, m.keys.Refresh):
		if err := m.reload(context.Background()); err != nil {
			m.status = formatter.StyleRed.Render(err.Error())
		} else {
			m.status = "Refreshed"
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.quitting {
		return ""
	}

	rendered := make([]string, 0, len(m.columns))
	for i, col := range m.columns {
		selected := -1
		if i == m.col {
			selected = m.row
		}
		rendered = append(rendered, formatter.RenderBoardColumn(col, selected))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(formatter.Dim("←/→ column · ↑/↓ card · H/L move card · r refresh · q quit"))
	return b.String()
}
