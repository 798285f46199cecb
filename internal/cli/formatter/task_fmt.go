package formatter

import (
	"fmt"
	"strings"

	"github.com/danielbarros/scrumcore/internal/domain"
)

// FormatTaskList renders tasks as a table: id prefix, title, type, status,
// points, assignees.
func FormatTaskList(tasks []*domain.Task) string {
	headers := []string{"ID", "TITLE", "TYPE", "STATUS", "PTS", "ASSIGNEES"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		pts := "-"
		if t.StoryPoints != nil {
			pts = fmt.Sprintf("%d", *t.StoryPoints)
		}
		rows = append(rows, []string{
			Dim(shortID(t.ID)),
			fmt.Sprintf("%s %s", PriorityBadge(t.Priority), t.Title),
			string(t.Type),
			StatusStyle(t.Status).Render(string(t.Status)),
			pts,
			strings.Join(t.Assignees, ", "),
		})
	}
	return RenderTable(headers, rows)
}

// FormatTaskDetail renders the full single-task view.
func FormatTaskDetail(t *domain.Task) string {
	var b strings.Builder

	b.WriteString(Header(t.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("ID:"), t.ID))
	b.WriteString(fmt.Sprintf("%s  %s / %s / %s\n", Dim("Kind:"),
		string(t.Type), string(t.Priority), StatusStyle(t.Status).Render(string(t.Status))))
	if t.StoryPoints != nil {
		b.WriteString(fmt.Sprintf("%s  %d\n", Dim("Points:"), *t.StoryPoints))
	}
	if t.SprintID != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Sprint:"), shortID(*t.SprintID)))
	}
	if len(t.Assignees) > 0 {
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Assignees:"), strings.Join(t.Assignees, ", ")))
	}
	if len(t.Tags) > 0 {
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Tags:"), strings.Join(t.Tags, ", ")))
	}
	if t.DueDate != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Due:"), t.DueDate.Format("2006-01-02")))
	}
	if t.Description != "" {
		b.WriteString("\n" + t.Description + "\n")
	}
	if len(t.AcceptanceCriteria) > 0 {
		b.WriteString("\n" + Bold("Acceptance criteria") + "\n")
		for _, ac := range t.AcceptanceCriteria {
			mark := StyleDim.Render("[ ]")
			if ac.Completed {
				mark = StyleGreen.Render("[x]")
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", mark, ac.Text))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// shortID truncates a uuid for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
