package formatter

import (
	"fmt"
	"strings"

	"github.com/danielbarros/scrumcore/internal/domain"
)

// FormatRetroBoard renders the retrospective columns with cards and votes.
// Author names are hidden on anonymous cards.
func FormatRetroBoard(session *domain.RetroSession, cards []*domain.RetroCard) string {
	byColumn := make(map[string][]*domain.RetroCard)
	for _, c := range cards {
		byColumn[c.Column] = append(byColumn[c.Column], c)
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Retro · %s · %s", session.Format, session.Phase)))
	b.WriteString("\n")

	for _, column := range session.Columns() {
		b.WriteString("\n" + Bold(strings.ToUpper(column)) + "\n")
		cs := byColumn[column]
		if len(cs) == 0 {
			b.WriteString(Dim("  (empty)") + "\n")
			continue
		}
		for _, c := range cs {
			votes := ""
			if n := len(c.Votes); n > 0 {
				votes = " " + StylePurple.Render(strings.Repeat("▲", n))
			}
			author := Dim("anonymous")
			if !c.IsAnonymous {
				author = Dim(c.AuthorID)
			}
			b.WriteString(fmt.Sprintf("  %s %s%s  %s\n", Dim(shortID(c.ID)), c.Content, votes, author))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatActionList renders a session's action items.
func FormatActionList(actions []*domain.RetroActionItem) string {
	if len(actions) == 0 {
		return Dim("No action items.")
	}

	headers := []string{"ID", "TITLE", "STATUS", "ASSIGNEE", "DUE"}
	rows := make([][]string, 0, len(actions))
	for _, a := range actions {
		assignee, due := "-", "-"
		if a.AssigneeID != nil {
			assignee = *a.AssigneeID
		}
		if a.DueDate != nil {
			due = a.DueDate.Format("2006-01-02")
		}
		status := StyleYellow
		if a.Status == domain.ActionDone {
			status = StyleGreen
		}
		rows = append(rows, []string{
			Dim(shortID(a.ID)),
			a.Title,
			status.Render(string(a.Status)),
			assignee,
			due,
		})
	}
	return RenderTable(headers, rows)
}
