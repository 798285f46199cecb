package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/danielbarros/scrumcore/internal/metrics"
)

// FormatSprintList renders sprints as a table.
func FormatSprintList(sprints []*domain.Sprint) string {
	headers := []string{"ID", "NAME", "STATUS", "DATES", "COMMITTED", "COMPLETED", "CAP"}
	rows := make([][]string, 0, len(sprints))
	for _, s := range sprints {
		rows = append(rows, []string{
			Dim(shortID(s.ID)),
			s.Name,
			sprintStatusStyle(s.Status).Render(string(s.Status)),
			fmt.Sprintf("%s → %s", s.StartDate.Format("2006-01-02"), s.EndDate.Format("2006-01-02")),
			fmt.Sprintf("%d", s.CommittedPoints),
			fmt.Sprintf("%d", s.CompletedPoints),
			fmt.Sprintf("%d", s.Capacity),
		})
	}
	return RenderTable(headers, rows)
}

func sprintStatusStyle(status domain.SprintStatus) lipgloss.Style {
	switch status {
	case domain.SprintActive:
		return StyleGreen
	case domain.SprintCompleted:
		return StyleBlue
	case domain.SprintArchived:
		return StyleDim
	default:
		return StyleYellow
	}
}

// FormatSprintReport renders the sprint status view: goal, dates, progress
// bar, point totals, health and histograms.
func FormatSprintReport(r *metrics.SprintSummary, health metrics.Health) string {
	var b strings.Builder

	b.WriteString(Header(r.SprintName))
	b.WriteString("\n")
	b.WriteString(HealthIndicator(health.Level))
	b.WriteString("  " + Dim(health.Reason) + "\n\n")

	pct := 0.0
	if r.CommittedPoints > 0 {
		pct = float64(r.CompletedPoints) / float64(r.CommittedPoints)
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Progress:"), RenderProgress(pct, 24)))
	b.WriteString(fmt.Sprintf("%s %d/%d points (capacity %d)\n",
		Dim("Points:  "), r.CompletedPoints, r.CommittedPoints, r.Capacity))
	if r.ScopeCreep != 0 {
		style := StyleYellow
		if r.ScopeCreep < 0 {
			style = StyleDim
		}
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Scope:   "),
			style.Render(fmt.Sprintf("%+d points since start", r.ScopeCreep))))
	}
	b.WriteString(fmt.Sprintf("%s %d of %d days left, %d tasks\n",
		Dim("Schedule:"), r.DaysRemaining, r.TotalDays, r.TasksTotal))
	if r.AverageCycleTime != nil {
		b.WriteString(fmt.Sprintf("%s %.1f days\n", Dim("Cycle:   "),
			r.AverageCycleTime.Hours()/24))
	}

	if len(r.TasksByStatus) > 0 {
		b.WriteString("\n" + Bold("By status") + "\n")
		for _, status := range []domain.TaskStatus{
			domain.TaskBacklog, domain.TaskTodo, domain.TaskInProgress,
			domain.TaskInReview, domain.TaskInTesting, domain.TaskDone,
			domain.TaskBlocked,
		} {
			if n := r.TasksByStatus[status]; n > 0 {
				b.WriteString(fmt.Sprintf("  %-12s %d\n",
					StatusStyle(status).Render(string(status)), n))
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatBurndown renders the burndown series as a right-aligned day chart:
// one row per day with remaining points, an ideal marker and a bar.
func FormatBurndown(series []metrics.BurndownPoint) string {
	if len(series) == 0 {
		return Dim("No burndown data.")
	}

	maxPts := 0
	for _, p := range series {
		if p.Remaining > maxPts {
			maxPts = p.Remaining
		}
		if ideal := int(p.Ideal); ideal > maxPts {
			maxPts = ideal
		}
	}
	if maxPts == 0 {
		maxPts = 1
	}

	const barWidth = 30
	var b strings.Builder
	b.WriteString(Header("Burndown"))
	b.WriteString("\n")
	for _, p := range series {
		// Remaining goes negative when an over-delivered sprint burns past
		// its commitment; the bar bottoms out at zero while the number
		// column keeps the sign.
		filled := p.Remaining * barWidth / maxPts
		if filled < 0 {
			filled = 0
		}
		bar := strings.Repeat(filledBlock, filled)
		idealCol := int(p.Ideal) * barWidth / maxPts
		row := []rune(fmt.Sprintf("%-*s", barWidth, bar))
		if idealCol >= 0 && idealCol < len(row) && row[idealCol] == ' ' {
			row[idealCol] = '·'
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			Dim(p.Date.Format("01-02")),
			StyleBlue.Render(string(row)),
			fmt.Sprintf("%3d", p.Remaining)))
	}
	b.WriteString(Dim(fmt.Sprintf("· ideal, %s remaining", filledBlock)))
	return b.String()
}

// FormatVelocity renders the velocity chart over completed sprints.
func FormatVelocity(report *metrics.VelocityReport) string {
	if len(report.Sprints) == 0 {
		return Dim("No completed sprints yet.")
	}

	maxPts := 1
	for _, p := range report.Sprints {
		if p.CompletedPoints > maxPts {
			maxPts = p.CompletedPoints
		}
	}

	const barWidth = 30
	var b strings.Builder
	b.WriteString(Header("Velocity"))
	b.WriteString("\n")
	for _, p := range report.Sprints {
		bar := strings.Repeat(filledBlock, p.CompletedPoints*barWidth/maxPts)
		b.WriteString(fmt.Sprintf("%-20s %s %d/%d (%d%%)\n",
			p.SprintName,
			StyleGreen.Render(bar),
			p.CompletedPoints, p.CommittedPoints, p.PercentageCompleted))
	}
	b.WriteString(fmt.Sprintf("%s %d points/sprint", Bold("Average:"), report.AverageVelocity))
	return b.String()
}

// FormatWorkload renders the per-assignee task distribution.
func FormatWorkload(workload []metrics.AssigneeWorkload) string {
	if len(workload) == 0 {
		return Dim("No assigned tasks.")
	}

	headers := []string{"ASSIGNEE", "TOTAL", "IN PROGRESS", "DONE", "BLOCKED"}
	rows := make([][]string, 0, len(workload))
	for _, w := range workload {
		rows = append(rows, []string{
			w.AssigneeID,
			fmt.Sprintf("%d", w.Total),
			fmt.Sprintf("%d", w.ByStatus[domain.TaskInProgress]),
			fmt.Sprintf("%d", w.ByStatus[domain.TaskDone]),
			fmt.Sprintf("%d", w.ByStatus[domain.TaskBlocked]),
		})
	}
	return RenderTable(headers, rows)
}
