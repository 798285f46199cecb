package metrics

import (
	"sort"

	"github.com/danielbarros/scrumcore/internal/domain"
)

// workloadTopN caps the workload view to the busiest assignees for display.
const workloadTopN = 10

// AssigneeWorkload buckets one assignee's tasks by status.
type AssigneeWorkload struct {
	AssigneeID string
	Total      int
	ByStatus   map[domain.TaskStatus]int
}

// Workload groups tasks by assignee, sorted by total task count descending
// (assignee id ascending on ties), capped to the top 10. A task with several
// assignees counts once for each; unassigned tasks are not represented.
func Workload(tasks []*domain.Task) []AssigneeWorkload {
	byAssignee := make(map[string]*AssigneeWorkload)
	for _, t := range tasks {
		for _, a := range t.Assignees {
			w, ok := byAssignee[a]
			if !ok {
				w = &AssigneeWorkload{
					AssigneeID: a,
					ByStatus:   make(map[domain.TaskStatus]int),
				}
				byAssignee[a] = w
			}
			w.Total++
			w.ByStatus[t.Status]++
		}
	}

	result := make([]AssigneeWorkload, 0, len(byAssignee))
	for _, w := range byAssignee {
		result = append(result, *w)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].AssigneeID < result[j].AssigneeID
	})

	if len(result) > workloadTopN {
		result = result[:workloadTopN]
	}
	return result
}
