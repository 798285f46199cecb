package importer

import (
	"fmt"
	"time"

	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/google/uuid"
)

const defaultSprintCapacity = 20

// Backlog holds converted domain objects ready for persistence.
type Backlog struct {
	Sprints []*domain.Sprint
	Tasks   []*domain.Task
}

// Convert transforms a validated BacklogFile into domain objects.
// Call ValidateBacklogFile first; Convert assumes the file is valid.
// Imported tasks are reported by actorID unless the file says otherwise.
func Convert(file *BacklogFile, projectID, actorID string) (*Backlog, error) {
	now := time.Now().UTC()

	sprintIDs := make(map[string]string) // ref -> UUID

	sprints := make([]*domain.Sprint, 0, len(file.Sprints))
	for _, s := range file.Sprints {
		start, err := parseDate(s.StartDate)
		if err != nil {
			return nil, fmt.Errorf("parsing sprint %q start_date: %w", s.Ref, err)
		}
		end, err := parseDate(s.EndDate)
		if err != nil {
			return nil, fmt.Errorf("parsing sprint %q end_date: %w", s.Ref, err)
		}

		sprint := &domain.Sprint{
			ID:        uuid.New().String(),
			ProjectID: projectID,
			Name:      s.Name,
			Goal:      s.Goal,
			StartDate: start,
			EndDate:   end,
			Capacity:  domain.IntFromPtrWithDefault(defaultSprintCapacity, s.Capacity),
			Status:    domain.SprintPlanning,
			CreatedAt: now,
			UpdatedAt: now,
		}
		sprintIDs[s.Ref] = sprint.ID
		sprints = append(sprints, sprint)
	}

	taskIDs := make(map[string]string)

	tasks := make([]*domain.Task, 0, len(file.Tasks))
	for _, ti := range file.Tasks {
		task := &domain.Task{
			ID:          uuid.New().String(),
			ProjectID:   projectID,
			Title:       ti.Title,
			Description: ti.Description,
			Type:        domain.TaskType(domain.CoalesceStr(ti.Type, string(domain.TypeTask))),
			Priority:    domain.TaskPriority(domain.CoalesceStr(ti.Priority, string(domain.PriorityMedium))),
			Status:      domain.TaskBacklog,
			StoryPoints: ti.Points,
			Assignees:   ti.Assignees,
			ReporterID:  actorID,
			Tags:        ti.Tags,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		taskIDs[ti.Ref] = task.ID

		if ti.ParentRef != nil && *ti.ParentRef != "" {
			pid := taskIDs[*ti.ParentRef]
			task.ParentID = &pid
		}
		if ti.SprintRef != nil && *ti.SprintRef != "" {
			sid := sprintIDs[*ti.SprintRef]
			task.SprintID = &sid
		}
		if ti.DueDate != nil {
			due, err := parseDate(*ti.DueDate)
			if err != nil {
				return nil, fmt.Errorf("parsing task %q due_date: %w", ti.Ref, err)
			}
			task.DueDate = &due
		}
		for _, ac := range ti.AcceptanceCriteria {
			task.AcceptanceCriteria = append(task.AcceptanceCriteria, domain.AcceptanceCriterion{Text: ac})
		}

		// Route non-backlog statuses through the state machine so the
		// StartedAt/CompletedAt invariants hold for imported tasks too.
		if ti.Status != "" && domain.TaskStatus(ti.Status) != domain.TaskBacklog {
			task.ApplyStatus(domain.TaskStatus(ti.Status), now)
		}

		tasks = append(tasks, task)
	}

	// Imported files may already carry done tasks inside a sprint, so the
	// sprint point bookkeeping has to be settled before anything persists.
	for _, sp := range sprints {
		var inSprint []*domain.Task
		for _, t := range tasks {
			if t.InSprint(sp.ID) {
				inSprint = append(inSprint, t)
			}
		}
		sp.RecomputeCompleted(inSprint, now)
	}

	return &Backlog{Sprints: sprints, Tasks: tasks}, nil
}
