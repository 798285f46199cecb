package domain

import "time"

// AcceptanceCriterion is one checkable item on a task's definition of done.
type AcceptanceCriterion struct {
	Text      string
	Completed bool
}

type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Type        TaskType
	Priority    TaskPriority
	Status      TaskStatus

	StoryPoints *int
	Assignees   []string
	ReporterID  string
	SprintID    *string
	ParentID    *string
	Tags        []string

	DueDate            *time.Time
	AcceptanceCriteria []AcceptanceCriterion
	EstimatedHours     *float64
	ActualHours        *float64

	CreatedAt   time.Time
	UpdatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// InSprint reports whether the task is currently assigned to the given sprint.
func (t *Task) InSprint(sprintID string) bool {
	return t.SprintID != nil && *t.SprintID == sprintID
}

// Points returns the task's story points, treating unestimated tasks as 0.
func (t *Task) Points() int {
	if t.StoryPoints == nil {
		return 0
	}
	return *t.StoryPoints
}

// CanParent reports whether this task may be the parent of another task.
// Only epics and stories may have children.
func (t *Task) CanParent() bool {
	return t.Type == TypeEpic || t.Type == TypeStory
}

// ApplyStatus moves the task to newStatus and maintains the timestamp
// invariants: CompletedAt is set exactly when the task is done, and
// StartedAt records the first entry into in_progress (it is never cleared,
// so cycle time survives a done → reopened → done round trip).
func (t *Task) ApplyStatus(newStatus TaskStatus, now time.Time) {
	prev := t.Status
	t.Status = newStatus
	t.UpdatedAt = now

	if newStatus == TaskDone {
		if prev != TaskDone || t.CompletedAt == nil {
			completed := now
			t.CompletedAt = &completed
		}
	} else if prev == TaskDone {
		t.CompletedAt = nil
	}

	if newStatus == TaskInProgress && t.StartedAt == nil {
		started := now
		t.StartedAt = &started
	}
}

// Archive soft-deletes the task. Archived is terminal; the record is kept.
func (t *Task) Archive(now time.Time) {
	t.ApplyStatus(TaskArchived, now)
}
