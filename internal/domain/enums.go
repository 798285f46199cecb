package domain

type TaskStatus string

const (
	TaskBacklog    TaskStatus = "backlog"
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskInReview   TaskStatus = "in_review"
	TaskInTesting  TaskStatus = "in_testing"
	TaskDone       TaskStatus = "done"
	TaskBlocked    TaskStatus = "blocked"
	TaskCancelled  TaskStatus = "cancelled"
	TaskArchived   TaskStatus = "archived"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[TaskStatus]bool{
	TaskBacklog: true, TaskTodo: true, TaskInProgress: true,
	TaskInReview: true, TaskInTesting: true, TaskDone: true,
	TaskBlocked: true, TaskCancelled: true, TaskArchived: true,
}

type TaskType string

const (
	TypeStory TaskType = "story"
	TypeTask  TaskType = "task"
	TypeBug   TaskType = "bug"
	TypeEpic  TaskType = "epic"
	TypeSpike TaskType = "spike"
)

var ValidTaskTypes = map[TaskType]bool{
	TypeStory: true, TypeTask: true, TypeBug: true,
	TypeEpic: true, TypeSpike: true,
}

type TaskPriority string

const (
	PriorityCritical TaskPriority = "critical"
	PriorityHigh     TaskPriority = "high"
	PriorityMedium   TaskPriority = "medium"
	PriorityLow      TaskPriority = "low"
)

var ValidTaskPriorities = map[TaskPriority]bool{
	PriorityCritical: true, PriorityHigh: true,
	PriorityMedium: true, PriorityLow: true,
}

// ValidStoryPoints is the accepted Fibonacci-like estimate scale.
var ValidStoryPoints = map[int]bool{
	1: true, 2: true, 3: true, 5: true, 8: true, 13: true, 21: true,
}

type SprintStatus string

const (
	SprintPlanning  SprintStatus = "planning"
	SprintActive    SprintStatus = "active"
	SprintCompleted SprintStatus = "completed"
	SprintArchived  SprintStatus = "archived"
)

var ValidSprintStatuses = map[SprintStatus]bool{
	SprintPlanning: true, SprintActive: true,
	SprintCompleted: true, SprintArchived: true,
}

type HealthLevel string

const (
	HealthOnTrack HealthLevel = "on-track"
	HealthAtRisk  HealthLevel = "at-risk"
	HealthBehind  HealthLevel = "behind"
)

type RetroFormat string

const (
	FormatMadSadGlad        RetroFormat = "mad-sad-glad"
	FormatWhatWentWell      RetroFormat = "what-went-well"
	FormatStartStopContinue RetroFormat = "start-stop-continue"
	Format4Ls               RetroFormat = "4ls"
)

// RetroFormatColumns fixes the named column set for each retrospective format.
var RetroFormatColumns = map[RetroFormat][]string{
	FormatMadSadGlad:        {"mad", "sad", "glad"},
	FormatWhatWentWell:      {"went-well", "needs-improvement"},
	FormatStartStopContinue: {"start", "stop", "continue"},
	Format4Ls:               {"liked", "learned", "lacked", "longed-for"},
}

// FormatHasColumn reports whether column belongs to the format's column set.
func FormatHasColumn(format RetroFormat, column string) bool {
	for _, c := range RetroFormatColumns[format] {
		if c == column {
			return true
		}
	}
	return false
}

type RetroPhase string

const (
	PhaseBrainstorm RetroPhase = "brainstorm"
	PhaseVoting     RetroPhase = "voting"
	PhaseDiscussion RetroPhase = "discussion"
	PhaseClosed     RetroPhase = "closed"
)

var ValidRetroPhases = map[RetroPhase]bool{
	PhaseBrainstorm: true, PhaseVoting: true,
	PhaseDiscussion: true, PhaseClosed: true,
}

type ActionStatus string

const (
	ActionTodo       ActionStatus = "todo"
	ActionInProgress ActionStatus = "in_progress"
	ActionDone       ActionStatus = "done"
)

var ValidActionStatuses = map[ActionStatus]bool{
	ActionTodo: true, ActionInProgress: true, ActionDone: true,
}
