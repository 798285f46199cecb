package domain

import "time"

// Patch structs enumerate exactly which fields a client may change via
// partial update. Nil pointers mean "leave unchanged"; nullable entity
// fields get an explicit Clear flag so "set to nothing" is distinct from
// "not sent". Derived fields (CompletedAt, StartedAt, CommittedPoints,
// CompletedPoints) have no patch representation on purpose.

type TaskPatch struct {
	Title       *string
	Description *string
	Type        *TaskType
	Priority    *TaskPriority

	StoryPoints      *int
	ClearStoryPoints bool

	Assignees *[]string
	Tags      *[]string

	ParentID    *string
	ClearParent bool

	DueDate      *time.Time
	ClearDueDate bool

	AcceptanceCriteria *[]AcceptanceCriterion
	EstimatedHours     *float64
	ActualHours        *float64
}

type SprintPatch struct {
	Name      *string
	Goal      *string
	StartDate *time.Time
	EndDate   *time.Time
	Capacity  *int
}

type ActionItemPatch struct {
	Title       *string
	Description *string

	AssigneeID    *string
	ClearAssignee bool

	Status *ActionStatus

	DueDate      *time.Time
	ClearDueDate bool

	CardIDs *[]string
}
