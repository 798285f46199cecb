package importer

import (
	"fmt"
	"time"

	"github.com/danielbarros/scrumcore/internal/domain"
)

// ValidateBacklogFile checks the import file for errors before conversion.
// Returns a slice of all validation errors found. A parent_ref must point
// at a task defined earlier in the file, so forward references fail here
// rather than surfacing as missing parents after conversion.
func ValidateBacklogFile(file *BacklogFile) []error {
	var errs []error

	sprintRefs := make(map[string]bool)
	errs = append(errs, validateSprints(file.Sprints, sprintRefs)...)

	errs = append(errs, validateTasks(file.Tasks, sprintRefs)...)

	return errs
}

func validateSprints(sprints []SprintImport, refs map[string]bool) []error {
	var errs []error

	for i, s := range sprints {
		where := fmt.Sprintf("sprints[%d]", i)
		if s.Ref == "" {
			errs = append(errs, fmt.Errorf("%s: ref is required", where))
		} else if refs[s.Ref] {
			errs = append(errs, fmt.Errorf("%s: duplicate ref %q", where, s.Ref))
		} else {
			refs[s.Ref] = true
		}
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", where))
		}

		start, startErr := parseDate(s.StartDate)
		if s.StartDate == "" {
			errs = append(errs, fmt.Errorf("%s: start_date is required", where))
		} else if startErr != nil {
			errs = append(errs, fmt.Errorf("%s: invalid start_date %q (expected YYYY-MM-DD)", where, s.StartDate))
		}
		end, endErr := parseDate(s.EndDate)
		if s.EndDate == "" {
			errs = append(errs, fmt.Errorf("%s: end_date is required", where))
		} else if endErr != nil {
			errs = append(errs, fmt.Errorf("%s: invalid end_date %q (expected YYYY-MM-DD)", where, s.EndDate))
		} else if startErr == nil && s.StartDate != "" && !end.After(start) {
			errs = append(errs, fmt.Errorf("%s: end_date %q must be after start_date %q", where, s.EndDate, s.StartDate))
		}

		if s.Capacity != nil && *s.Capacity < 1 {
			errs = append(errs, fmt.Errorf("%s: capacity must be at least 1, got %d", where, *s.Capacity))
		}
	}

	return errs
}

func validateTasks(tasks []TaskImport, sprintRefs map[string]bool) []error {
	var errs []error

	taskTypes := make(map[string]domain.TaskType)
	for i, t := range tasks {
		where := fmt.Sprintf("tasks[%d]", i)
		if t.Ref == "" {
			errs = append(errs, fmt.Errorf("%s: ref is required", where))
		} else if _, dup := taskTypes[t.Ref]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate ref %q", where, t.Ref))
		}
		if t.Title == "" {
			errs = append(errs, fmt.Errorf("%s: title is required", where))
		}

		taskType := domain.TypeTask
		if t.Type != "" {
			taskType = domain.TaskType(t.Type)
			if !domain.ValidTaskTypes[taskType] {
				errs = append(errs, fmt.Errorf("%s: invalid type %q", where, t.Type))
			}
		}
		if t.Priority != "" && !domain.ValidTaskPriorities[domain.TaskPriority(t.Priority)] {
			errs = append(errs, fmt.Errorf("%s: invalid priority %q", where, t.Priority))
		}
		if t.Status != "" && !domain.ValidTaskStatuses[domain.TaskStatus(t.Status)] {
			errs = append(errs, fmt.Errorf("%s: invalid status %q", where, t.Status))
		}
		if t.Points != nil && !domain.ValidStoryPoints[*t.Points] {
			errs = append(errs, fmt.Errorf("%s: points %d not on the estimate scale", where, *t.Points))
		}

		if t.ParentRef != nil && *t.ParentRef != "" {
			parentType, ok := taskTypes[*t.ParentRef]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("%s: parent_ref %q does not match an earlier task", where, *t.ParentRef))
			case parentType != domain.TypeEpic && parentType != domain.TypeStory:
				errs = append(errs, fmt.Errorf("%s: parent %q is a %s, only epics and stories can have children", where, *t.ParentRef, parentType))
			}
		}
		if t.SprintRef != nil && *t.SprintRef != "" && !sprintRefs[*t.SprintRef] {
			errs = append(errs, fmt.Errorf("%s: unknown sprint_ref %q", where, *t.SprintRef))
		}
		if t.DueDate != nil {
			if _, err := parseDate(*t.DueDate); err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid due_date %q (expected YYYY-MM-DD)", where, *t.DueDate))
			}
		}

		if t.Ref != "" {
			taskTypes[t.Ref] = taskType
		}
	}

	return errs
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
