package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/danielbarros/scrumcore/internal/cli/formatter"
	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskInspectCmd(app),
		newTaskUpdateCmd(app),
		newTaskMoveCmd(app),
		newTaskAssignCmd(app),
		newTaskArchiveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		typeStr, priority, sprint, parent, due, description string
		points                                              int
		assignees, tags                                     []string
	)

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Create a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			t := &domain.Task{
				ProjectID:   app.Config.Project,
				Title:       args[0],
				Description: description,
				Type:        domain.TaskType(typeStr),
				Priority:    domain.TaskPriority(priority),
				Assignees:   assignees,
				Tags:        tags,
				ReporterID:  app.Actor,
			}
			if cmd.Flags().Changed("points") {
				t.StoryPoints = &points
			}
			if sprint != "" {
				sprintID, err := resolveSprintID(ctx, app, sprint)
				if err != nil {
					return err
				}
				t.SprintID = &sprintID
			}
			if parent != "" {
				parentID, err := resolveTaskID(ctx, app, parent)
				if err != nil {
					return err
				}
				t.ParentID = &parentID
			}
			if due != "" {
				dueDate, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				t.DueDate = &dueDate
			}

			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Created task %s [%s]\n", t.Title, t.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&typeStr, "type", "task", "Task type (story|task|bug|epic|spike)")
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority (critical|high|medium|low)")
	cmd.Flags().IntVar(&points, "points", 0, "Story points (1,2,3,5,8,13,21)")
	cmd.Flags().StringSliceVar(&assignees, "assignee", nil, "Assignee user id (repeatable)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringVar(&sprint, "sprint", "", "Sprint to assign the task to")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent epic or story")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "description", "", "Task description")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var all, backlog bool
	var sprint string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var tasks []*domain.Task
			var err error
			switch {
			case backlog:
				tasks, err = app.Tasks.ListBacklog(ctx, app.Config.Project)
			case sprint != "":
				var sprintID string
				if sprintID, err = resolveSprintID(ctx, app, sprint); err != nil {
					return err
				}
				tasks, err = app.Tasks.ListBySprint(ctx, sprintID)
			default:
				tasks, err = app.Tasks.ListByProject(ctx, app.Config.Project, all)
			}
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}
			fmt.Println(formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived tasks")
	cmd.Flags().BoolVar(&backlog, "backlog", false, "Only unassigned, unarchived tasks")
	cmd.Flags().StringVar(&sprint, "sprint", "", "Only tasks in this sprint")

	return cmd
}

func newTaskInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatTaskDetail(t))
			return nil
		},
	}
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var (
		title, description, typeStr, priority, due string
		points                                     int
		assignees, tags                            []string
		clearPoints, clearDue, clearParent         bool
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}

			patch := domain.TaskPatch{
				ClearStoryPoints: clearPoints,
				ClearDueDate:     clearDue,
				ClearParent:      clearParent,
			}
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("type") {
				v := domain.TaskType(typeStr)
				patch.Type = &v
			}
			if cmd.Flags().Changed("priority") {
				v := domain.TaskPriority(priority)
				patch.Priority = &v
			}
			if cmd.Flags().Changed("points") {
				patch.StoryPoints = &points
			}
			if cmd.Flags().Changed("assignee") {
				patch.Assignees = &assignees
			}
			if cmd.Flags().Changed("tag") {
				patch.Tags = &tags
			}
			if due != "" {
				dueDate, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				patch.DueDate = &dueDate
			}

			t, err := app.Tasks.ApplyPatch(ctx, taskID, patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated task %s [%s]\n", t.Title, t.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&typeStr, "type", "", "New type")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	cmd.Flags().IntVar(&points, "points", 0, "New story points")
	cmd.Flags().StringSliceVar(&assignees, "assignee", nil, "Replace assignees")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Replace tags")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearPoints, "clear-points", false, "Remove the estimate")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	cmd.Flags().BoolVar(&clearParent, "clear-parent", false, "Detach from parent")

	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID STATUS",
		Short: "Move a task to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.UpdateStatus(ctx, taskID, domain.TaskStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("Moved %s to %s\n", t.Title, t.Status)
			return nil
		},
	}
}

func newTaskAssignCmd(app *App) *cobra.Command {
	var sprint string
	var toBacklog bool

	cmd := &cobra.Command{
		Use:   "assign ID",
		Short: "Assign a task to a sprint, or back to the backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var target *string
			if !toBacklog {
				if sprint == "" {
					return fmt.Errorf("either --sprint or --backlog is required")
				}
				sprintID, err := resolveSprintID(ctx, app, sprint)
				if err != nil {
					return err
				}
				target = &sprintID
			}

			t, err := app.Tasks.ReassignSprint(ctx, taskID, target)
			if err != nil {
				return err
			}
			if target == nil {
				fmt.Printf("Moved %s to the backlog\n", t.Title)
			} else {
				fmt.Printf("Assigned %s to sprint %s\n", t.Title, (*target)[:8])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sprint, "sprint", "", "Target sprint")
	cmd.Flags().BoolVar(&toBacklog, "backlog", false, "Unassign the task")

	return cmd
}

func newTaskArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a task (soft delete)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Archive(ctx, taskID); err != nil {
				return err
			}
			fmt.Printf("Archived task %s\n", taskID[:8])
			return nil
		},
	}
}
