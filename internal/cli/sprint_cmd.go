package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/danielbarros/scrumcore/internal/cli/formatter"
	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/spf13/cobra"
)

func newSprintCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "Manage sprints",
	}

	cmd.AddCommand(
		newSprintAddCmd(app),
		newSprintListCmd(app),
		newSprintUpdateCmd(app),
		newSprintStartCmd(app),
		newSprintCompleteCmd(app),
		newSprintArchiveCmd(app),
		newSprintRemoveCmd(app),
		newSprintStatusCmd(app),
		newSprintBurndownCmd(app),
		newSprintVelocityCmd(app),
	)

	return cmd
}

func newSprintAddCmd(app *App) *cobra.Command {
	var goal, start, end string
	var capacity int

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a new sprint in planning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate, err := time.Parse("2006-01-02", end)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", end, err)
			}

			s := &domain.Sprint{
				ProjectID: app.Config.Project,
				Name:      args[0],
				Goal:      goal,
				StartDate: startDate,
				EndDate:   endDate,
				Capacity:  capacity,
			}
			if err := app.Sprints.Create(context.Background(), s); err != nil {
				return err
			}
			fmt.Printf("Created sprint %s [%s]\n", s.Name, s.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "Sprint goal")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&capacity, "capacity", 20, "Story-point capacity")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newSprintListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			sprints, err := app.Sprints.ListByProject(context.Background(), app.Config.Project, all)
			if err != nil {
				return err
			}
			if len(sprints) == 0 {
				fmt.Println("No sprints found.")
				return nil
			}
			fmt.Println(formatter.FormatSprintList(sprints))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived sprints")

	return cmd
}

func newSprintUpdateCmd(app *App) *cobra.Command {
	var name, goal, start, end string
	var capacity int

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update sprint fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sprintID, err := resolveSprintID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var patch domain.SprintPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("goal") {
				patch.Goal = &goal
			}
			if cmd.Flags().Changed("capacity") {
				patch.Capacity = &capacity
			}
			if start != "" {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				patch.StartDate = &startDate
			}
			if end != "" {
				endDate, err := time.Parse("2006-01-02", end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
				patch.EndDate = &endDate
			}

			s, err := app.Sprints.ApplyPatch(ctx, sprintID, patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated sprint %s [%s]\n", s.Name, s.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&goal, "goal", "", "New goal")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "New story-point capacity")

	return cmd
}

func newSprintStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start ID",
		Short: "Start a planning sprint, locking in committed points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sprintID, err := resolveSprintID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Sprints.Start(ctx, sprintID)
			if err != nil {
				return err
			}
			fmt.Printf("Started %s with %d committed points (capacity %d)\n",
				s.Name, s.CommittedPoints, s.Capacity)
			if s.IsOverCapacity() {
				fmt.Println(formatter.Dim("Warning: committed points exceed capacity."))
			}
			return nil
		},
	}
}

func newSprintCompleteCmd(app *App) *cobra.Command {
	var rolloverTo string
	var toBacklog bool

	cmd := &cobra.Command{
		Use:   "complete ID",
		Short: "Complete an active sprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sprintID, err := resolveSprintID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Sprints.Complete(ctx, sprintID)
			if err != nil {
				return err
			}
			fmt.Printf("Completed %s: %d/%d points\n", s.Name, s.CompletedPoints, s.CommittedPoints)

			if rolloverTo == "" && !toBacklog {
				return nil
			}

			// Roll unfinished work forward.
			tasks, err := app.Tasks.ListBySprint(ctx, sprintID)
			if err != nil {
				return err
			}
			var unfinished []string
			for _, t := range tasks {
				if t.Status != domain.TaskDone && t.Status != domain.TaskCancelled && t.Status != domain.TaskArchived {
					unfinished = append(unfinished, t.ID)
				}
			}
			if len(unfinished) == 0 {
				return nil
			}

			var target *string
			if rolloverTo != "" {
				targetID, err := resolveSprintID(ctx, app, rolloverTo)
				if err != nil {
					return err
				}
				target = &targetID
			}
			if err := app.Sprints.ReassignTasks(ctx, unfinished, target); err != nil {
				return err
			}
			if target == nil {
				fmt.Printf("Moved %d unfinished tasks to the backlog\n", len(unfinished))
			} else {
				fmt.Printf("Rolled %d unfinished tasks into %s\n", len(unfinished), (*target)[:8])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rolloverTo, "rollover-to", "", "Move unfinished tasks into this sprint")
	cmd.Flags().BoolVar(&toBacklog, "to-backlog", false, "Move unfinished tasks to the backlog")

	return cmd
}

func newSprintArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a completed or planning sprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sprintID, err := resolveSprintID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Sprints.Archive(ctx, sprintID)
			if err != nil {
				return err
			}
			fmt.Printf("Archived sprint %s\n", s.Name)
			return nil
		},
	}
}

func newSprintRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a planning sprint, returning its tasks to the backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sprintID, err := resolveSprintID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Sprints.Delete(ctx, sprintID); err != nil {
				return err
			}
			fmt.Printf("Deleted sprint %s; its tasks are back in the backlog\n", sprintID[:8])
			return nil
		},
	}
}

func newSprintStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID",
		Short: "Show sprint summary and health",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sprintID, err := resolveSprintID(ctx, app, args[0])
			if err != nil {
				return err
			}
			report, err := app.Metrics.SprintReport(ctx, sprintID, time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatSprintReport(&report.Summary, report.Health))
			return nil
		},
	}
}

func newSprintBurndownCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "burndown ID",
		Short: "Show the sprint burndown chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sprintID, err := resolveSprintID(ctx, app, args[0])
			if err != nil {
				return err
			}
			series, err := app.Metrics.Burndown(ctx, sprintID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatBurndown(series))
			return nil
		},
	}
}

func newSprintVelocityCmd(app *App) *cobra.Command {
	var window int

	cmd := &cobra.Command{
		Use:   "velocity",
		Short: "Show velocity over recently completed sprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("window") {
				window = app.Config.VelocityWindow
			}
			report, err := app.Metrics.Velocity(context.Background(), app.Config.Project, window)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatVelocity(report))
			return nil
		},
	}

	cmd.Flags().IntVar(&window, "window", 6, "How many completed sprints to include")

	return cmd
}

func newWorkloadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "workload",
		Short: "Show task distribution across assignees",
		RunE: func(cmd *cobra.Command, args []string) error {
			workload, err := app.Metrics.Workload(context.Background(), app.Config.Project)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatWorkload(workload))
			return nil
		},
	}
}
