package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/danielbarros/scrumcore/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var sprint string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the kanban board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var sprintID *string
			if sprint != "" {
				id, err := resolveSprintID(ctx, app, sprint)
				if err != nil {
					return err
				}
				sprintID = &id
			}

			if interactive {
				model, err := newBoardModel(ctx, app, sprintID)
				if err != nil {
					return err
				}
				_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
				return err
			}

			columns, err := app.Board.Columns(ctx, app.Config.Project, sprintID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatBoard(columns))
			return nil
		},
	}

	cmd.Flags().StringVar(&sprint, "sprint", "", "Scope the board to one sprint")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the interactive board")

	cmd.AddCommand(newBoardMoveCmd(app))

	return cmd
}

func newBoardMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move TASK TARGET",
		Short: "Drop a task onto a column or another card",
		Long: "TARGET is a column name (todo, in_progress, ...) or another task's id,\n" +
			"in which case the task joins that card's column.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}

			res, err := app.Board.MoveTask(ctx, taskID, args[1])
			if err != nil {
				return err
			}
			if res.NoOp {
				fmt.Printf("%s is already in %s\n", res.Task.Title, res.To)
				return nil
			}
			fmt.Printf("Moved %s: %s → %s\n", res.Task.Title, res.From, res.To)
			if res.WIPWarning != "" {
				fmt.Println(formatter.StyleYellow.Render("Warning: " + res.WIPWarning))
			}
			return nil
		},
	}
}
