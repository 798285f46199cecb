package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/danielbarros/scrumcore/internal/cli/formatter"
	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/spf13/cobra"
)

func newRetroCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retro",
		Short: "Run sprint retrospectives",
	}

	cmd.AddCommand(
		newRetroCreateCmd(app),
		newRetroShowCmd(app),
		newRetroPhaseCmd(app),
		newRetroCardCmd(app),
		newRetroVoteCmd(app),
		newRetroUnvoteCmd(app),
		newRetroActionCmd(app),
		newRetroRemoveCmd(app),
	)

	return cmd
}

func newRetroCreateCmd(app *App) *cobra.Command {
	var format string
	var votes int
	var anonymous bool

	cmd := &cobra.Command{
		Use:   "create SPRINT",
		Short: "Open a retrospective for a sprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sprintID, err := resolveSprintID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("format") {
				format = app.Config.Retro.Format
			}
			if !cmd.Flags().Changed("votes") {
				votes = app.Config.Retro.VotesPerPerson
			}
			if !cmd.Flags().Changed("anonymous") {
				anonymous = app.Config.Retro.AllowAnonymous
			}

			session, err := app.Retro.CreateSession(ctx, sprintID, domain.RetroFormat(format), app.Actor, domain.RetroSettings{
				AllowAnonymous: anonymous,
				VotesPerPerson: votes,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Opened %s retro [%s], %d votes per person\n",
				session.Format, session.ID[:8], session.Settings.VotesPerPerson)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "mad-sad-glad", "Retro format (mad-sad-glad|what-went-well|start-stop-continue|4ls)")
	cmd.Flags().IntVar(&votes, "votes", 3, "Votes per person")
	cmd.Flags().BoolVar(&anonymous, "anonymous", true, "Allow anonymous cards")

	return cmd
}

func newRetroShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show SESSION",
		Short: "Show the retro board (session or sprint id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			session, err := app.Retro.GetSession(ctx, sessionID)
			if err != nil {
				return err
			}
			cards, err := app.Retro.ListCards(ctx, sessionID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatRetroBoard(session, cards))
			return nil
		},
	}
}

func newRetroPhaseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "phase SESSION PHASE",
		Short: "Advance the session phase (facilitator only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phase := domain.RetroPhase(args[1])
			if err := app.Retro.UpdatePhase(ctx, sessionID, phase, app.Actor); err != nil {
				return err
			}
			fmt.Printf("Session is now in the %s phase\n", phase)
			return nil
		},
	}
}

func newRetroCardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage feedback cards",
	}

	cmd.AddCommand(
		newRetroCardAddCmd(app),
		newRetroCardMoveCmd(app),
		newRetroCardRemoveCmd(app),
	)

	return cmd
}

func newRetroCardAddCmd(app *App) *cobra.Command {
	var column, content string
	var anonymous bool

	cmd := &cobra.Command{
		Use:   "add SESSION",
		Short: "Add a feedback card (interactive form when no flags given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			session, err := app.Retro.GetSession(ctx, sessionID)
			if err != nil {
				return err
			}

			if content == "" {
				if err := cardForm(session, &column, &content, &anonymous).Run(); err != nil {
					return err
				}
			}

			card, err := app.Retro.AddCard(ctx, sessionID, column, content, app.Actor, anonymous)
			if err != nil {
				return err
			}
			fmt.Printf("Added card to %s [%s]\n", card.Column, card.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Target column")
	cmd.Flags().StringVar(&content, "content", "", "Card text")
	cmd.Flags().BoolVar(&anonymous, "anonymous", false, "Post anonymously")

	return cmd
}

// cardForm builds the interactive card entry form for a session's columns.
func cardForm(session *domain.RetroSession, column, content *string, anonymous *bool) *huh.Form {
	columns := session.Columns()
	options := make([]huh.Option[string], 0, len(columns))
	for _, c := range columns {
		options = append(options, huh.NewOption(c, c))
	}

	fields := []huh.Field{
		huh.NewSelect[string]().
			Title("Column").
			Options(options...).
			Value(column),
		huh.NewText().
			Title("What do you want to say?").
			CharLimit(500).
			Value(content),
	}
	if session.Settings.AllowAnonymous {
		fields = append(fields, huh.NewConfirm().
			Title("Post anonymously?").
			Value(anonymous))
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(scrumcoreHuhTheme()).
		WithShowHelp(false)
}

func scrumcoreHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newRetroCardMoveCmd(app *App) *cobra.Command {
	var order int

	cmd := &cobra.Command{
		Use:   "move CARD COLUMN",
		Short: "Move a card to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := app.Retro.MoveCard(context.Background(), args[0], args[1], order)
			if err != nil {
				return err
			}
			fmt.Printf("Moved card to %s\n", card.Column)
			return nil
		},
	}

	cmd.Flags().IntVar(&order, "order", 0, "Position within the column")

	return cmd
}

func newRetroCardRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove CARD",
		Short: "Delete a card (author only, unless anonymous)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Retro.DeleteCard(context.Background(), args[0], app.Actor); err != nil {
				return err
			}
			fmt.Println("Card removed.")
			return nil
		},
	}
}

func newRetroVoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "vote CARD",
		Short: "Vote for a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Retro.Vote(context.Background(), args[0], app.Actor); err != nil {
				return err
			}
			fmt.Println("Vote recorded.")
			return nil
		},
	}
}

func newRetroUnvoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unvote CARD",
		Short: "Withdraw a vote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Retro.Unvote(context.Background(), args[0], app.Actor); err != nil {
				return err
			}
			fmt.Println("Vote withdrawn.")
			return nil
		},
	}
}

func newRetroRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SESSION",
		Short: "Delete a retro session and everything in it (facilitator only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Retro.DeleteSession(ctx, session, app.Actor); err != nil {
				return err
			}
			fmt.Println("Retro removed.")
			return nil
		},
	}
}

func newRetroActionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Manage action items",
	}

	cmd.AddCommand(
		newRetroActionAddCmd(app),
		newRetroActionListCmd(app),
		newRetroActionDoneCmd(app),
		newRetroActionRemoveCmd(app),
	)

	return cmd
}

func newRetroActionAddCmd(app *App) *cobra.Command {
	var assignee, due, description string
	var cards []string

	cmd := &cobra.Command{
		Use:   "add SESSION TITLE",
		Short: "Create an action item from the retro",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}

			action := &domain.RetroActionItem{
				SessionID:   sessionID,
				Title:       args[1],
				Description: description,
				CardIDs:     cards,
			}
			if assignee != "" {
				action.AssigneeID = &assignee
			}
			if due != "" {
				dueDate, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				action.DueDate = &dueDate
			}

			if err := app.Retro.CreateAction(ctx, action); err != nil {
				return err
			}
			fmt.Printf("Created action %s [%s]\n", action.Title, action.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&assignee, "assignee", "", "Owner of the action")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "description", "", "Action description")
	cmd.Flags().StringSliceVar(&cards, "card", nil, "Source card id (repeatable)")

	return cmd
}

func newRetroActionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list SESSION",
		Short: "List a session's action items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			actions, err := app.Retro.ListActions(ctx, sessionID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatActionList(actions))
			return nil
		},
	}
}

func newRetroActionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete an action item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Retro.DeleteAction(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Action removed.")
			return nil
		},
	}
}

func newRetroActionDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark an action item done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := domain.ActionDone
			action, err := app.Retro.PatchAction(context.Background(), args[0], domain.ActionItemPatch{Status: &status})
			if err != nil {
				return err
			}
			fmt.Printf("Done: %s\n", action.Title)
			return nil
		},
	}
}
