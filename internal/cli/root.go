package cli

import (
	"os"

	"github.com/danielbarros/scrumcore/internal/config"
	"github.com/danielbarros/scrumcore/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tasks   service.TaskService
	Sprints service.SprintService
	Board   service.BoardService
	Retro   service.RetroService
	Metrics service.MetricsService
	Import  service.ImportService

	Config config.Config

	// Actor is the user id commands act as; votes and facilitator checks
	// run against it.
	Actor string
}

// NewRootCmd creates the top-level "scrumcore" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "scrumcore",
		Short: "Sprint and task lifecycle tracker",
	}

	root.PersistentFlags().StringVar(&app.Actor, "as", defaultActor(app.Actor),
		"User id to act as (defaults to $SCRUMCORE_USER or $USER)")

	root.AddCommand(
		newTaskCmd(app),
		newSprintCmd(app),
		newBoardCmd(app),
		newRetroCmd(app),
		newWorkloadCmd(app),
		newImportCmd(app),
	)

	return root
}

func defaultActor(current string) string {
	if current != "" {
		return current
	}
	if u := os.Getenv("SCRUMCORE_USER"); u != "" {
		return u
	}
	return os.Getenv("USER")
}
