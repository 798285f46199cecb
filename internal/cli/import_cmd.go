package cli

import (
	"context"
	"fmt"

	"github.com/danielbarros/scrumcore/internal/cli/formatter"
	"github.com/danielbarros/scrumcore/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Bulk-import sprints and tasks from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := importer.LoadBacklogFile(args[0])
			if err != nil {
				return err
			}

			if dryRun {
				if errs := importer.ValidateBacklogFile(file); len(errs) > 0 {
					for _, e := range errs {
						fmt.Println(formatter.Dim("  " + e.Error()))
					}
					return fmt.Errorf("%d validation error(s)", len(errs))
				}
				fmt.Printf("OK: %d sprint(s), %d task(s) ready to import\n",
					len(file.Sprints), len(file.Tasks))
				return nil
			}

			summary, err := app.Import.ImportBacklog(
				context.Background(), app.Config.Project, app.Actor, file)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d sprint(s) and %d task(s)\n",
				summary.SprintsCreated, summary.TasksCreated)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without writing anything")

	return cmd
}
