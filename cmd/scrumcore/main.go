package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielbarros/scrumcore/internal/cli"
	"github.com/danielbarros/scrumcore/internal/config"
	"github.com/danielbarros/scrumcore/internal/db"
	"github.com/danielbarros/scrumcore/internal/repository"
	"github.com/danielbarros/scrumcore/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// DB path: env var or default ~/.scrumcore/scrumcore.db
	dbPath := os.Getenv("SCRUMCORE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".scrumcore", "scrumcore.db")
	}

	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	taskRepo := repository.NewSQLiteTaskRepo(database)
	sprintRepo := repository.NewSQLiteSprintRepo(database)
	sessionRepo := repository.NewSQLiteRetroSessionRepo(database)
	cardRepo := repository.NewSQLiteRetroCardRepo(database)
	actionRepo := repository.NewSQLiteRetroActionRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case telemetry goes to stderr, and only when it is a terminal.
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("SCRUMCORE_DEBUG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	taskSvc := service.NewTaskService(taskRepo, sprintRepo, observer)

	app := &cli.App{
		Tasks:   taskSvc,
		Sprints: service.NewSprintService(sprintRepo, taskRepo, uow, observer),
		Board:   service.NewBoardService(taskRepo, taskSvc, cfg.BoardWIPLimits()),
		Retro:   service.NewRetroService(sessionRepo, cardRepo, actionRepo, sprintRepo, observer),
		Metrics: service.NewMetricsService(sprintRepo, taskRepo),
		Import:  service.NewImportService(uow, observer),
		Config:  cfg,
	}

	return cli.NewRootCmd(app).Execute()
}
