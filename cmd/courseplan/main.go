package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/courseplan/internal/catalog"
	"github.com/alexanderramin/courseplan/internal/cli"
	"github.com/alexanderramin/courseplan/internal/config"
	"github.com/alexanderramin/courseplan/internal/db"
	"github.com/alexanderramin/courseplan/internal/logger"
	"github.com/alexanderramin/courseplan/internal/repository"
	"github.com/alexanderramin/courseplan/internal/service"
	"github.com/alexanderramin/courseplan/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	kv := repository.NewSQLiteKVRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	plannerStore := store.NewPlannerStore(kv,
		store.WithUnitOfWork(uow),
		store.WithSlotsPerYear(cfg.SlotsPerYear),
		store.WithLogger(log),
	)
	source := catalog.NewSource(cfg.CatalogCandidates,
		catalog.WithAttemptTimeout(cfg.FetchTimeout()),
		catalog.WithLogger(log),
	)
	observer := service.NewLogUseCaseObserver(log)

	app := &cli.App{
		Catalog:    service.NewCatalogService(source, observer),
		Planner:    service.NewPlannerService(plannerStore, observer),
		Prefs:      store.NewPrefsStore(kv, log),
		Log:        log,
		ListenAddr: cfg.ListenAddr,
	}

	// Detect interactive terminal for forms and the browser.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}
