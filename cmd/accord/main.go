package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/bharathg-scrimpify/accord/internal/cli"
	"github.com/bharathg-scrimpify/accord/internal/db"
	"github.com/bharathg-scrimpify/accord/internal/repository"
	"github.com/bharathg-scrimpify/accord/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.accord/accord.db
	dbPath := os.Getenv("ACCORD_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".accord", "accord.db")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	contractRepo := repository.NewSQLiteContractRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// ACCORD_DEBUG enables use-case telemetry on stderr.
	var observers []service.UseCaseObserver
	if os.Getenv("ACCORD_DEBUG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Contracts: service.NewContractService(contractRepo, uow, observers...),
		Payments:  service.NewPaymentService(contractRepo, uow, observers...),
		Admin:     service.NewAdminService(uow, observers...),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
