package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jask/catalog/internal/config"
	"github.com/jask/catalog/internal/database"
	"github.com/jask/catalog/internal/database/repository"
	"github.com/jask/catalog/internal/keyboard"
	"github.com/jask/catalog/internal/logging"
	"github.com/jask/catalog/internal/overlay"
	"github.com/jask/catalog/internal/tui"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "catalog",
	Short:         "Browse prompts, agents, powers, hooks and steering docs",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return runLatest(cmd, 0)
		}
		return runTUI(cmd)
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(tuiCmd, importCmd, listCmd, latestCmd, configCmd, versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

// openStore loads config and returns a migrated database, seeded with the
// sample items when the config asks for it.
func openStore(ctx context.Context) (config.Config, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	db, err := database.OpenAndMigrate(cfg.Database.Path)
	if err != nil {
		return config.Config{}, nil, err
	}
	if cfg.Content.SeedSamples {
		if err := database.SeedDefaults(ctx, db); err != nil {
			db.Close()
			return config.Config{}, nil, fmt.Errorf("seed samples: %w", err)
		}
	}
	return cfg, db, nil
}

func runTUI(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	hub := keyboard.NewHub()
	search := overlay.New(overlay.WithModifier(cfg.UI.SearchModifier))
	search.Mount(hub)
	defer search.Teardown()

	app, err := tui.New(overlay.WithController(ctx, search), repository.NewContentRepo(db), tui.Options{
		UI:     cfg.UI,
		Hub:    hub,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	logger.WithField("db", cfg.Database.Path).Info("starting catalog")

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
