package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jask/catalog/internal/config"
	"github.com/jask/catalog/internal/content"
	"github.com/jask/catalog/internal/database"
	"github.com/jask/catalog/internal/database/repository"
	"github.com/jask/catalog/internal/loader"
	"github.com/jask/catalog/internal/logging"
)

// --- import ---

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a content directory into the catalog",
	Long: `Load a content directory into the catalog.

Items are read from prompts/, agents/, powers/, hooks/ and steering/ under
the directory. Items that disappeared from disk are removed unless --keep
is given.

Examples:
  catalog import
  catalog import --dir ./content --no-git`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()
		logger := logging.NewStderr(cfg.Log)

		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = cfg.Content.Dir
		}
		noGit, _ := cmd.Flags().GetBool("no-git")
		keep, _ := cmd.Flags().GetBool("keep")

		opts := []loader.Option{loader.WithLogger(logger)}
		if !noGit && loader.Available() {
			opts = append(opts, loader.WithGit(loader.ExecGit{}))
		}
		printStep("Reading %s", dir)
		items, err := loader.New(dir, opts...).Load(ctx)
		if err != nil {
			return err
		}

		repo := repository.NewContentRepo(db)
		if err := repo.Upsert(ctx, items...); err != nil {
			return err
		}

		ids := make(map[content.Variant][]string)
		for _, item := range items {
			ids[item.Variant()] = append(ids[item.Variant()], item.Info().ID)
		}
		removed := 0
		if !keep {
			for _, v := range content.Variants() {
				n, err := repo.Prune(ctx, v, ids[v])
				if err != nil {
					return err
				}
				removed += n
			}
		}
		logger.WithFields(logrus.Fields{"dir": dir, "items": len(items), "removed": removed}).Info("import finished")
		printSuccess("Imported %d items (%d removed)", len(items), removed)
		return nil
	},
}

// --- list ---

var listCmd = &cobra.Command{
	Use:   "list <variant>",
	Short: "List the items of one variant",
	Long: `List the items of one variant.

Variants: prompts, agents, powers, hooks, steering.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := content.ParseVariant(args[0])
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		ctx := cmd.Context()
		cfg, db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		items, err := repository.NewContentRepo(db).AllOfVariant(ctx, v)
		if err != nil {
			return err
		}
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		return printItems(os.Stdout, items, cfg.UI.DateFormat, "No "+v.Label()+" yet")
	},
}

// --- latest ---

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the most recently modified items",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return runLatest(cmd, limit)
	},
}

func runLatest(cmd *cobra.Command, limit int) error {
	ctx := cmd.Context()
	cfg, db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	if limit < 1 {
		limit = cfg.UI.LatestLimit
	}
	items, err := repository.NewContentRepo(db).Latest(ctx, limit)
	if err != nil {
		return err
	}
	return printItems(os.Stdout, items, cfg.UI.DateFormat, "Nothing in the catalog yet")
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := config.Path()
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		printSuccess("Wrote %s", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		printStatus("config", "%s", config.Path())
		printStatus("content.dir", "%s", cfg.Content.Dir)
		printStatus("content.seed_samples", "%t", cfg.Content.SeedSamples)
		printStatus("database.path", "%s", cfg.Database.Path)
		printStatus("ui.columns", "%d", cfg.UI.Columns)
		printStatus("ui.latest_limit", "%d", cfg.UI.LatestLimit)
		printStatus("ui.skeleton_count", "%d", cfg.UI.SkeletonCount)
		printStatus("ui.search_modifier", "%s", cfg.UI.SearchModifier)
		printStatus("ui.date_format", "%s", cfg.UI.DateFormat)
		printStatus("log.level", "%s", cfg.Log.Level)
		printStatus("log.file", "%s", cfg.Log.File)
		return nil
	},
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the program and schema versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(os.Stdout, "catalog %s\n", version)
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfg.Database.Path); err != nil {
			fmt.Fprintln(os.Stdout, "schema: no database")
			return nil
		}
		v, dirty, err := database.SchemaVersion(cfg.Database.Path)
		if err != nil {
			return err
		}
		schema := strconv.FormatUint(uint64(v), 10)
		if dirty {
			schema += " (dirty)"
		}
		fmt.Fprintf(os.Stdout, "schema: %s\n", schema)
		return nil
	},
}

func init() {
	importCmd.Flags().String("dir", "", "content directory (default from config)")
	importCmd.Flags().Bool("no-git", false, "skip commit metadata")
	importCmd.Flags().Bool("keep", false, "keep items missing from the directory")

	listCmd.Flags().Int("limit", 0, "show at most n items (0 for all)")
	latestCmd.Flags().Int("limit", 0, "show at most n items (default from config)")

	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
}
