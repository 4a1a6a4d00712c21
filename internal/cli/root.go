// Package cli wires the configuration, catalog store, optional graph and
// guide, and the front ends behind the travelbrowser command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"travelbrowser/internal/catalog"
	"travelbrowser/internal/config"
	"travelbrowser/internal/log"
	"travelbrowser/ui/tui"
)

var (
	envFile     string
	dbPath      string
	locale      string
	sortFlag    string
	threshold   float64
	noSeed      bool
	logDir      string
	dbThreads   int
	dbMemory    int
	resetOnStop bool

	appCtx *App
)

func Execute() error {
	return execute(newRootCmd())
}

// execute runs cmd and releases whatever PersistentPreRunE opened, also
// when the command failed.
func execute(cmd *cobra.Command) error {
	defer func() {
		if appCtx != nil {
			appCtx.Close()
			appCtx = nil
		}
		log.Close()
	}()
	return cmd.Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "travelbrowser",
		Short:        "Browse travel destinations in the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logCfg := log.DefaultLogConfig()
			logCfg.LogsDir = cfg.LogDir
			prefix := ""
			if cmd.Name() == "mcp" {
				prefix = "[MCP] "
			}
			if err := log.Initialize(logCfg, prefix); err != nil {
				return err
			}

			appCtx, err = Open(cmd.Context(), cfg)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.StartGraph(cmd.Context()); err != nil {
				log.WarningLog.Printf("graph mirror disabled: %v", err)
			}
			return tui.Start(appCtx.Repo, appCtx.Config)
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env", ".env", "file with KEY=VALUE settings")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "DuckDB catalog file (default in-memory)")
	root.PersistentFlags().StringVar(&locale, "locale", "", "BCP 47 locale for name sorting (default en)")
	root.PersistentFlags().StringVar(&sortFlag, "sort", "", "initial sort order: natural, asc or desc")
	root.PersistentFlags().Float64Var(&threshold, "threshold", 0, "fraction of a card that must be on screen (default 0.3)")
	root.PersistentFlags().IntVar(&dbThreads, "db-threads", 0, "DuckDB worker threads (default DuckDB's choice)")
	root.PersistentFlags().IntVar(&dbMemory, "db-memory-mb", 0, "DuckDB memory limit in MB (default DuckDB's choice)")
	root.PersistentFlags().BoolVar(&resetOnStop, "graph-reset", false, "wipe the Neo4j mirror on exit")
	root.PersistentFlags().BoolVar(&noSeed, "no-seed", false, "do not seed an empty catalog")
	root.PersistentFlags().StringVar(&logDir, "log-dir", "", "log directory (default ~/.travelbrowser/logs)")

	root.AddCommand(listCmd(), mcpCmd(), seedCmd())
	return root
}

// loadConfig layers defaults, the env file, the environment and the flags
// that were set explicitly, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if envFile != "" {
		config.LoadEnvFile(envFile)
	}
	cfg, err := config.FromEnv(config.DefaultConfig())
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg = cfg.WithDBPath(dbPath)
	}
	if flags.Changed("locale") {
		cfg = cfg.WithLocale(locale)
	}
	if flags.Changed("sort") {
		order, err := catalog.ParseSortOrder(sortFlag)
		if err != nil {
			return cfg, &config.ConfigError{Field: "InitialSort", Message: err.Error()}
		}
		cfg = cfg.WithInitialSort(order)
	}
	if flags.Changed("threshold") {
		cfg = cfg.WithVisibleThreshold(threshold)
	}
	if flags.Changed("no-seed") {
		cfg.Seed = !noSeed
	}
	if flags.Changed("db-threads") {
		cfg.DBThreads = dbThreads
	}
	if flags.Changed("db-memory-mb") {
		cfg.DBMemoryMB = dbMemory
	}
	if flags.Changed("graph-reset") {
		cfg.GraphResetOnStop = resetOnStop
	}
	if flags.Changed("log-dir") {
		cfg.LogDir = logDir
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
