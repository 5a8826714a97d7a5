package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/prestafix/fixturedump/config"
	"github.com/prestafix/fixturedump/env"
	"github.com/prestafix/fixturedump/fixture"
	"github.com/prestafix/fixturedump/shell"
)

var (
	file     string
	dumpFile string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "fixturedump",
	Short: "Manage database fixture snapshots for automated test environments.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig prefers the yaml config file and falls back to the
// environment (DATABASE_DSN plus the optional FIXTURE_* overrides).
func resolveConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if dumpFile != "" {
		cfg.DumpFile = dumpFile
	}

	return cfg, nil
}

func loadConfig() (*config.Config, error) {
	if file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("fail to read config file %s, error: %v", file, err)
		}

		return config.Load(content)
	}

	values, err := env.NewEnvResolver(env.WithDatabase()).Resolve()
	if err != nil {
		return nil, err
	}

	return values.Database, nil
}

// withManager runs fn with a manager backed by a live database connection.
// The connection only serves SHOW TABLES and CHECKSUM TABLE, dump and restore
// traffic goes through the external binaries.
func withManager(fn func(manager *fixture.Manager) error) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return fmt.Errorf("fail to open database, error: %v", err)
	}

	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("fail to close DB", slog.Any("error", err))
		}
	}()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("fail to connect to database, error: %v", err)
	}

	return fn(fixture.NewManager(cfg, fixture.NewSQLQuerier(db), shell.NewExecRunner()))
}

// withOfflineManager runs fn with a manager that never talks to the database,
// for operations that only inspect artifacts on disk.
func withOfflineManager(fn func(manager *fixture.Manager) error) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	return fn(fixture.NewManager(cfg, nil, shell.NewExecRunner()))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&file, "file", "f", "", "fixture config yaml file path, falls back to DATABASE_DSN when unset (optional)")
	rootCmd.PersistentFlags().StringVar(&dumpFile, "dump-file", "", "overwrite the full dump file path (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "prints additional debug information (optional)")
}
