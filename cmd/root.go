package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathforest/internal/config"
	"github.com/abhisek/mathforest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathforest",
	Short: "Math and telling-time adventure for kids",
	Long:  "Math Forest: a terminal game where kids level up addition, subtraction, multiplication and word problems, beat the dragon and learn to tell the time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/mathforest/config.toml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHFOREST_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration, letting --db override the store
// settings.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.Driver = store.DriverSQLite
		cfg.Store.Path = p
	}
	return cfg, nil
}

// openStore connects to the configured profile database.
func openStore(cfg config.Config) (*store.Store, error) {
	dsn := cfg.Store.URL
	if cfg.Store.Driver != store.DriverPostgres {
		if err := store.EnsureDir(cfg.Store.Path); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		dsn = cfg.Store.Path
	}
	st, err := store.Open(cfg.Store.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
