// Package cli implements the tradebook command line.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradebook/config"
	"github.com/rustyeddy/tradebook/internal/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// RootConfig carries the global flags and everything resolved from them
// before a subcommand runs.
type RootConfig struct {
	ConfigPath string
	DBPath     string
	StoreType  string
	LogLevel   string

	// Now is the clock used for default dates and windows.
	Now func() time.Time

	cfg *config.Config
	log zerolog.Logger
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&RootConfig{Now: time.Now})
}

func newRootCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tradebook",
		Short: "Tradebook - a trading journal with risk levels, P&L and statistics",
		Long: `Tradebook logs discretionary trades, derives their stop-loss and target
levels from a risk/reward ratio, computes realized P&L and summarizes
performance. Journals can be exported to and imported from CSV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "", "SQLite journal database (overrides config)")
	cmd.PersistentFlags().StringVar(&rc.StoreType, "store", "", "Store type: sqlite|memory (overrides config; memory keeps nothing between runs)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.setup(cmd)
	}

	cmd.AddCommand(
		newAddCmd(rc),
		newEditCmd(rc),
		newRmCmd(rc),
		newListCmd(rc),
		newShowCmd(rc),
		newLevelsCmd(rc),
		newStatsCmd(rc),
		newExportCmd(rc),
		newImportCmd(rc),
		newReflectCmd(rc),
		newConfigCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tradebook %s\n", Version)
		},
	})

	return cmd
}

// setup loads the config file, applies flag overrides and builds the logger.
func (rc *RootConfig) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(rc.ConfigPath)
	if err != nil {
		return err
	}
	if rc.DBPath != "" {
		cfg.Store.DBPath = rc.DBPath
		if rc.StoreType == "" {
			cfg.Store.Type = "sqlite"
		}
	}
	if rc.StoreType != "" {
		cfg.Store.Type = rc.StoreType
	}
	if rc.LogLevel != "" {
		cfg.Log.Level = rc.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	rc.cfg = cfg

	rc.log = logging.New(logging.Config{
		Level:      cfg.Log.Level,
		Console:    cmd.ErrOrStderr(),
		FilePath:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
	}).With().Str("cmd", cmd.Name()).Logger()
	rc.log.Debug().Str("store", cfg.Store.Type).Str("db", cfg.Store.DBPath).Msg("config loaded")
	return nil
}

// loadConfig reads path, or the default config file when path is empty and
// one exists, or falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	cfg, err := config.LoadFromFile(config.DefaultPath())
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
