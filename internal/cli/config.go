package cli

import (
	"fmt"

	"github.com/rustyeddy/tradebook/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file`,
		// The config commands must work while the config file is broken.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	var output string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = config.DefaultPath()
			}
			cfg := config.Default()
			if err := cfg.SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created default configuration: %s\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "", "output config file path (default "+config.DefaultPath()+")")

	var file string
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := file
			if path == "" {
				path = rc.ConfigPath
			}
			if path == "" {
				path = config.DefaultPath()
			}
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "configuration valid: %s\n", path)
			fmt.Fprintf(out, "  risk:  %.2f%% per trade, %d digits\n", cfg.Risk.RiskPct*100, cfg.Risk.Precision)
			fmt.Fprintf(out, "  stats: default window %s\n", cfg.Stats.DefaultWindow)
			fmt.Fprintf(out, "  store: %s %s\n", cfg.Store.Type, cfg.Store.DBPath)
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&file, "file", "f", "", "path to config file (default --config or "+config.DefaultPath()+")")

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
