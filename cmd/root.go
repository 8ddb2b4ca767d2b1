package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/skilldex/internal/config"
	"github.com/kamusis/skilldex/internal/logger"
)

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:          "skilldex",
	Short:        "skilldex — index and search local skills and documentation",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `skilldex scans skill manifests (SKILL.md) and Markdown documentation
under your workspace, writes a compact JSON collection, and answers
keyword searches against it.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return applyLogFlags(cmd)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default ~/.skilldex/skilldex.yaml)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "", "log format: text or json")
}

func applyLogFlags(cmd *cobra.Command) error {
	if cmd.Flags().Changed("log-level") {
		if err := logger.SetLogLevel(flagLogLevel); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("log-format") {
		logger.SetLogFormat(flagLogFormat)
	}
	return nil
}

// loadConfig loads the effective configuration and applies its logging
// settings unless the matching flag was given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w\nRun 'skilldex init' to write a default config.", err)
	}
	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
		if err := logger.SetLogLevel(cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	if !cmd.Flags().Changed("log-format") && cfg.LogFormat != "" {
		logger.SetLogFormat(cfg.LogFormat)
	}
	return cfg, nil
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
