package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/skilldex/internal/config"
)

var flagInitWorkspace string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config and dotenv template",
	Long: `Create ~/.skilldex/skilldex.yaml with the default sources and
~/.skilldex/.env with commented-out overrides. Existing files are kept.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&flagInitWorkspace, "workspace", "", "workspace directory the sources are relative to")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	printOK("", fmt.Sprintf("skilldex directory ready: %s", dir))

	cfgPath := flagConfig
	if cfgPath == "" {
		if cfgPath, err = config.ConfigPath(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		if flagInitWorkspace != "" {
			cfg.WorkspacePath = flagInitWorkspace
		}
		if err := config.Save(cfg, cfgPath); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("config written: %s", cfgPath))
	} else if err != nil {
		return fmt.Errorf("cannot stat %s: %w", cfgPath, err)
	} else {
		printSkip("", fmt.Sprintf("config already exists: %s", cfgPath))
	}

	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	p, _ := config.DotEnvPath()
	printOK("", fmt.Sprintf("dotenv ready: %s", p))

	fmt.Fprintln(stdout, "\n  Next: run 'skilldex doctor', then 'skilldex build'.")
	return nil
}
