package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamusis/skilldex/internal/config"
	"github.com/kamusis/skilldex/internal/search/index"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run pre-flight environment checks",
	Long: `Check that skilldex's configuration, source roots and collection are
usable. Run this command when a build or search returns less than expected.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("skilldex doctor")
	fmt.Fprintln(stdout)

	// ── Check 1: config file ──────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Config ]")
	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath, _ = config.ConfigPath()
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		printSkip("", fmt.Sprintf("%s not found — using built-in defaults", cfgPath))
	} else {
		printOK("", fmt.Sprintf("config file: %s", cfgPath))
	}
	// Origins must be read before loadConfig exports .env into the environment.
	printOverrides()
	cfg, loadErr := loadConfig(cmd)
	if loadErr != nil {
		failD("%v", loadErr)
	} else {
		printOK("", fmt.Sprintf("valid — %d source(s), workspace %s", len(cfg.Sources), cfg.WorkspacePath))
	}
	fmt.Fprintln(stdout)

	// ── Check 2: source roots ─────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Sources ]")
	if loadErr == nil {
		for _, s := range buildOptions(cfg).Sources {
			paths, err := index.Discover(s)
			if err != nil {
				printWarn(s.Prefix, fmt.Sprintf("%v (contributes no entries)", err))
				continue
			}
			printOK(s.Prefix, fmt.Sprintf("%d %s artifact(s) in %s", len(paths), s.Type, s.Root))
		}
	} else {
		printWarn("", "skipped (config not loaded)")
	}
	fmt.Fprintln(stdout)

	// ── Check 3: output directory writable ────────────────────────────────────
	fmt.Fprintln(stdout, "[ Output ]")
	if loadErr == nil {
		if err := checkWritable(filepath.Dir(cfg.Output)); err != nil {
			failD("cannot write to %s: %v", filepath.Dir(cfg.Output), err)
		} else {
			printOK("", fmt.Sprintf("writable: %s", filepath.Dir(cfg.Output)))
		}
	} else {
		printWarn("", "skipped (config not loaded)")
	}
	fmt.Fprintln(stdout)

	// ── Check 4: collection consistency ───────────────────────────────────────
	fmt.Fprintln(stdout, "[ Collection ]")
	if loadErr == nil {
		checkCollection(cfg.Output, failD)
	} else {
		printWarn("", "skipped (config not loaded)")
	}
	fmt.Fprintln(stdout)

	// ── Summary ───────────────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "===================")
	if allOK {
		fmt.Fprintln(stdout, "✓  All checks passed. skilldex is ready to use.")
		return nil
	}
	fmt.Fprintln(stderr, "✗  One or more checks failed. See details above.")
	return fmt.Errorf("doctor found issues")
}

func printOverrides() {
	var n int
	for _, key := range config.OverrideKeys() {
		v, origin, err := config.GetConfigValue(key)
		if err != nil {
			printWarn("", fmt.Sprintf("cannot read overrides: %v", err))
			return
		}
		if origin == "" {
			continue
		}
		printInfo("", fmt.Sprintf("%s=%s (from %s)", key, v, origin))
		n++
	}
	if n == 0 {
		printSkip("", "no SKILLDEX_* overrides")
	}
}

func checkCollection(path string, failD func(string, ...any)) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		printMiss("", fmt.Sprintf("%s not built yet — run 'skilldex build'", path))
		return
	}
	col, err := index.Load(path)
	if err != nil {
		failD("%v", err)
		return
	}
	if !col.Consistent() {
		failD("total_items is %d but the index holds %d entries — rebuild", col.Metadata.TotalItems, col.Len())
	} else {
		printOK("", fmt.Sprintf("%d entries, built %s", col.Len(), emptyAsNA(col.Metadata.Created)))
	}

	var stale int
	col.Range(func(key string, e index.Entry) bool {
		if _, err := os.Stat(e.Path); err != nil {
			printWarn(key, fmt.Sprintf("source missing: %s", e.Path))
			stale++
		}
		return true
	})
	if stale > 0 {
		printInfo("", fmt.Sprintf("%d stale entr(ies) — run 'skilldex build' to refresh", stale))
	}
}

// checkWritable creates the directory if needed and probes it with a
// throwaway file.
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".skilldex-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
