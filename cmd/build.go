package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/kamusis/skilldex/internal/config"
	"github.com/kamusis/skilldex/internal/extract"
	"github.com/kamusis/skilldex/internal/search/index"
	"github.com/kamusis/skilldex/internal/watch"
)

var (
	flagBuildOutput          string
	flagBuildDescriptionCap  int
	flagBuildIncludeFallback bool
	flagBuildWatch           bool
	flagBuildDebounce        time.Duration
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Scan the configured sources and write the collection",
	Long: `Extract every skill manifest and document under the configured source
roots and write the collection file, replacing any previous one.

Unreadable artifacts and missing roots are reported and skipped; only a
failure to write the collection makes the command fail.

With --watch the collection is rebuilt whenever a Markdown file under a
source root changes.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&flagBuildOutput, "output", "o", "", "collection file (default from config)")
	buildCmd.Flags().IntVar(&flagBuildDescriptionCap, "description-cap", 0, "maximum description length in characters (default from config)")
	buildCmd.Flags().BoolVar(&flagBuildIncludeFallback, "include-fallback", false, "keep skills whose name could not be discovered")
	buildCmd.Flags().BoolVarP(&flagBuildWatch, "watch", "w", false, "rebuild when sources change")
	buildCmd.Flags().DurationVar(&flagBuildDebounce, "debounce", watch.DefaultDebounce, "quiet period before a watch rebuild")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output") {
		if cfg.Output, err = cfg.ResolvePath(flagBuildOutput); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("description-cap") {
		if flagBuildDescriptionCap <= 0 {
			return fmt.Errorf("--description-cap must be positive")
		}
		cfg.DescriptionCap = flagBuildDescriptionCap
	}
	if cmd.Flags().Changed("include-fallback") {
		cfg.IncludeFallbackTitles = flagBuildIncludeFallback
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := buildOptions(cfg)
	if err := buildOnce(ctx, opts); err != nil {
		return err
	}
	if !flagBuildWatch {
		return nil
	}
	return watchAndRebuild(ctx, opts)
}

// buildOptions maps the configuration onto builder options.
func buildOptions(cfg *config.Config) index.BuildOptions {
	sources := make([]index.Source, 0, len(cfg.Sources))
	for _, s := range cfg.Sources {
		sources = append(sources, index.Source{
			Root:    s.Root,
			Glob:    s.Glob,
			Type:    s.Type,
			Prefix:  s.Prefix,
			Exclude: s.Exclude,
		})
	}
	return index.BuildOptions{
		Sources:               sources,
		Output:                cfg.Output,
		Name:                  cfg.Name,
		Version:               cfg.Version,
		Extract:               extract.Options{DescriptionCap: cfg.DescriptionCap},
		IncludeFallbackTitles: cfg.IncludeFallbackTitles,
		LockTimeout:           cfg.LockTimeout,
	}
}

func buildOnce(ctx context.Context, opts index.BuildOptions) error {
	printSection("skilldex build")
	_, rep, err := index.Build(ctx, opts)
	if rep != nil {
		printWarnings(rep.Warnings)
	}
	if err != nil {
		if errors.Is(err, index.ErrPersistence) {
			printErr("", "previous collection left untouched")
		}
		return fmt.Errorf("build failed: %w", err)
	}
	printOK("", fmt.Sprintf("collection written: %s", rep.Output))
	fmt.Fprintf(stdout, "\n  %d total / %d skill / %d document / %d skipped\n",
		rep.Total(), rep.Skills, rep.Documents, rep.Skipped)
	return nil
}

func printWarnings(w *multierror.Error) {
	if w == nil || len(w.Errors) == 0 {
		return
	}
	printBullet("Skipped:")
	for _, e := range w.Errors {
		var xe *extract.Error
		switch {
		case errors.As(e, &xe):
			printSkip("", fmt.Sprintf("%s: %v", xe.Path, xe.Err))
		case errors.Is(e, index.ErrSourceUnavailable):
			printMiss("", e.Error())
		default:
			printWarn("", e.Error())
		}
	}
}

func watchAndRebuild(ctx context.Context, opts index.BuildOptions) error {
	roots := make([]string, 0, len(opts.Sources))
	for _, s := range opts.Sources {
		roots = append(roots, s.Root)
	}
	w, err := watch.New(ctx, watch.Options{Roots: roots, Debounce: flagBuildDebounce})
	if err != nil {
		return fmt.Errorf("cannot watch sources: %w", err)
	}
	fmt.Fprintln(stdout)
	printInfo("", fmt.Sprintf("watching %d director(ies); press Ctrl+C to stop", len(w.WatchList())))

	return w.Run(ctx, func(ctx context.Context) error {
		return buildOnce(ctx, opts)
	})
}
