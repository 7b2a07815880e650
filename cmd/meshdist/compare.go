package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/philipparndt/meshdist/internal/config"
	"github.com/philipparndt/meshdist/internal/engine"
	"github.com/philipparndt/meshdist/pkg/watcher"
	"github.com/spf13/cobra"
)

var compareOpts struct {
	original   string
	candidate  string
	samples    int
	statFile   string
	seed       uint64
	workers    int
	configFile string
	watch      bool
	quiet      bool
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compute surface distance metrics between two meshes",
	Long: `Sample both surfaces, measure point-to-surface distances in both directions
and print the normalized Hausdorff and Chamfer metrics.

A candidate without faces or without vertices is reported and skipped; the
statistics file is left untouched in that case.`,
	Example: `  meshdist compare -o bunny.obj -n bunny_decimated.obj
  meshdist compare -o part.stl -n part_lod2.stl --samples 20000 --stat-file stats.json --seed 7`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	flags := compareCmd.Flags()
	flags.StringVarP(&compareOpts.original, "original", "o", "", "reference mesh (.stl or .obj)")
	flags.StringVarP(&compareOpts.candidate, "new", "n", "", "candidate mesh to evaluate (.stl or .obj)")
	flags.IntVar(&compareOpts.samples, "samples", config.DefaultSamples, "random surface samples per mesh, in addition to its vertices")
	flags.StringVar(&compareOpts.statFile, "stat-file", "", "JSON file to merge the metrics into")
	flags.Uint64Var(&compareOpts.seed, "seed", 0, "sampler seed; 0 picks a random one")
	flags.IntVar(&compareOpts.workers, "workers", 0, "goroutines per distance direction; 0 uses all CPUs")
	flags.StringVar(&compareOpts.configFile, "config", "", "JSON file with run parameters; explicit flags take precedence")
	flags.BoolVar(&compareOpts.watch, "watch", false, "re-run whenever either mesh file changes")
	flags.BoolVarP(&compareOpts.quiet, "quiet", "q", false, "suppress progress output")
}

// resolveConfig layers the config file under the flags the user set
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if compareOpts.configFile != "" {
		loaded, err := config.Load(compareOpts.configFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("original") || cfg.OriginalPath == "" {
		cfg.OriginalPath = compareOpts.original
	}
	if flags.Changed("new") || cfg.NewPath == "" {
		cfg.NewPath = compareOpts.candidate
	}
	if flags.Changed("samples") {
		cfg.Samples = compareOpts.samples
	}
	if flags.Changed("stat-file") {
		cfg.StatFile = compareOpts.statFile
	}
	if flags.Changed("seed") {
		cfg.Seed = compareOpts.seed
	}
	if flags.Changed("workers") {
		cfg.Workers = compareOpts.workers
	}
	return cfg, cfg.Validate()
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logw := cmd.ErrOrStderr()
	if compareOpts.quiet {
		logw = io.Discard
	}
	runner := engine.NewRunner(cmd.OutOrStdout(), logw)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := runner.Run(ctx, cfg); err != nil {
		return err
	}
	if !compareOpts.watch {
		return nil
	}
	return watchAndCompare(ctx, runner, cfg)
}

// watchAndCompare re-runs the comparison after every settled change to one
// of the mesh files. Failed runs are logged and watching continues.
func watchAndCompare(ctx context.Context, runner *engine.Runner, cfg config.Config) error {
	logger := runner.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	fw, err := watcher.NewFileWatcher(250*time.Millisecond, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	changed := make(chan string, 1)
	notify := func(path string) {
		select {
		case changed <- path:
		default:
		}
	}
	if err := fw.Watch([]string{cfg.OriginalPath, cfg.NewPath}, notify); err != nil {
		return err
	}
	go fw.Run(ctx)

	logger.Printf("Watching %s and %s for changes", cfg.OriginalPath, cfg.NewPath)
	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-changed:
			logger.Printf("%s changed, comparing again", path)
			if _, err := runner.Run(ctx, cfg); err != nil {
				logger.Printf("Comparison failed: %v", err)
			}
		}
	}
}
