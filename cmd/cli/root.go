package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"slices"

	"github.com/limaJavier/courseplanner/internal/config"
	"github.com/limaJavier/courseplanner/internal/logger"
	"github.com/limaJavier/courseplanner/internal/metrics"
	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	catalogPath string
	term        string

	cfg *config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "courseplanner",
	Short:         "Build ranked, conflict-free course schedules from a catalog and a preference profile",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(resolveConfigPath(cmd.Flags().Changed("config")))
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if catalogPath != "" {
			loaded.Catalog.Path = catalogPath
		}
		if term != "" {
			loaded.Catalog.Term = term
		}
		cfg = loaded
		log = logger.NewWithLevel("cli", cfg.Logging.Level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file (json or yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog file, overrides catalog.path")
	rootCmd.PersistentFlags().StringVar(&term, "term", "", "catalog term (srcdb), overrides catalog.term")
}

// An explicit --config is used as is; otherwise config.yaml or config.json is looked up
// in the working directory and then next to the executable
func resolveConfigPath(explicit bool) string {
	if explicit {
		return cfgPath
	}
	candidates := []string{"config.yaml", "config.json"}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execPath = path.Dir(execPath)
	files, err := os.ReadDir(execPath)
	if err != nil {
		return ""
	}
	fileNames := lo.Map(files, func(file os.DirEntry, _ int) string { return file.Name() })
	for _, candidate := range candidates {
		if slices.Contains(fileNames, candidate) {
			return path.Join(execPath, candidate)
		}
	}
	return ""
}

func loadCatalog() (model.Catalog, error) {
	if cfg.Catalog.Term == "" {
		return model.Catalog{}, fmt.Errorf("a catalog term must be specified (--term or catalog.term)")
	}
	catalog, err := model.CatalogFromJson(cfg.Catalog.Path, cfg.Catalog.Term, log.Warnf)
	if err != nil {
		return model.Catalog{}, err
	}
	log.Infof("loaded %d courses of term %v from %v", catalog.Len(), catalog.Term(), cfg.Catalog.Path)
	return catalog, nil
}

type searchFlags struct {
	top          int
	maxSchedules int
	seed         uint64
	noShuffle    bool
}

func (flags *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flags.top, "top", -1, "number of top schedules to return, overrides search.max_results (0 returns all)")
	cmd.Flags().IntVar(&flags.maxSchedules, "max-schedules", 0, "enumeration ceiling, overrides search.max_schedules")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "fixed shuffle seed, overrides search.seed")
	cmd.Flags().BoolVar(&flags.noShuffle, "no-shuffle", false, "keep catalog order while branching")
}

func (flags *searchFlags) options(cmd *cobra.Command) model.Options {
	search := cfg.Search
	if flags.top >= 0 {
		search.MaxResults = flags.top
	}
	if flags.maxSchedules > 0 {
		search.MaxSchedules = flags.maxSchedules
	}
	if cmd.Flags().Changed("seed") {
		search.Seed = flags.seed
	}
	if flags.noShuffle {
		search.Shuffle = false
	}

	orderer := model.NewIdentityOrderer()
	if search.Shuffle {
		orderer = model.NewShuffleOrderer(search.Seed)
	}
	return model.Options{
		MaxSchedules: search.MaxSchedules,
		MaxResults:   search.MaxResults,
		Orderer:      orderer,
		Logger:       logger.NewWithLevel("scheduler", cfg.Logging.Level),
	}
}

// Builds the metrics sink and, when enabled, serves it until ctx is done
func startMetrics(ctx context.Context) (metrics.Sink, error) {
	if !cfg.Metrics.Enabled {
		return metrics.NopSink{}, nil
	}
	sink, err := metrics.NewSink(cfg.Metrics, prometheus.DefaultRegisterer)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	go func() {
		if err := metrics.StartPromServer(ctx, cfg.Metrics.Address, prometheus.DefaultGatherer, logger.NewWithLevel("metrics", cfg.Logging.Level)); err != nil {
			log.Errorf("metrics server: %v", err)
		}
	}()
	return sink, nil
}
