package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/limaJavier/courseplanner/internal/csvio"
	"github.com/limaJavier/courseplanner/internal/metrics"
	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	profilesDirectory string
	batchOutDirectory string
	workers           int
	batchFlags        searchFlags
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Plan every profile of a directory concurrently over one shared catalog",
	RunE:  batch,
}

func init() {
	batchCmd.Flags().StringVar(&profilesDirectory, "profiles", "", "directory of preference profiles (json or yaml)")
	batchCmd.Flags().StringVar(&batchOutDirectory, "out", "", "directory where one json result per profile is written")
	batchCmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "number of profiles planned at once")
	batchFlags.register(batchCmd)
	_ = batchCmd.MarkFlagRequired("profiles")
	rootCmd.AddCommand(batchCmd)
}

type batchSummary struct {
	profile   string
	outcome   string
	schedules int
	topScore  float64
	errors    []string
	duration  time.Duration
}

func batch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if workers < 1 {
		return fmt.Errorf("workers must be positive: %v", workers)
	}
	files, err := profileFiles(profilesDirectory)
	if err != nil {
		return err
	}
	if batchOutDirectory != "" {
		if err := os.MkdirAll(batchOutDirectory, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	sink, err := startMetrics(ctx)
	if err != nil {
		return err
	}
	planner := model.NewPlanner(catalog, batchFlags.options(cmd))

	var mu sync.Mutex
	summaries := make([]batchSummary, 0, len(files))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, file := range files {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			summary, err := planProfile(planner, sink, file)
			if err != nil {
				return err
			}
			mu.Lock()
			summaries = append(summaries, summary)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	slices.SortFunc(summaries, func(s1, s2 batchSummary) int { return strings.Compare(s1.profile, s2.profile) })
	printSummaries(summaries)
	return nil
}

func planProfile(planner *model.Planner, sink metrics.Sink, file string) (batchSummary, error) {
	profile, err := model.ProfileFromFile(file)
	if err != nil {
		return batchSummary{}, err
	}

	start := time.Now()
	result := planner.Plan(profile)
	event := metrics.PlanEvent{Result: result, Duration: time.Since(start)}
	if err := sink.RecordPlan(event); err != nil {
		log.Warnf("record plan: %v", err)
	}

	if batchOutDirectory != "" {
		// Keep the source extension so profile.yaml and profile.json do not collide
		name := filepath.Base(file) + ".json"
		out, err := os.Create(filepath.Join(batchOutDirectory, name))
		if err != nil {
			return batchSummary{}, fmt.Errorf("cannot create result of %v: %w", file, err)
		}
		err = csvio.WriteResultJson(result, out)
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			return batchSummary{}, fmt.Errorf("cannot write result of %v: %w", file, err)
		}
	}

	summary := batchSummary{
		profile:   filepath.Base(file),
		outcome:   event.Outcome(),
		schedules: len(result.Schedules),
		errors:    result.Errors,
		duration:  event.Duration,
	}
	if len(result.Schedules) > 0 {
		summary.topScore = result.Schedules[0].Score
	}
	return summary, nil
}

func profileFiles(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".json" && ext != ".yaml" && ext != ".yml") {
			continue
		}
		files = append(files, filepath.Join(directory, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no profile found in %v", directory)
	}
	return files, nil
}

func printSummaries(summaries []batchSummary) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "PROFILE\tOUTCOME\tSCHEDULES\tTOP SCORE\tTIME\tFIRST ERROR")
	for _, summary := range summaries {
		firstError := ""
		if len(summary.errors) > 0 {
			firstError = summary.errors[0]
		}
		fmt.Fprintf(writer, "%s\t%s\t%d\t%.1f\t%v\t%s\n", summary.profile, summary.outcome, summary.schedules, summary.topScore, summary.duration.Round(time.Microsecond), firstError)
	}
	writer.Flush()
}
