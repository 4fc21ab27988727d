package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/limaJavier/courseplanner/internal/csvio"
	"github.com/limaJavier/courseplanner/internal/metrics"
	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/spf13/cobra"
)

var validFormats = []string{"table", "json", "csv"}

var (
	profilePath   string
	outFilePath   string
	format        string
	generateFlags searchFlags
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate ranked schedules for one preference profile",
	RunE:  generate,
}

func init() {
	generateCmd.Flags().StringVarP(&profilePath, "profile", "p", "", "preference profile (json or yaml)")
	generateCmd.Flags().StringVarP(&outFilePath, "out", "o", "", "file where the output will be written; if empty, it'll be written into the Standard Output")
	generateCmd.Flags().StringVarP(&format, "format", "f", "table", `output format: "table", "json" or "csv"`)
	generateFlags.register(generateCmd)
	_ = generateCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(generateCmd)
}

func generate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	format = strings.ToLower(format)
	if !slices.Contains(validFormats, format) {
		return fmt.Errorf("%v is not a valid format", format)
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	profile, err := model.ProfileFromFile(profilePath)
	if err != nil {
		return err
	}
	sink, err := startMetrics(ctx)
	if err != nil {
		return err
	}

	planner := model.NewPlanner(catalog, generateFlags.options(cmd))
	start := time.Now()
	result := planner.Plan(profile)
	if err := sink.RecordPlan(metrics.PlanEvent{Result: result, Duration: time.Since(start)}); err != nil {
		log.Warnf("record plan: %v", err)
	}
	log.Infof("plan %v: %d schedules, %d errors in %v", result.ID, len(result.Schedules), len(result.Errors), time.Since(start))

	// Verify every schedule before handing it out
	for i, schedule := range result.Schedules {
		if !planner.Scheduler().Verify(schedule, profile) {
			return exitError{code: exitUnverified, message: fmt.Sprintf("schedule #%d failed verification", i+1)}
		}
	}

	if err := writeResult(result, profile); err != nil {
		return err
	}
	if len(result.Schedules) == 0 {
		return exitError{code: exitNoSchedule, message: strings.Join(result.Errors, "; ")}
	}
	return nil
}

func writeResult(result model.Result, profile model.Profile) (err error) {
	out := os.Stdout
	if outFilePath != "" {
		if format == "csv" {
			return csvio.ExportResult(result, profile, outFilePath)
		}
		file, createErr := os.Create(outFilePath)
		if createErr != nil {
			return fmt.Errorf("an error occurred while opening the output file: %w", createErr)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("an error occurred while closing the output file: %w", cerr)
			}
		}()
		out = file
	}

	switch format {
	case "json":
		return csvio.WriteResultJson(result, out)
	case "csv":
		csv, err := csvio.ExportResultString(result, profile)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, csv)
		return err
	default:
		csvio.PrintResult(result, out)
		return nil
	}
}
