package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/courseplanner/internal/logger"
	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const (
	exitSolved             = 0
	exitNoSchedule         = 20
	KB             float32 = 1024
)

type ResultType int

const (
	solved ResultType = iota
	noSchedule
)

var resultTypes = map[ResultType]string{
	solved:     "solved",
	noSchedule: "no-schedule",
}

var log = logger.New("benchmark")

var (
	executablePath   string
	catalogPath      string
	term             string
	profileDirectory string
	capsFlag         string
	outPath          string
)

type ProfileMetadata struct {
	Name              string
	Classes           int
	Taken             int
	RemainingRequired int
	Necessary         int
	RequiredThisTerm  int
	NeedsWrit         bool
}

// BenchmarkRow is one line of the benchmark report.
type BenchmarkRow struct {
	Profile           string  `csv:"profile"`
	Classes           int     `csv:"classes"`
	Taken             int     `csv:"taken"`
	RemainingRequired int     `csv:"remaining_required"`
	Necessary         int     `csv:"necessary"`
	RequiredThisTerm  int     `csv:"required_this_term"`
	NeedsWrit         bool    `csv:"needs_writ"`
	Cap               int     `csv:"max_schedules"`
	Duration          int64   `csv:"duration_ms"`
	Memory            float32 `csv:"memory_mb"`
	CpuPercentage     int64   `csv:"cpu_percent"`
	Result            string  `csv:"result"`
}

var rootCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Measure the planner binary over every profile and enumeration ceiling",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&executablePath, "executable", "../../bin/courseplanner", "planner binary")
	rootCmd.Flags().StringVar(&catalogPath, "catalog", "../../test/catalogs/catalog.json", "catalog file")
	rootCmd.Flags().StringVar(&term, "term", "202410", "catalog term")
	rootCmd.Flags().StringVar(&profileDirectory, "profiles", "../../test/profiles/", "directory of preference profiles")
	rootCmd.Flags().StringVar(&capsFlag, "caps", "100,1000,9999", "comma separated enumeration ceilings")
	rootCmd.Flags().StringVar(&outPath, "out", "benchmark_results.csv", "report file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	caps, err := parseCaps(capsFlag)
	if err != nil {
		return err
	}
	profiles, err := getProfiles(profileDirectory)
	if err != nil {
		return err
	}

	rows := make([]*BenchmarkRow, 0, len(profiles)*len(caps))
	for _, profile := range profiles {
		for _, ceiling := range caps {
			log.Infof("benchmarking profile %q with ceiling %d", profile.Name, ceiling)

			duration, maxMemory, cpuPercentage, result, err := measure(profile.Name, ceiling)
			if err != nil {
				return err
			}

			rows = append(rows, &BenchmarkRow{
				Profile:           filepath.Base(profile.Name),
				Classes:           profile.Classes,
				Taken:             profile.Taken,
				RemainingRequired: profile.RemainingRequired,
				Necessary:         profile.Necessary,
				RequiredThisTerm:  profile.RequiredThisTerm,
				NeedsWrit:         profile.NeedsWrit,
				Cap:               ceiling,
				Duration:          duration,
				Memory:            maxMemory,
				CpuPercentage:     cpuPercentage,
				Result:            resultTypes[result],
			})
		}
	}

	return toCsv(rows, outPath)
}

func parseCaps(caps string) ([]int, error) {
	values := lo.Filter(strings.Split(caps, ","), func(value string, _ int) bool { return strings.TrimSpace(value) != "" })
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one ceiling is required")
	}

	parsed := make([]int, 0, len(values))
	for _, value := range values {
		ceiling, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || ceiling <= 0 {
			return nil, fmt.Errorf("invalid ceiling %q", value)
		}
		parsed = append(parsed, ceiling)
	}
	return lo.Uniq(parsed), nil
}

func getProfiles(directory string) ([]ProfileMetadata, error) {
	files, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory: %w", err)
	}

	profiles := make([]ProfileMetadata, 0, len(files))
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		filename := filepath.Join(directory, file.Name())
		profile, err := model.ProfileFromFile(filename)
		if err != nil {
			log.Warnf("skipping %v: %v", filename, err)
			continue
		}

		profiles = append(profiles, ProfileMetadata{
			Name:              filename,
			Classes:           profile.ClassesPerSemester,
			Taken:             len(profile.CoursesTaken),
			RemainingRequired: len(profile.RemainingRequired),
			Necessary:         len(profile.NecessaryCourses),
			RequiredThisTerm:  profile.RequiredCoursesThisSemester,
			NeedsWrit:         profile.NeedsWrit,
		})
	}
	return profiles, nil
}

func measure(profileFile string, ceiling int) (duration int64, maxMemory float32, cpuPercentage int64, result ResultType, err error) {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "generate",
		"--catalog", catalogPath,
		"--term", term,
		"--profile", profileFile,
		"--max-schedules", strconv.Itoa(ceiling),
		"--seed", "1",
		"--format", "csv",
		"--out", os.DevNull,
	)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	_ = cmd.Run()
	switch cmd.ProcessState.ExitCode() {
	case exitSolved:
		result = solved
	case exitNoSchedule:
		result = noSchedule
	default:
		return 0, 0, 0, 0, fmt.Errorf("an error occurred during the execution of the planner with profile \"%v\" and ceiling \"%v\": %v", profileFile, ceiling, stdErr.String())
	}

	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) (string, error) {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			return "", fmt.Errorf("substring \"%v\" could not be found", substr)
		}
		return line, nil
	}

	lines := make([]string, 0, 3)
	for _, substr := range []string{"wall clock", "maximum resident set size", "percent of cpu"} {
		line, err := getLine(substr)
		if err != nil {
			return 0, 0, 0, 0, err
		}
		lines = append(lines, line)
	}

	if duration, err = parseDurationLine(lines[0]); err != nil {
		return 0, 0, 0, 0, err
	}
	if maxMemory, err = parseMemoryLine(lines[1]); err != nil {
		return 0, 0, 0, 0, err
	}
	if cpuPercentage, err = parseCpuPercentageLine(lines[2]); err != nil {
		return 0, 0, 0, 0, err
	}
	return duration, maxMemory, cpuPercentage, result, nil
}

func toCsv(rows []*BenchmarkRow, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("cannot write CSV report: %w", err)
	}
	return nil
}

func parseDurationLine(line string) (int64, error) {
	_, durationStr, found := strings.Cut(line, "(h:mm:ss or m:ss):")
	if !found {
		return 0, fmt.Errorf("unexpected duration line: %v", line)
	}
	return parseDuration(strings.TrimSpace(durationStr))
}

// Converts "h:mm:ss.hh" or "m:ss.hh" into milliseconds
func parseDuration(durationStr string) (int64, error) {
	parts := strings.Split(durationStr, ":")
	secondsStr, hundredthsStr, found := strings.Cut(parts[len(parts)-1], ".")
	if !found || (len(parts) != 2 && len(parts) != 3) {
		return 0, fmt.Errorf("unexpected duration format: %v", durationStr)
	}

	numbers := make([]int, 0, len(parts)+1)
	for _, part := range append(parts[:len(parts)-1], secondsStr, hundredthsStr) {
		number, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("unexpected duration format: %v", durationStr)
		}
		numbers = append(numbers, number)
	}

	hours := 0
	if len(parts) == 3 { // h:mm:ss
		hours, numbers = numbers[0], numbers[1:]
	}
	minutes, seconds, hundredthOfSeconds := numbers[0], numbers[1], numbers[2]
	return int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10), nil
}

func parseMemoryLine(line string) (float32, error) {
	_, memoryStr, _ := strings.Cut(line, ":")
	memory, err := strconv.ParseFloat(strings.TrimSpace(memoryStr), 32)
	if err != nil {
		return 0, fmt.Errorf("unexpected memory line: %v", line)
	}
	return float32(memory) / KB, nil
}

func parseCpuPercentageLine(line string) (int64, error) {
	_, percentageStr, _ := strings.Cut(line, ":")
	percentage, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(percentageStr), "%"))
	if err != nil {
		return 0, fmt.Errorf("unexpected cpu line: %v", line)
	}
	return int64(percentage), nil
}
