package csvio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/courseplanner/pkg/model"
)

// ScheduleCSVRow is one course of one ranked schedule.
type ScheduleCSVRow struct {
	Rank       int     `csv:"rank"`
	Score      float64 `csv:"score"`
	CourseCode string  `csv:"course_code"`
	Title      string  `csv:"title"`
	Meets      string  `csv:"meets"`
	Department string  `csv:"department"`
	Writ       bool    `csv:"writ"`
	Required   bool    `csv:"required"`
}

// ScheduleView is the JSON shape of one ranked schedule.
type ScheduleView struct {
	Rank       int              `json:"rank"`
	Score      float64          `json:"score"`
	Courses    []CourseView     `json:"courses"`
	DayBalance model.DayBalance `json:"dayBalance"`
}

type CourseView struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Meets string `json:"meets"`
	Writ  bool   `json:"writ"`
}

// ResultView is the JSON shape of a planning result.
type ResultView struct {
	ID        string            `json:"id"`
	Schedules []ScheduleView    `json:"schedules"`
	Errors    []string          `json:"errors"`
	Stats     model.SearchStats `json:"stats"`
}

// ExportResult formats the result into ScheduleCSVRow structs and
// writes it to the CSV file specified by the given path, replacing any previous file.
func ExportResult(result model.Result, profile model.Profile, path string) (err error) {
	rows := formatResult(result, profile)

	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open %q: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cannot close %q: %w", path, cerr)
		}
	}()

	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	return nil
}

// ExportResultString formats the result as CSV text.
func ExportResultString(result model.Result, profile model.Profile) (string, error) {
	rows := formatResult(result, profile)
	return gocsv.MarshalString(&rows)
}

// WriteResultJson writes the indented JSON view of the result.
func WriteResultJson(result model.Result, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewResultView(result))
}

func NewResultView(result model.Result) ResultView {
	view := ResultView{
		ID:        result.ID,
		Schedules: make([]ScheduleView, 0, len(result.Schedules)),
		Errors:    result.Errors,
		Stats:     result.Stats,
	}
	for i, schedule := range result.Schedules {
		courses := make([]CourseView, 0, len(schedule.Courses))
		for _, course := range schedule.Courses {
			courses = append(courses, CourseView{Code: course.Code, Title: course.Title, Meets: course.Meets, Writ: course.Writ})
		}
		view.Schedules = append(view.Schedules, ScheduleView{
			Rank:       i + 1,
			Score:      schedule.Score,
			Courses:    courses,
			DayBalance: schedule.DayBalance(),
		})
	}
	return view
}

// PrintResult prints every ranked schedule followed by the diagnostics.
func PrintResult(result model.Result, out io.Writer) {
	for i, schedule := range result.Schedules {
		balance := schedule.DayBalance()
		header := fmt.Sprintf(" #%d  score %.1f  MWF %d / TTh %d ", i+1, schedule.Score, balance.MWF, balance.TTh)
		fmt.Fprintf(out, "\n%s%s%s\n", strings.Repeat("-", max(0, (48-len(header))/2)), header, strings.Repeat("-", max(0, 48-len(header)-(48-len(header))/2)))

		courses := slices.Clone(schedule.Courses)
		slices.SortFunc(courses, func(c1, c2 model.Course) int { return strings.Compare(c1.Code, c2.Code) })
		for _, course := range courses {
			writ := ""
			if course.Writ {
				writ = "WRIT"
			}
			fmt.Fprintf(out, "%-11s %-20s %-4s %s\n", course.Code, course.Meets, writ, course.Title)
		}
	}
	for _, message := range result.Errors {
		fmt.Fprintf(out, "error: %s\n", message)
	}
	fmt.Fprintf(out, "Printed schedules: %d\n", len(result.Schedules))
}

func formatResult(result model.Result, profile model.Profile) []*ScheduleCSVRow {
	formatted := make([]*ScheduleCSVRow, 0)
	for i, schedule := range result.Schedules {
		for _, course := range schedule.Courses {
			formatted = append(formatted, &ScheduleCSVRow{
				Rank:       i + 1,
				Score:      schedule.Score,
				CourseCode: course.Code,
				Title:      course.Title,
				Meets:      course.Meets,
				Department: course.Department(),
				Writ:       course.Writ,
				Required:   slices.Contains(profile.RemainingRequired, course.Code),
			})
		}
	}
	return formatted
}
