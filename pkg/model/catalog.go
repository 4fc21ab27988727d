package model

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// Fields every catalog record must carry for the engine to reason about it
var RequiredCatalogFields = []string{"code", "title", "meets", "meetingTimes", "writ", "prereqGroups", "srcdb"}

type RawCourse struct {
	Code         string     `mapstructure:"code"`
	Title        string     `mapstructure:"title"`
	Meets        string     `mapstructure:"meets"`
	MeetingTimes string     `mapstructure:"meetingTimes"`
	Writ         bool       `mapstructure:"writ"`
	PrereqGroups [][]string `mapstructure:"prereqGroups"`
	Srcdb        string     `mapstructure:"srcdb"`
}

type RawCatalog struct {
	Results []map[string]any
}

type CatalogError struct {
	Path   string
	Reason string
	Err    error
}

func (err CatalogError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("cannot load catalog %q: %v: %v", err.Path, err.Reason, err.Err)
	}
	return fmt.Sprintf("cannot load catalog %q: %v", err.Path, err.Reason)
}

func (err CatalogError) Unwrap() error {
	return err.Err
}

// Catalog is the immutable set of course records of one term. It is safe to share between goroutines
type Catalog struct {
	term    string
	courses []Course
	byCode  map[string]int
}

func NewCatalog(term string, courses []Course) (Catalog, error) {
	catalog := Catalog{
		term:    term,
		courses: slices.Clone(courses),
		byCode:  make(map[string]int, len(courses)),
	}
	for i, course := range catalog.courses {
		if _, ok := catalog.byCode[course.Code]; ok {
			return Catalog{}, fmt.Errorf("duplicate course code %q in term %q", course.Code, term)
		}
		catalog.byCode[course.Code] = i
	}
	return catalog, nil
}

func (catalog Catalog) Term() string {
	return catalog.term
}

func (catalog Catalog) Len() int {
	return len(catalog.courses)
}

// Courses returns a copy of the catalog records in source order
func (catalog Catalog) Courses() []Course {
	return slices.Clone(catalog.courses)
}

func (catalog Catalog) Course(code string) (Course, bool) {
	index, ok := catalog.byCode[code]
	if !ok {
		return Course{}, false
	}
	return catalog.courses[index], true
}

// CatalogFromJson loads the records of the given term from a catalog file shaped as {"results": [...]}
func CatalogFromJson(file, term string, warn func(format string, args ...any)) (Catalog, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Catalog{}, CatalogError{Path: file, Reason: "cannot read file", Err: err}
	}

	var catalogJson map[string]any
	if err := json.Unmarshal(bytes, &catalogJson); err != nil {
		return Catalog{}, CatalogError{Path: file, Reason: "malformed json", Err: err}
	}
	if _, ok := catalogJson["results"].([]any); !ok {
		return Catalog{}, CatalogError{Path: file, Reason: "missing \"results\" array"}
	}

	var rawCatalog RawCatalog
	if err := mapstructure.Decode(catalogJson, &rawCatalog); err != nil {
		return Catalog{}, CatalogError{Path: file, Reason: "cannot decode results", Err: err}
	}

	catalog, err := ProcessRawCatalog(rawCatalog, term, warn)
	if err != nil {
		return Catalog{}, CatalogError{Path: file, Reason: "integrity check failed", Err: err}
	}
	return catalog, nil
}

// ProcessRawCatalog turns generic records into courses of the given term.
// Malformed meeting times are tolerated, flagged on the course and reported through warn; a record whose fields cannot be decoded is an error
func ProcessRawCatalog(rawCatalog RawCatalog, term string, warn func(format string, args ...any)) (Catalog, error) {
	if warn == nil {
		warn = func(string, ...any) {}
	}

	courses := make([]Course, 0, len(rawCatalog.Results))
	for i, record := range rawCatalog.Results {
		if srcdb, _ := record["srcdb"].(string); srcdb != term {
			continue
		}

		var raw RawCourse
		if err := mapstructure.Decode(record, &raw); err != nil {
			return Catalog{}, fmt.Errorf("record %d: %w", i, err)
		}
		if raw.Code == "" {
			warn("skipping record %d of term %v: no course code", i, term)
			continue
		}

		blocks, err := ParseMeetingTimes(raw.MeetingTimes)
		if err != nil {
			warn("course %v: %v", raw.Code, err)
		}

		courses = append(courses, Course{
			Code:         raw.Code,
			Title:        raw.Title,
			Meets:        raw.Meets,
			MeetingTimes: blocks,
			Writ:         raw.Writ,
			PrereqGroups: lo.Ternary(raw.PrereqGroups == nil, [][]string{}, raw.PrereqGroups),
			Term:         raw.Srcdb,
			Malformed:    err != nil,
			MissingFields: lo.Filter(RequiredCatalogFields, func(field string, _ int) bool {
				_, ok := record[field]
				return !ok
			}),
		})
	}

	return NewCatalog(term, courses)
}
