package model

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

type Day uint8

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

var dayCodes = map[Day]string{
	Monday:    "M",
	Tuesday:   "T",
	Wednesday: "W",
	Thursday:  "Th",
	Friday:    "F",
}

// Code returns the short descriptor code of the day ("M", "T", "W", "Th", "F")
func (day Day) Code() string {
	return dayCodes[day]
}

func (day Day) String() string {
	switch day {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	}
	return "Unknown"
}

// ParseDayCode maps a descriptor code back to its day
func ParseDayCode(code string) (Day, bool) {
	return lo.FindKey(dayCodes, code)
}

// MeetingBlock is one weekly meeting occurrence over the half-open minute interval [Start, End)
type MeetingBlock struct {
	Day   Day
	Start int
	End   int
}

// Overlaps checks whether both blocks share the day and their intervals intersect. Touching intervals do not overlap
func (block MeetingBlock) Overlaps(other MeetingBlock) bool {
	return block.Day == other.Day && !(block.End <= other.Start || block.Start >= other.End)
}

type Course struct {
	Code          string
	Title         string
	Meets         string
	MeetingTimes  []MeetingBlock
	Writ          bool
	PrereqGroups  [][]string
	Term          string
	MissingFields []string // Catalog fields absent from the source record
	Malformed     bool     // Some meeting entry could not be parsed, so MeetingTimes may be incomplete
}

// Department returns the department prefix of the course code (e.g. "CSCI" for "CSCI 0320")
func (course Course) Department() string {
	department, _, _ := strings.Cut(strings.TrimSpace(course.Code), " ")
	return department
}

// Scheduled checks whether the course has a concrete meeting descriptor
func (course Course) Scheduled() bool {
	meets := strings.TrimSpace(course.Meets)
	return meets != "" && !strings.EqualFold(meets, "TBA")
}

func (course Course) Complete() bool {
	return len(course.MissingFields) == 0
}

type DayBalance struct {
	MWF int `json:"mwfCount" yaml:"mwfCount" validate:"gte=0"`
	TTh int `json:"tthCount" yaml:"tthCount" validate:"gte=0"`
}

type Schedule struct {
	Courses []Course
	Score   float64
}

// Key returns the canonical identity of the schedule: its course codes sorted and joined
func (schedule Schedule) Key() string {
	codes := schedule.Codes()
	slices.Sort(codes)
	return strings.Join(codes, "|")
}

func (schedule Schedule) Codes() []string {
	return lo.Map(schedule.Courses, func(course Course, _ int) string { return course.Code })
}

// DayBalance counts MWF-pattern and TTh-pattern courses by a literal substring test on the descriptor, a course meeting on both patterns counts toward both
func (schedule Schedule) DayBalance() DayBalance {
	balance := DayBalance{}
	for _, course := range schedule.Courses {
		if strings.ContainsAny(course.Meets, "MWF") {
			balance.MWF++
		}
		if strings.Contains(course.Meets, "T") {
			balance.TTh++
		}
	}
	return balance
}

func (schedule Schedule) RequiredCount(remainingRequired []string) int {
	return lo.CountBy(schedule.Courses, func(course Course) bool {
		return slices.Contains(remainingRequired, course.Code)
	})
}

func (schedule Schedule) HasWrit() bool {
	return lo.SomeBy(schedule.Courses, func(course Course) bool { return course.Writ })
}

type SearchStats struct {
	Explored   int  // Candidate nodes visited
	Pruned     int  // Appends rejected due to a time conflict
	Duplicates int  // Complete candidates discarded because their key was already seen
	Accepted   int  // Complete, distinct schedules kept
	Capped     bool // Whether the enumeration stopped at the configured ceiling
}

type Result struct {
	ID        string
	Schedules []Schedule
	Errors    []string
	Stats     SearchStats
}

func (result Result) Ok() bool {
	return len(result.Errors) == 0
}
