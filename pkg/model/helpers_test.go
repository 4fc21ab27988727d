package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	catalogTestFile      = "../../test/catalogs/catalog.json"
	profileTestDirectory = "../../test/profiles/"
	testTerm             = "202410"
)

// Minutes since midnight
func at(hours, minutes int) int {
	return hours*60 + minutes
}

func blocksOn(days []Day, start, end int) []MeetingBlock {
	blocks := make([]MeetingBlock, 0, len(days))
	for _, day := range days {
		blocks = append(blocks, MeetingBlock{Day: day, Start: start, End: end})
	}
	return blocks
}

var (
	mwf = []Day{Monday, Wednesday, Friday}
	tth = []Day{Tuesday, Thursday}
)

func newCourse(code, meets string, blocks []MeetingBlock) Course {
	return Course{
		Code:          code,
		Title:         code,
		Meets:         meets,
		MeetingTimes:  blocks,
		PrereqGroups:  [][]string{},
		Term:          testTerm,
		MissingFields: []string{},
	}
}

func writ(course Course) Course {
	course.Writ = true
	return course
}

func requiring(course Course, groups ...[]string) Course {
	course.PrereqGroups = groups
	return course
}

func newTestCatalog(t *testing.T, courses ...Course) Catalog {
	catalog, err := NewCatalog(testTerm, courses)
	require.NoError(t, err)
	return catalog
}

// A week of non-overlapping courses used across the builder tests
func weekCourses() []Course {
	return []Course{
		newCourse("CSCI 0150", "MWF 9-9:50a", blocksOn(mwf, at(9, 0), at(9, 50))),
		newCourse("CSCI 0160", "MWF 10-10:50a", blocksOn(mwf, at(10, 0), at(10, 50))),
		newCourse("CSCI 0170", "TTh 9-10:20a", blocksOn(tth, at(9, 0), at(10, 20))),
		newCourse("MATH 0100", "TTh 10:30-11:50a", blocksOn(tth, at(10, 30), at(11, 50))),
		newCourse("MATH 0180", "MWF 11-11:50a", blocksOn(mwf, at(11, 0), at(11, 50))),
		newCourse("ECON 0110", "TTh 1-2:20p", blocksOn(tth, at(13, 0), at(14, 20))),
		newCourse("HIST 0150", "MWF 1-1:50p", blocksOn(mwf, at(13, 0), at(13, 50))),
	}
}

func baseProfile() Profile {
	return Profile{
		ClassesPerSemester:          3,
		CoursesTaken:                []string{},
		RemainingRequired:           []string{},
		NecessaryCourses:            []string{},
		AvailableTimeBlocks:         []string{},
		DayAvailability:             map[string]bool{},
		DayBalance:                  DayBalance{MWF: 2, TTh: 1},
		RequiredCoursesThisSemester: 0,
		PreferredDepartments:        []string{},
	}
}

func deterministicOptions() Options {
	return Options{Orderer: NewIdentityOrderer()}
}
