package model

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFromJson(t *testing.T) {
	//** Arrange
	warnings := make([]string, 0)
	warn := func(format string, args ...any) { warnings = append(warnings, fmt.Sprintf(format, args...)) }

	//** Act
	catalog, err := CatalogFromJson(catalogTestFile, testTerm, warn)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, testTerm, catalog.Term())
	assert.Equal(t, 9, catalog.Len())

	course, ok := catalog.Course("CSCI 0200")
	require.True(t, ok)
	assert.Equal(t, "MWF 10-10:50a", course.Meets)
	assert.Equal(t, [][]string{{"CSCI 0150", "CSCI 0170", "CSCI 0111"}}, course.PrereqGroups)
	assert.Equal(t, blocksOn(mwf, at(10, 0), at(10, 50)), course.MeetingTimes)
	assert.True(t, course.Complete())
	assert.False(t, course.Malformed)

	// Records of other terms are ignored
	course, ok = catalog.Course("CSCI 0150")
	require.True(t, ok)
	assert.Equal(t, "MWF 9-9:50a", course.Meets)

	// Invalid meeting days are dropped with a warning
	course, _ = catalog.Course("MATH 0520")
	assert.Len(t, course.MeetingTimes, 2)
	assert.True(t, course.Malformed)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "MATH 0520")

	// Absent fields are tracked
	course, _ = catalog.Course("PHYS 0050")
	assert.Equal(t, []string{"prereqGroups"}, course.MissingFields)
	assert.Empty(t, course.MeetingTimes)
	assert.False(t, course.Scheduled())

	course, _ = catalog.Course("ENGL 0900")
	assert.True(t, course.Writ)
	assert.Equal(t, "ENGL", course.Department())
}

func TestCatalogFromJsonOtherTerm(t *testing.T) {
	catalog, err := CatalogFromJson(catalogTestFile, "202420", nil)

	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())
}

func TestCatalogFromJsonFailures(t *testing.T) {
	tests := map[string]string{
		"missing file":    "../../test/catalogs/absent.json",
		"malformed json":  "../../test/catalogs/malformed.json",
		"missing results": "../../test/catalogs/no_results.json",
		"duplicate code":  "../../test/catalogs/duplicate.json",
	}

	for name, file := range tests {
		t.Run(name, func(t *testing.T) {
			//** Act
			_, err := CatalogFromJson(file, testTerm, nil)

			//** Assert
			var catalogError CatalogError
			require.ErrorAs(t, err, &catalogError)
			assert.Equal(t, file, catalogError.Path)
		})
	}

	t.Run("missing file unwraps", func(t *testing.T) {
		_, err := CatalogFromJson("../../test/catalogs/absent.json", testTerm, nil)

		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})
}

func TestCatalogCoursesIsACopy(t *testing.T) {
	//** Arrange
	catalog := newTestCatalog(t, weekCourses()...)

	//** Act
	courses := catalog.Courses()
	courses[0].Code = "XXXX 0000"

	//** Assert
	course, ok := catalog.Course("CSCI 0150")
	assert.True(t, ok)
	assert.Equal(t, "CSCI 0150", course.Code)
	assert.Equal(t, "CSCI 0150", catalog.Courses()[0].Code)
}
