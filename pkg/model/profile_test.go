package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFromFile(t *testing.T) {
	expected := Profile{
		ClassesPerSemester:          4,
		CoursesTaken:                []string{"CSCI 0150"},
		RemainingRequired:           []string{"CSCI 0200", "MATH 0100", "MATH 0520"},
		NecessaryCourses:            []string{"CSCI 0200"},
		AvailableTimeBlocks:         []string{},
		DayAvailability:             map[string]bool{"M": true, "T": true, "W": true, "Th": true, "F": true},
		DayBalance:                  DayBalance{MWF: 2, TTh: 2},
		RequiredCoursesThisSemester: 2,
		PreferredDepartments:        []string{"CSCI", "MATH"},
		NeedsWrit:                   true,
	}

	for _, file := range []string{"sophomore.yaml", "sophomore.json"} {
		t.Run(file, func(t *testing.T) {
			//** Act
			profile, err := ProfileFromFile(profileTestDirectory + file)

			//** Assert
			require.NoError(t, err)
			assert.Equal(t, expected, profile)
			assert.Empty(t, ValidateProfile(profile))
		})
	}

	t.Run("Unsupported format", func(t *testing.T) {
		_, err := ProfileFromFile(profileTestDirectory + "sophomore.toml")

		assert.Error(t, err)
	})
}

func TestValidateProfile(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.Empty(t, ValidateProfile(baseProfile()))
	})

	t.Run("Every problem is reported", func(t *testing.T) {
		//** Arrange
		profile, err := ProfileFromFile(profileTestDirectory + "invalid.yaml")
		require.NoError(t, err)

		//** Act
		errors := ValidateProfile(profile)

		//** Assert
		assert.Equal(t, []string{
			`invalid Profile.ClassesPerSemester: failed "gte" 3`,
			`unknown day "Sa" in day availability`,
			"the total of MWF (1) and TTh (2) classes must match the number of classes per semester (2)",
			"courses listed as both taken and necessary or remaining: CSCI 0200",
			"necessary courses not in remaining required: CSCI 0320",
		}, errors)
	})

	tests := []struct {
		name   string
		modify func(profile *Profile)
	}{
		{"blank course code", func(profile *Profile) { profile.CoursesTaken = []string{""} }},
		{"negative day balance", func(profile *Profile) { profile.DayBalance = DayBalance{MWF: 4, TTh: -1} }},
		{"too many necessary courses", func(profile *Profile) {
			profile.RemainingRequired = []string{"A 1", "A 2", "A 3", "A 4"}
			profile.NecessaryCourses = []string{"A 1", "A 2", "A 3", "A 4"}
			profile.RequiredCoursesThisSemester = 3
		}},
		{"more required than remaining", func(profile *Profile) { profile.RequiredCoursesThisSemester = 1 }},
		{"more required than classes", func(profile *Profile) {
			profile.RemainingRequired = []string{"A 1", "A 2", "A 3", "A 4"}
			profile.RequiredCoursesThisSemester = 4
		}},
		{"more necessary than required", func(profile *Profile) {
			profile.RemainingRequired = []string{"A 1", "A 2"}
			profile.NecessaryCourses = []string{"A 1", "A 2"}
			profile.RequiredCoursesThisSemester = 1
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			//** Arrange
			profile := baseProfile()
			test.modify(&profile)

			//** Act & Assert
			assert.NotEmpty(t, ValidateProfile(profile))
		})
	}
}

func TestProfileAvailability(t *testing.T) {
	profile := baseProfile()

	// Empty map leaves every day open
	for _, day := range Days {
		assert.True(t, profile.DayAllowed(day))
	}

	profile.DayAvailability = map[string]bool{"M": true, "Th": false}
	assert.True(t, profile.DayAllowed(Monday))
	assert.False(t, profile.DayAllowed(Thursday))
	assert.False(t, profile.DayAllowed(Friday))

	assert.True(t, profile.TimeAllowed("9-9:50a"))
	profile.AvailableTimeBlocks = []string{"9-9:50a"}
	assert.True(t, profile.TimeAllowed("9-9:50a"))
	assert.True(t, profile.TimeAllowed("TBA"))
	assert.False(t, profile.TimeAllowed("10-10:50a"))
}
