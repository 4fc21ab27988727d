package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetingBlockOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		block1   MeetingBlock
		block2   MeetingBlock
		expected bool
	}{
		{"touching boundary", MeetingBlock{Monday, 600, 690}, MeetingBlock{Monday, 690, 740}, false},
		{"one minute overlap", MeetingBlock{Monday, 600, 691}, MeetingBlock{Monday, 690, 740}, true},
		{"contained", MeetingBlock{Tuesday, 540, 620}, MeetingBlock{Tuesday, 560, 580}, true},
		{"identical", MeetingBlock{Friday, 780, 830}, MeetingBlock{Friday, 780, 830}, true},
		{"different day", MeetingBlock{Monday, 600, 690}, MeetingBlock{Wednesday, 600, 690}, false},
		{"disjoint", MeetingBlock{Thursday, 540, 600}, MeetingBlock{Thursday, 700, 760}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.block1.Overlaps(test.block2))
			assert.Equal(t, test.expected, test.block2.Overlaps(test.block1))
		})
	}
}

func TestConflictsIsSymmetric(t *testing.T) {
	//** Arrange
	courses := append(weekCourses(),
		newCourse("CSCI 0200", "MWF 9:30-10:20a", blocksOn(mwf, at(9, 30), at(10, 20))),
		newCourse("PHYS 0050", "TBA", []MeetingBlock{}),
	)

	//** Act & Assert
	for _, course1 := range courses {
		for _, course2 := range courses {
			assert.Equal(t, Conflicts(course1, course2), Conflicts(course2, course1), "%v vs %v", course1.Code, course2.Code)
		}
	}
	assert.True(t, Conflicts(courses[0], courses[7]))
	assert.True(t, Conflicts(courses[1], courses[7]))
	assert.False(t, Conflicts(courses[0], courses[1]))
	assert.False(t, Conflicts(courses[0], courses[8]))
}

func TestParseClockMinutes(t *testing.T) {
	tests := map[string]int{
		"900":   540,
		"0900":  540,
		"1430":  870,
		"1150":  710,
		"12":    0,
		"12345": 0,
		"":      0,
		"9a00":  0,
	}

	for clock, expected := range tests {
		assert.Equal(t, expected, ParseClockMinutes(clock), clock)
	}
}

func TestParseMeetingTimes(t *testing.T) {
	t.Run("Blank", func(t *testing.T) {
		blocks, err := ParseMeetingTimes("  ")

		assert.NoError(t, err)
		assert.Empty(t, blocks)
	})

	t.Run("Well formed", func(t *testing.T) {
		//** Arrange
		encoded := `[{"meet_day":"1","start_time":"900","end_time":"1020"},{"meet_day":"3","start_time":"900","end_time":"1020"}]`

		//** Act
		blocks, err := ParseMeetingTimes(encoded)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, []MeetingBlock{{Tuesday, 540, 620}, {Thursday, 540, 620}}, blocks)
	})

	t.Run("Invalid day is skipped", func(t *testing.T) {
		//** Arrange
		encoded := `[{"meet_day":"7","start_time":"900","end_time":"950"},{"meet_day":"0","start_time":"900","end_time":"950"}]`

		//** Act
		blocks, err := ParseMeetingTimes(encoded)

		//** Assert
		assert.Error(t, err)
		assert.Equal(t, []MeetingBlock{{Monday, 540, 590}}, blocks)
	})

	t.Run("Odd clock yields a zero minute", func(t *testing.T) {
		blocks, err := ParseMeetingTimes(`[{"meet_day":"2","start_time":"9","end_time":"950"}]`)

		require.NoError(t, err)
		assert.Equal(t, []MeetingBlock{{Wednesday, 0, 590}}, blocks)
	})

	t.Run("Malformed", func(t *testing.T) {
		blocks, err := ParseMeetingTimes(`[{"meet_day":`)

		assert.Error(t, err)
		assert.Empty(t, blocks)
	})
}

func TestParseMeetingDays(t *testing.T) {
	tests := []struct {
		meets    string
		expected []Day
	}{
		{"MWF 10-10:50a", []Day{Monday, Wednesday, Friday}},
		{"TTh 2:30-3:50p", []Day{Tuesday, Thursday}},
		{"Th 1-3:30p", []Day{Thursday}},
		{"T 1-3:30p", []Day{Tuesday}},
		{"MTWThF 8-8:50a", Days},
		{"TBA", []Day{}},
		{"", []Day{}},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, ParseMeetingDays(test.meets), test.meets)
	}
}

func TestTimeBlock(t *testing.T) {
	assert.Equal(t, "10-10:50a", TimeBlock("MWF 10-10:50a"))
	assert.Equal(t, "2:30-3:50p", TimeBlock(" TTh 2:30-3:50p "))
	assert.Equal(t, "TBA", TimeBlock("TBA"))
	assert.Equal(t, "TBA", TimeBlock(""))
}

func TestPrerequisitesSatisfied(t *testing.T) {
	course := newCourse("CSCI 0330", "MWF 1-1:50p", blocksOn(mwf, at(13, 0), at(13, 50)))

	tests := []struct {
		name     string
		groups   [][]string
		taken    []string
		expected bool
	}{
		{"no groups", [][]string{}, []string{}, true},
		{"single group, any member", [][]string{{"CSCI 0150", "CSCI 0170"}}, []string{"CSCI 0170"}, true},
		{"single group, no member", [][]string{{"CSCI 0150", "CSCI 0170"}}, []string{"MATH 0100"}, false},
		{"every group satisfied", [][]string{{"CSCI 0150", "CSCI 0170"}, {"CSCI 0160"}}, []string{"CSCI 0150", "CSCI 0160"}, true},
		{"one group missing", [][]string{{"CSCI 0150", "CSCI 0170"}, {"CSCI 0160"}}, []string{"CSCI 0150"}, false},
		{"nothing taken", [][]string{{"CSCI 0150"}}, []string{}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, PrerequisitesSatisfied(requiring(course, test.groups...), test.taken))
		})
	}
}
