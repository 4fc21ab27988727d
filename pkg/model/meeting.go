package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type rawMeetingTime struct {
	MeetDay   string `json:"meet_day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ParseMeetingTimes decodes the JSON-encoded meeting-time array of a catalog record.
// Entries whose day cannot be parsed are skipped and reported through the returned error; the well-formed entries are still returned
func ParseMeetingTimes(encoded string) ([]MeetingBlock, error) {
	if strings.TrimSpace(encoded) == "" {
		return []MeetingBlock{}, nil
	}

	var raws []rawMeetingTime
	if err := json.Unmarshal([]byte(encoded), &raws); err != nil {
		return []MeetingBlock{}, fmt.Errorf("invalid meeting times: %w", err)
	}

	blocks := make([]MeetingBlock, 0, len(raws))
	skipped := make([]string, 0)
	for _, raw := range raws {
		day, err := strconv.Atoi(strings.TrimSpace(raw.MeetDay))
		if err != nil || day < int(Monday) || day > int(Friday) {
			skipped = append(skipped, raw.MeetDay)
			continue
		}
		blocks = append(blocks, MeetingBlock{
			Day:   Day(day),
			Start: ParseClockMinutes(raw.StartTime),
			End:   ParseClockMinutes(raw.EndTime),
		})
	}

	if len(skipped) > 0 {
		return blocks, fmt.Errorf("skipped meeting entries with invalid day: %v", skipped)
	}
	return blocks, nil
}

// ParseClockMinutes converts a 3 or 4 digit 24-hour clock string ("900", "1430") into minutes since midnight.
// Any other shape yields 0
func ParseClockMinutes(clock string) int {
	if len(clock) != 3 && len(clock) != 4 {
		return 0
	}
	if len(clock) == 3 {
		clock = "0" + clock
	}

	hours, err := strconv.Atoi(clock[:2])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(clock[2:])
	if err != nil {
		return 0
	}
	return hours*60 + minutes
}

// ParseMeetingDays extracts the set of days from a human descriptor such as "MWF 10-10:50a" or "TTh 2:30-3:50p".
// "Th" is read as Thursday and stripped before the single letters are scanned, so it is never taken for Tuesday
func ParseMeetingDays(meets string) []Day {
	meets = strings.TrimSpace(meets)
	if meets == "" || meets == "TBA" {
		return []Day{}
	}

	daysPart, _, _ := strings.Cut(meets, " ")
	days := make(map[Day]bool)
	if strings.Contains(daysPart, "Th") {
		days[Thursday] = true
		daysPart = strings.ReplaceAll(daysPart, "Th", "")
	}
	for _, letter := range daysPart {
		switch letter {
		case 'M':
			days[Monday] = true
		case 'T':
			days[Tuesday] = true
		case 'W':
			days[Wednesday] = true
		case 'F':
			days[Friday] = true
		}
	}

	// Keep weekday order
	return lo.Filter(Days, func(day Day, _ int) bool { return days[day] })
}

// TimeBlock returns the time portion of a descriptor ("10-10:50a" for "MWF 10-10:50a"); descriptors without one read as "TBA"
func TimeBlock(meets string) string {
	_, block, found := strings.Cut(strings.TrimSpace(meets), " ")
	if !found || strings.TrimSpace(block) == "" {
		return "TBA"
	}
	return strings.TrimSpace(block)
}

// Conflicts checks whether some meeting block of course1 overlaps some meeting block of course2
func Conflicts(course1, course2 Course) bool {
	for _, block1 := range course1.MeetingTimes {
		for _, block2 := range course2.MeetingTimes {
			if block1.Overlaps(block2) {
				return true
			}
		}
	}
	return false
}
