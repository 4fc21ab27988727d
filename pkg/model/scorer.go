package model

import (
	"math"
	"slices"
)

type Scorer interface {
	// Returns how well a complete schedule fits the profile's soft preferences, in [0, 100]
	Score(schedule Schedule, profile Profile) float64
}

const (
	maxScore           = 100.0
	dayBalancePenalty  = 10.0
	requiredPenalty    = 15.0
	departmentPenalty  = 5.0
	missingWritPenalty = 10.0
)

type preferenceScorer struct{}

func NewPreferenceScorer() Scorer {
	return preferenceScorer{}
}

func (preferenceScorer) Score(schedule Schedule, profile Profile) float64 {
	score := maxScore

	// Day balance deviation
	balance := schedule.DayBalance()
	score -= dayBalancePenalty * float64(abs(balance.MWF-profile.DayBalance.MWF)+abs(balance.TTh-profile.DayBalance.TTh))

	// Required count deviation
	required := schedule.RequiredCount(profile.RemainingRequired)
	score -= requiredPenalty * float64(abs(required-profile.RequiredCoursesThisSemester))

	// Electives outside the preferred departments
	if len(profile.PreferredDepartments) > 0 {
		for _, course := range schedule.Courses {
			if slices.Contains(profile.RemainingRequired, course.Code) || slices.Contains(profile.NecessaryCourses, course.Code) {
				continue
			}
			if !slices.Contains(profile.PreferredDepartments, course.Department()) {
				score -= departmentPenalty
			}
		}
	}

	if profile.NeedsWrit && !schedule.HasWrit() {
		score -= missingWritPenalty
	}

	return math.Max(0, score)
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
