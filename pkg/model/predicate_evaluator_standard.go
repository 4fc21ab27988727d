package model

import (
	"github.com/samber/lo"
)

type predicateEvaluatorStandard struct {
	profile   Profile
	taken     map[string]bool
	required  map[string]bool
	necessary map[string]bool
}

func newPredicateEvaluator(profile Profile) predicateEvaluator {
	return &predicateEvaluatorStandard{
		profile:   profile,
		taken:     toSet(profile.CoursesTaken),
		required:  toSet(profile.RemainingRequired),
		necessary: toSet(profile.NecessaryCourses),
	}
}

func (evaluator *predicateEvaluatorStandard) Conflicts(course1, course2 Course) bool {
	return Conflicts(course1, course2)
}

func (evaluator *predicateEvaluatorStandard) PrerequisitesSatisfied(course Course) bool {
	return prerequisitesSatisfied(course, evaluator.taken)
}

func (evaluator *predicateEvaluatorStandard) UnavailableDays(course Course) []Day {
	return lo.Filter(ParseMeetingDays(course.Meets), func(day Day, _ int) bool {
		return !evaluator.profile.DayAllowed(day)
	})
}

func (evaluator *predicateEvaluatorStandard) TimeAllowed(course Course) bool {
	return evaluator.profile.TimeAllowed(TimeBlock(course.Meets))
}

func (evaluator *predicateEvaluatorStandard) Taken(code string) bool {
	return evaluator.taken[code]
}

func (evaluator *predicateEvaluatorStandard) Required(code string) bool {
	return evaluator.required[code]
}

func (evaluator *predicateEvaluatorStandard) Necessary(code string) bool {
	return evaluator.necessary[code]
}

// PrerequisitesSatisfied checks the AND-of-OR prerequisite groups of the course against the taken codes. A course without groups is always satisfied
func PrerequisitesSatisfied(course Course, taken []string) bool {
	return prerequisitesSatisfied(course, toSet(taken))
}

func prerequisitesSatisfied(course Course, taken map[string]bool) bool {
	return lo.EveryBy(course.PrereqGroups, func(group []string) bool {
		return lo.SomeBy(group, func(code string) bool { return taken[code] })
	})
}

func toSet(codes []string) map[string]bool {
	return lo.SliceToMap(codes, func(code string) (string, bool) { return code, true })
}
