package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

func verify(schedule Schedule, profile Profile) bool {
	courses := schedule.Courses

	// Complete and without repeated codes
	if len(courses) != profile.ClassesPerSemester || len(lo.UniqBy(courses, func(course Course) string { return course.Code })) != len(courses) {
		return false
	}

	// No pair of courses overlaps
	for i := range len(courses) - 1 {
		for j := i + 1; j < len(courses); j++ {
			if Conflicts(courses[i], courses[j]) {
				return false
			}
		}
	}

	// Every necessary course is present
	codes := schedule.Codes()
	return lo.EveryBy(profile.NecessaryCourses, func(code string) bool {
		return lo.Contains(codes, code)
	})
}

// Resolves the necessary courses into the seed of every schedule. The first failing check short-circuits
func seedSchedule(catalog Catalog, evaluator predicateEvaluator, profile Profile) ([]Course, []string) {
	codes := lo.Uniq(profile.NecessaryCourses)

	//** Every necessary course must exist
	missing := lo.Filter(codes, func(code string, _ int) bool {
		_, ok := catalog.Course(code)
		return !ok
	})
	if len(missing) > 0 {
		return nil, lo.Map(missing, func(code string, _ int) string {
			return fmt.Sprintf("necessary course not found: %v", code)
		})
	}
	seed := lo.Map(codes, func(code string, _ int) Course {
		course, _ := catalog.Course(code)
		return course
	})

	//** Every necessary course must be fully described
	incomplete := lo.Filter(seed, func(course Course, _ int) bool { return !course.Complete() })
	if len(incomplete) > 0 {
		return nil, lo.Map(incomplete, func(course Course, _ int) string {
			return fmt.Sprintf("necessary course %v is missing catalog fields: %v", course.Code, strings.Join(course.MissingFields, ", "))
		})
	}

	malformed := lo.Filter(seed, func(course Course, _ int) bool { return course.Malformed })
	if len(malformed) > 0 {
		return nil, lo.Map(malformed, func(course Course, _ int) string {
			return fmt.Sprintf("necessary course %v has malformed meeting times", course.Code)
		})
	}

	//** Prerequisites
	unmet := lo.Filter(seed, func(course Course, _ int) bool { return !evaluator.PrerequisitesSatisfied(course) })
	if len(unmet) > 0 {
		return nil, []string{"missing prerequisites for: " + strings.Join(lo.Map(unmet, func(course Course, _ int) string { return course.Code }), ", ")}
	}

	//** Capacity
	if len(seed) > profile.ClassesPerSemester {
		return nil, []string{fmt.Sprintf("too many necessary courses: %d > %d", len(seed), profile.ClassesPerSemester)}
	}

	//** Necessary courses must fit together
	conflicts := make([]string, 0)
	for i := range len(seed) - 1 {
		for j := i + 1; j < len(seed); j++ {
			if evaluator.Conflicts(seed[i], seed[j]) {
				conflicts = append(conflicts, fmt.Sprintf("necessary courses %v and %v have a time conflict", seed[i].Code, seed[j].Code))
			}
		}
	}
	if len(conflicts) > 0 {
		return nil, conflicts
	}

	return seed, nil
}
