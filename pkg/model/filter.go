package model

import (
	"fmt"

	"github.com/limaJavier/courseplanner/internal/logger"
	"github.com/samber/lo"
)

const NoWritError = "no WRIT-eligible course fits constraints"

type Filter interface {
	// Reduces the catalog to the courses compatible with the profile's hard constraints.
	// Necessary courses that cannot be kept are reported, every other rejected course is dropped silently
	Filter(catalog Catalog, profile Profile) (filtered []Course, errors []string)
}

type constraintFilter struct {
	logger logger.Logger
}

func NewFilter(log logger.Logger) Filter {
	if log == nil {
		log = logger.NewNop()
	}
	return &constraintFilter{logger: log}
}

func (filter *constraintFilter) Filter(catalog Catalog, profile Profile) ([]Course, []string) {
	evaluator := newPredicateEvaluator(profile)
	filtered := make([]Course, 0, catalog.Len())
	errors := make([]string, 0)

	for _, course := range catalog.Courses() {
		//** Necessary courses are evaluated regardless of the exclusion rules
		if evaluator.Necessary(course.Code) {
			if reasons := necessaryCourseProblems(evaluator, course); len(reasons) > 0 {
				errors = append(errors, reasons...)
				continue
			}
			filtered = append(filtered, course)
			continue
		}

		//** Every other course is dropped silently
		if reason, ok := excluded(evaluator, course); ok {
			filter.logger.Debugf("dropping %v: %v", course.Code, reason)
			continue
		}
		filtered = append(filtered, course)
	}

	if profile.NeedsWrit {
		if !lo.SomeBy(filtered, func(course Course) bool { return course.Writ }) {
			errors = append(errors, NoWritError)
		}
	} else {
		// A WRIT course cannot contribute to a requirement that does not exist, unless it is necessary anyway
		filtered = lo.Reject(filtered, func(course Course, _ int) bool {
			return course.Writ && !evaluator.Necessary(course.Code)
		})
	}

	return filtered, errors
}

// Returns one message per problem: one per unavailable day, otherwise the first of unavailable time or missing prerequisites
func necessaryCourseProblems(evaluator predicateEvaluator, course Course) []string {
	if days := evaluator.UnavailableDays(course); len(days) > 0 {
		return lo.Map(days, func(day Day, _ int) string {
			return fmt.Sprintf("necessary course %v meets on an unavailable day: %v", course.Code, day.Code())
		})
	}
	if !evaluator.TimeAllowed(course) {
		return []string{fmt.Sprintf("necessary course %v meets at an unavailable time: %v", course.Code, course.Meets)}
	}
	if !evaluator.PrerequisitesSatisfied(course) {
		return []string{fmt.Sprintf("necessary course %v is missing prerequisites", course.Code)}
	}
	return nil
}

func excluded(evaluator predicateEvaluator, course Course) (string, bool) {
	switch {
	case !course.Scheduled():
		return "no meeting time", true
	case evaluator.Taken(course.Code):
		return "already taken", true
	case len(evaluator.UnavailableDays(course)) > 0:
		return "unavailable day", true
	case !evaluator.TimeAllowed(course):
		return "unavailable time", true
	case !evaluator.PrerequisitesSatisfied(course):
		return "missing prerequisites", true
	}
	return "", false
}

// CheckFiltered reports remaining-required courses that did not survive filtering when too few remain to meet the requested count
func CheckFiltered(filtered []Course, profile Profile) []string {
	kept := toSet(lo.Map(filtered, func(course Course, _ int) string { return course.Code }))
	dropped := lo.Filter(profile.RemainingRequired, func(code string, _ int) bool { return !kept[code] })

	available := len(profile.RemainingRequired) - len(dropped)
	if available >= profile.RequiredCoursesThisSemester {
		return []string{}
	}
	return []string{fmt.Sprintf("%d required courses were requested but only %d fit the current availability; dropped: %v", profile.RequiredCoursesThisSemester, available, dropped)}
}
