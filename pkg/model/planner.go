package model

import (
	"github.com/google/uuid"
	"github.com/limaJavier/courseplanner/internal/logger"
	"github.com/samber/lo"
)

const NoScheduleError = "no schedule satisfies the constraints"

// Planner runs the whole pipeline of one request over a shared catalog: validate, filter, check and build
type Planner struct {
	catalog   Catalog
	filter    Filter
	scheduler Scheduler
	logger    logger.Logger
}

func NewPlanner(catalog Catalog, options Options) *Planner {
	options = options.withDefaults()
	return &Planner{
		catalog:   catalog,
		filter:    NewFilter(options.Logger),
		scheduler: NewBacktrackingScheduler(catalog, options),
		logger:    options.Logger,
	}
}

func (planner *Planner) Catalog() Catalog {
	return planner.catalog
}

func (planner *Planner) Scheduler() Scheduler {
	return planner.scheduler
}

func (planner *Planner) Plan(profile Profile) Result {
	//** Validate request
	if errors := ValidateProfile(profile); len(errors) > 0 {
		planner.logger.Warnf("rejecting profile: %d validation errors", len(errors))
		return Result{ID: uuid.NewString(), Schedules: []Schedule{}, Errors: errors}
	}

	//** Filter
	filtered, errors := planner.filter.Filter(planner.catalog, profile)
	errors = append(errors, CheckFiltered(filtered, profile)...)
	planner.logger.Debugf("filtered catalog down to %d of %d courses", len(filtered), planner.catalog.Len())
	if shortfall, err := DayBalanceShortfall(filtered, profile.DayBalance); err != nil {
		planner.logger.Errorf("cannot match day balance: %v", err)
	} else if shortfall > 0 {
		planner.logger.Warnf("day balance target MWF=%d TTh=%d is short of %d courses", profile.DayBalance.MWF, profile.DayBalance.TTh, shortfall)
	}

	// A necessary course that did not survive filtering cannot be in any schedule
	kept := toSet(lo.Map(filtered, func(course Course, _ int) string { return course.Code }))
	if lo.SomeBy(profile.NecessaryCourses, func(code string) bool {
		_, exists := planner.catalog.Course(code)
		return exists && !kept[code]
	}) {
		return Result{ID: uuid.NewString(), Schedules: []Schedule{}, Errors: append(errors, NoScheduleError)}
	}

	//** Build
	result := planner.scheduler.Build(filtered, profile)
	if len(result.Schedules) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, NoScheduleError)
	}
	result.Errors = append(errors, result.Errors...)
	return result
}
