package model

import "github.com/limaJavier/courseplanner/internal/logger"

const DefaultMaxSchedules = 9999

type Scheduler interface {
	// Enumerates distinct, conflict-free schedules built from the filtered pool and returns them ranked by score.
	// Precondition failures are returned in the result's errors with no schedules
	Build(filtered []Course, profile Profile) Result

	// Checks that a schedule is complete, conflict-free, free of repeated codes and holds every necessary course
	Verify(schedule Schedule, profile Profile) bool
}

type Options struct {
	MaxSchedules int // Enumeration ceiling; non-positive means DefaultMaxSchedules
	MaxResults   int // Number of top schedules returned; non-positive returns every accepted schedule
	Orderer      Orderer
	Scorer       Scorer
	Logger       logger.Logger
}

func (options Options) withDefaults() Options {
	if options.MaxSchedules <= 0 {
		options.MaxSchedules = DefaultMaxSchedules
	}
	if options.Orderer == nil {
		options.Orderer = NewShuffleOrderer(0)
	}
	if options.Scorer == nil {
		options.Scorer = NewPreferenceScorer()
	}
	if options.Logger == nil {
		options.Logger = logger.NewNop()
	}
	return options
}
