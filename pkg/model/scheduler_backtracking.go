package model

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type backtrackingScheduler struct {
	catalog Catalog
	options Options
}

func NewBacktrackingScheduler(catalog Catalog, options Options) Scheduler {
	return &backtrackingScheduler{
		catalog: catalog,
		options: options.withDefaults(),
	}
}

func (scheduler *backtrackingScheduler) Build(filtered []Course, profile Profile) Result {
	result := Result{
		ID:        uuid.NewString(),
		Schedules: []Schedule{},
		Errors:    []string{},
	}
	evaluator := newPredicateEvaluator(profile)

	//** Seed with the necessary courses
	seed, errors := seedSchedule(scheduler.catalog, evaluator, profile)
	if len(errors) > 0 {
		result.Errors = errors
		return result
	}

	//** Partition the pool
	// Seeded courses take the first positions, the rest of the filtered courses follow them
	seeded := toSet(lo.Map(seed, func(course Course, _ int) string { return course.Code }))
	courses := append(slices.Clone(seed), lo.Reject(filtered, func(course Course, _ int) bool { return seeded[course.Code] })...)

	quota := max(0, profile.RequiredCoursesThisSemester-len(seed))
	requiredOptions := make([]int, 0, quota)
	electiveOptions := make([]int, 0, len(courses)-len(seed))
	for position := len(seed); position < len(courses); position++ {
		if evaluator.Required(courses[position].Code) && len(requiredOptions) < quota {
			requiredOptions = append(requiredOptions, position)
		} else {
			electiveOptions = append(electiveOptions, position)
		}
	}
	scheduler.options.Orderer.Order(requiredOptions)
	scheduler.options.Orderer.Order(electiveOptions)

	//** Search
	state := newSearchState(evaluator, scheduler.options, profile, courses, requiredOptions, electiveOptions)
	for position := range seed {
		state.used[position] = true
		state.push(position)
	}
	state.explore()

	//** Rank
	schedules := state.accepted
	slices.SortStableFunc(schedules, func(schedule1, schedule2 Schedule) int {
		return cmp.Compare(schedule2.Score, schedule1.Score)
	})
	if scheduler.options.MaxResults > 0 && len(schedules) > scheduler.options.MaxResults {
		schedules = schedules[:scheduler.options.MaxResults]
	}

	result.Schedules = schedules
	result.Stats = state.stats
	scheduler.options.Logger.Infof(
		"search %v: explored=%d pruned=%d duplicates=%d accepted=%d capped=%v",
		result.ID, state.stats.Explored, state.stats.Pruned, state.stats.Duplicates, state.stats.Accepted, state.stats.Capped,
	)
	return result
}

func (scheduler *backtrackingScheduler) Verify(schedule Schedule, profile Profile) bool {
	return verify(schedule, profile)
}

// searchState holds the candidate arena of one Build call: a fixed-capacity slot array of course positions filled up to cursor,
// plus a used mark per position
type searchState struct {
	scorer  Scorer
	profile Profile

	courses    []Course
	matrix     *conflictMatrix
	required   []int
	electives  []int
	used       []bool
	isRequired []bool

	slots         []int
	cursor        int
	requiredCount int // Candidate courses whose code is in the remaining required list
	writNeeded    bool

	maxSchedules int
	seen         map[string]bool
	accepted     []Schedule
	stats        SearchStats
}

func newSearchState(
	evaluator predicateEvaluator,
	options Options,
	profile Profile,
	courses []Course,
	required []int,
	electives []int,
) *searchState {
	isRequired := lo.Map(courses, func(course Course, _ int) bool {
		return evaluator.Required(course.Code)
	})
	return &searchState{
		scorer:       options.Scorer,
		profile:      profile,
		courses:      courses,
		matrix:       newConflictMatrix(courses, evaluator),
		required:     required,
		electives:    electives,
		used:         make([]bool, len(courses)),
		isRequired:   isRequired,
		slots:        make([]int, profile.ClassesPerSemester),
		writNeeded:   profile.NeedsWrit,
		maxSchedules: options.MaxSchedules,
		seen:         make(map[string]bool),
		accepted:     make([]Schedule, 0),
	}
}

func (state *searchState) explore() {
	if state.stats.Capped {
		return
	}
	state.stats.Explored++

	if state.cursor >= len(state.slots) {
		state.accept()
		return
	}

	// Required options go first while the quota is unmet
	if state.requiredCount < state.profile.RequiredCoursesThisSemester {
		for _, position := range state.required {
			if state.used[position] {
				continue
			}
			state.tryOption(position)
			if state.stats.Capped {
				return
			}
		}
	}

	for _, position := range state.electiveCandidates() {
		// A required course taken as an elective must not push the candidate past the quota
		if state.isRequired[position] && state.requiredCount >= state.profile.RequiredCoursesThisSemester {
			continue
		}
		state.tryOption(position)
		if state.stats.Capped {
			return
		}
	}
}

// Unused electives, narrowed to WRIT ones while the requirement is unmet. Falls back to every unused elective when no WRIT one is left
func (state *searchState) electiveCandidates() []int {
	unused := lo.Filter(state.electives, func(position int, _ int) bool { return !state.used[position] })
	if !state.writNeeded {
		return unused
	}

	writ := lo.Filter(unused, func(position int, _ int) bool { return state.courses[position].Writ })
	if len(writ) == 0 {
		return unused
	}
	return writ
}

func (state *searchState) tryOption(position int) {
	if state.conflicts(position) {
		state.stats.Pruned++
		return
	}

	writNeeded := state.writNeeded
	state.used[position] = true
	state.push(position)

	state.explore()

	state.pop()
	state.used[position] = false
	state.writNeeded = writNeeded
}

func (state *searchState) push(position int) {
	state.slots[state.cursor] = position
	state.cursor++
	if state.isRequired[position] {
		state.requiredCount++
	}
	if state.courses[position].Writ {
		state.writNeeded = false
	}
}

func (state *searchState) pop() {
	state.cursor--
	if state.isRequired[state.slots[state.cursor]] {
		state.requiredCount--
	}
}

func (state *searchState) conflicts(position int) bool {
	return lo.SomeBy(state.slots[:state.cursor], func(placed int) bool {
		return state.matrix.Conflicts(placed, position)
	})
}

func (state *searchState) accept() {
	schedule := Schedule{Courses: lo.Map(state.slots[:state.cursor], func(position int, _ int) Course {
		return state.courses[position]
	})}
	key := schedule.Key()
	if state.seen[key] {
		state.stats.Duplicates++
		return
	}
	state.seen[key] = true

	schedule.Score = state.scorer.Score(schedule, state.profile)
	state.accepted = append(state.accepted, schedule)
	state.stats.Accepted++
	if state.stats.Accepted >= state.maxSchedules {
		state.stats.Capped = true
	}
}
