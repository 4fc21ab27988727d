package model

type predicateEvaluator interface {
	// Checks whether some meeting block of course1 overlaps some meeting block of course2
	Conflicts(course1, course2 Course) bool

	// Checks whether every prerequisite group of the course holds at least one taken course
	PrerequisitesSatisfied(course Course) bool

	// Returns the days the course meets on that the student is not available
	UnavailableDays(course Course) []Day

	// Checks whether the course's time block is one of the allowed blocks
	TimeAllowed(course Course) bool

	// Checks whether the course was already taken
	Taken(code string) bool

	// Checks whether the course is still required for the degree
	Required(code string) bool

	// Checks whether the course must appear in every schedule
	Necessary(code string) bool
}
