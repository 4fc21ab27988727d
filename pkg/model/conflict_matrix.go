package model

// conflictMatrix holds the time conflicts of every pair of courses of one search, addressed by their position
type conflictMatrix struct {
	indexer   indexer
	conflicts []bool
}

func newConflictMatrix(courses []Course, evaluator predicateEvaluator) *conflictMatrix {
	matrix := conflictMatrix{indexer: newIndexer(uint64(len(courses)))}
	matrix.conflicts = make([]bool, matrix.indexer.Size())

	for position2 := 1; position2 < len(courses); position2++ {
		for position1 := range position2 {
			index := matrix.indexer.Index(uint64(position1), uint64(position2))
			matrix.conflicts[index] = evaluator.Conflicts(courses[position1], courses[position2])
		}
	}

	return &matrix
}

// Conflicts checks whether the courses at both positions overlap. A position never conflicts with itself
func (matrix *conflictMatrix) Conflicts(position1, position2 int) bool {
	if position1 == position2 {
		return false
	}
	return matrix.conflicts[matrix.indexer.Index(uint64(position1), uint64(position2))]
}
