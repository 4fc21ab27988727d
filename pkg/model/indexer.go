package model

// indexer interface is designed to give a unique index to an unordered pair of search positions
type indexer interface {
	// Returns a unique index to a pair of distinct positions, regardless of their order
	Index(position1, position2 uint64) uint64
	// Returns the number of distinct pairs
	Size() uint64
}

func newIndexer(positions uint64) indexer {
	return &indexerImplementation{positions: positions}
}
