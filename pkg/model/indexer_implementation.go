package model

// Pairs are laid out row by row over the strict lower triangle: (0,1), (0,2), (1,2), (0,3), ...
type indexerImplementation struct {
	positions uint64
}

func (indexer *indexerImplementation) Index(position1, position2 uint64) uint64 {
	if position1 > position2 {
		position1, position2 = position2, position1
	}
	return position2*(position2-1)/2 + position1
}

func (indexer *indexerImplementation) Size() uint64 {
	if indexer.positions < 2 {
		return 0
	}
	return indexer.positions * (indexer.positions - 1) / 2
}
