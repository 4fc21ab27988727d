package model

import (
	"math/rand/v2"
)

// Orderer decides the order in which the options of a pool are branched on.
// Implementations must be safe for concurrent use since one scheduler may serve many requests
type Orderer interface {
	Order(options []int)
}

type identityOrderer struct{}

// NewIdentityOrderer keeps options in filtered-pool order, making the search fully deterministic
func NewIdentityOrderer() Orderer {
	return identityOrderer{}
}

func (identityOrderer) Order([]int) {}

type shuffleOrderer struct {
	seed uint64
}

// NewShuffleOrderer randomizes option order to diversify results across calls.
// A non-zero seed reproduces the same permutation on every call; zero draws a fresh permutation each time
func NewShuffleOrderer(seed uint64) Orderer {
	return shuffleOrderer{seed: seed}
}

func (orderer shuffleOrderer) Order(options []int) {
	var random *rand.Rand
	if orderer.seed == 0 {
		random = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		random = rand.New(rand.NewPCG(orderer.seed, orderer.seed^0x9e3779b97f4a7c15))
	}
	random.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
}
