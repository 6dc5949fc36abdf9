package random

import (
	"math/rand/v2"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/honor-run-forge/internal/errors"
)

// SeededRoller is a deterministic dice.Roller backed by a PCG source.
// The same seed always produces the same sequence of rolls.
type SeededRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded creates a roller that replays the same sequence for a seed
func NewSeeded(seed uint64) *SeededRoller {
	return &SeededRoller{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

var _ dice.Roller = (*SeededRoller)(nil)

// Roll returns a value in [1, size]
func (s *SeededRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size
func (s *SeededRoller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count must not be negative, got %d", count)
	}
	results := make([]int, count)
	for i := range results {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}
