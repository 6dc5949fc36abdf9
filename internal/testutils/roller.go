package testutils

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// ScriptedRoller replays a fixed list of raw die results. Each Roll consumes
// the next value; values larger than the requested size are reduced modulo
// size so a script stays valid for any die. Running past the end of the
// script fails the roll.
type ScriptedRoller struct {
	mu     sync.Mutex
	values []int
	pos    int
	sizes  []int
}

// NewScriptedRoller creates a roller that returns values in order
func NewScriptedRoller(values ...int) *ScriptedRoller {
	return &ScriptedRoller{values: values}
}

var _ dice.Roller = (*ScriptedRoller)(nil)

// Roll returns the next scripted value in [1, size]
func (s *ScriptedRoller) Roll(size int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size <= 0 {
		return 0, fmt.Errorf("die size must be positive, got %d", size)
	}
	if s.pos >= len(s.values) {
		return 0, fmt.Errorf("scripted roller exhausted after %d rolls", s.pos)
	}
	v := s.values[s.pos]
	s.pos++
	s.sizes = append(s.sizes, size)
	return (v-1)%size + 1, nil
}

// RollN rolls count scripted values
func (s *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Sizes returns the die sizes requested so far
func (s *ScriptedRoller) Sizes() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.sizes))
	copy(out, s.sizes)
	return out
}

// Remaining returns how many scripted values have not been consumed
func (s *ScriptedRoller) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values) - s.pos
}
