// Package random provides sampling primitives on top of an injectable dice roller.
//
// Every function takes the roller explicitly so callers can swap the
// crypto-backed dice.DefaultRoller for a seeded one in tests and replays.
package random

import (
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/honor-run-forge/internal/errors"
)

// Weighted pairs an item with its relative selection weight.
type Weighted[T any] struct {
	Item   T
	Weight int
}

// Int returns a uniform integer in [minValue, maxValue].
func Int(r dice.Roller, minValue, maxValue int) (int, error) {
	if maxValue < minValue {
		return 0, errors.InvalidRangef("invalid range [%d, %d]", minValue, maxValue)
	}
	roll, err := r.Roll(maxValue - minValue + 1)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll")
	}
	return minValue + roll - 1, nil
}

// Shuffle returns a shuffled copy of items.
func Shuffle[T any](r dice.Roller, items []T) ([]T, error) {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j, err := Int(r, 0, i)
		if err != nil {
			return nil, err
		}
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// PickOne returns a uniformly random element of items.
func PickOne[T any](r dice.Roller, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, errors.EmptyInput("cannot pick from an empty list")
	}
	idx, err := Int(r, 0, len(items)-1)
	if err != nil {
		return zero, err
	}
	return items[idx], nil
}

// PickMany returns count distinct elements in random order. Count is
// clamped: count <= 0 yields an empty slice and count >= len(items) yields
// every element shuffled.
func PickMany[T any](r dice.Roller, items []T, count int) ([]T, error) {
	if count <= 0 {
		return []T{}, nil
	}
	shuffled, err := Shuffle(r, items)
	if err != nil {
		return nil, err
	}
	if count >= len(shuffled) {
		return shuffled, nil
	}
	return shuffled[:count], nil
}

// PickWeighted selects an item with probability proportional to its weight.
// Entries with a weight <= 0 never win.
func PickWeighted[T any](r dice.Roller, entries []Weighted[T]) (T, error) {
	var zero T
	total := 0
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total == 0 {
		return zero, errors.EmptyInput("no entry has a positive weight")
	}

	roll, err := Int(r, 1, total)
	if err != nil {
		return zero, err
	}
	cumulative := 0
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		cumulative += e.Weight
		if roll <= cumulative {
			return e.Item, nil
		}
	}
	// unreachable: roll never exceeds total
	return zero, errors.Internal("weighted pick fell through")
}

// Composition splits total into parts positive addends using parts-1
// distinct cut points drawn from [1, total-1].
func Composition(r dice.Roller, total, parts int) ([]int, error) {
	if parts <= 1 {
		return []int{total}, nil
	}
	if total < parts {
		return nil, errors.InvalidRangef("cannot split %d into %d positive parts", total, parts)
	}

	cutSet := make(map[int]struct{}, parts-1)
	for len(cutSet) < parts-1 {
		cut, err := Int(r, 1, total-1)
		if err != nil {
			return nil, err
		}
		cutSet[cut] = struct{}{}
	}

	cuts := make([]int, 0, len(cutSet))
	for cut := range cutSet {
		cuts = append(cuts, cut)
	}
	sort.Ints(cuts)

	segments := make([]int, 0, parts)
	prev := 0
	for _, cut := range cuts {
		segments = append(segments, cut-prev)
		prev = cut
	}
	segments = append(segments, total-prev)
	return segments, nil
}
