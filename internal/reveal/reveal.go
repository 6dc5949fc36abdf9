// Package reveal animates loot cards: each card cycles through random
// faces from its slot's pool before settling on the item already dealt.
// The spin never changes which item a card carries.
package reveal

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/honor-run-forge/internal/catalog"
	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/pkg/random"
)

// Face is one frame shown on a card
type Face struct {
	CardID string
	Item   *entities.GearItem
	// Settled is true for the final frame of a card
	Settled bool
}

// Timing controls the pace of a spin
type Timing struct {
	// Start is the wait before the first random face
	Start time.Duration
	// FirstDelay seeds the growing gap between faces
	FirstDelay time.Duration
	// Step is added to the gap after each face, up to MaxDelay
	Step     time.Duration
	MaxDelay time.Duration

	// A card settles after SettleBase plus SettlePerCard for each card dealt
	// to the same player before it, plus up to SettleJitter
	SettleBase    time.Duration
	SettlePerCard time.Duration
	SettleJitter  time.Duration
}

// DefaultTiming matches the pace of the table overlay
func DefaultTiming() Timing {
	return Timing{
		Start:         60 * time.Millisecond,
		FirstDelay:    70 * time.Millisecond,
		Step:          18 * time.Millisecond,
		MaxDelay:      240 * time.Millisecond,
		SettleBase:    950 * time.Millisecond,
		SettlePerCard: 450 * time.Millisecond,
		SettleJitter:  220 * time.Millisecond,
	}
}

// Config configures a Spinner
type Config struct {
	Index  *catalog.Index
	Roller dice.Roller
	Timing Timing
	// Emit receives every face. Calls are never concurrent.
	Emit func(Face)
}

// Validate ensures the config is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Index == nil {
		vb.RequiredField("index")
	}
	if c.Roller == nil {
		vb.RequiredField("roller")
	}
	if c.Emit == nil {
		vb.RequiredField("emit")
	}
	if c.Timing.MaxDelay <= 0 {
		vb.InvalidField("timing.max_delay", "must be positive")
	}
	return vb.Build()
}

// Spinner plays card reveals
type Spinner struct {
	index  *catalog.Index
	roller dice.Roller
	timing Timing
	emit   func(Face)

	mu sync.Mutex
}

// NewSpinner creates a spinner
func NewSpinner(cfg *Config) (*Spinner, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Spinner{
		index:  cfg.Index,
		roller: cfg.Roller,
		timing: cfg.Timing,
		emit:   cfg.Emit,
	}, nil
}

// Spin reveals every card of the overlay and blocks until all have settled
// or ctx is done. Placeholder cards and cards whose pool holds at most one
// item settle at once. After ctx is done no further faces are emitted and
// ctx.Err() is returned.
func (s *Spinner) Spin(ctx context.Context, overlay entities.LootOverlay) error {
	var wg sync.WaitGroup
	var errMu sync.Mutex
	var firstErr error

	perPlayer := make(map[int]int)
	for _, card := range overlay.Cards {
		position := perPlayer[card.PlayerNumber]
		perPlayer[card.PlayerNumber]++

		if !card.Selectable() {
			s.send(ctx, Face{CardID: card.ID, Settled: true})
			continue
		}

		pool := s.index.Pool(overlay.ActID, *card.SlotID)
		if len(pool) <= 1 {
			s.send(ctx, Face{CardID: card.ID, Item: card.Item, Settled: true})
			continue
		}

		jitter, err := s.jitter()
		if err != nil {
			errMu.Lock()
			firstErr = err
			errMu.Unlock()
			break
		}
		settleAfter := s.timing.SettleBase + time.Duration(position)*s.timing.SettlePerCard + jitter

		wg.Add(1)
		go func(card entities.LootCard) {
			defer wg.Done()
			if err := s.spinCard(ctx, card, pool, settleAfter); err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
			}
		}(card)
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}
	return firstErr
}

func (s *Spinner) spinCard(ctx context.Context, card entities.LootCard, pool []entities.GearItem, settleAfter time.Duration) error {
	settle := time.NewTimer(settleAfter)
	defer settle.Stop()
	next := time.NewTimer(s.timing.Start)
	defer next.Stop()

	delay := s.timing.FirstDelay
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-settle.C:
			s.send(ctx, Face{CardID: card.ID, Item: card.Item, Settled: true})
			return nil
		case <-next.C:
			candidate, err := s.pick(pool)
			if err != nil {
				return err
			}
			s.send(ctx, Face{CardID: card.ID, Item: &candidate})
			delay = min(s.timing.MaxDelay, delay+s.timing.Step)
			next.Reset(delay)
		}
	}
}

// send emits a face unless ctx is already done
func (s *Spinner) send(ctx context.Context, face Face) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	s.emit(face)
}

func (s *Spinner) pick(pool []entities.GearItem) (entities.GearItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, err := random.PickOne(s.roller, pool)
	if err != nil {
		return entities.GearItem{}, errors.Wrap(err, "failed to pick spin face")
	}
	return item, nil
}

func (s *Spinner) jitter() (time.Duration, error) {
	if s.timing.SettleJitter <= 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ms, err := random.Int(s.roller, 0, int(s.timing.SettleJitter/time.Millisecond))
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll settle jitter")
	}
	return time.Duration(ms) * time.Millisecond, nil
}
