package gearstate

import (
	"sort"

	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
)

// Picks tracks which card each player has locked on an open overlay. A
// player holds at most one lock across all of their groups and may change
// it until the overlay is confirmed.
type Picks struct {
	overlay entities.LootOverlay
	locks   map[int]string
}

// NewPicks starts tracking picks for an overlay
func NewPicks(overlay entities.LootOverlay) *Picks {
	return &Picks{
		overlay: overlay,
		locks:   make(map[int]string),
	}
}

// Overlay returns the overlay being picked from
func (p *Picks) Overlay() entities.LootOverlay {
	return p.overlay
}

// Select locks cardID for player, replacing any earlier lock
func (p *Picks) Select(player int, cardID string) error {
	card, ok := p.overlay.Card(cardID)
	if !ok {
		return errors.NotFoundf("card %s not found", cardID)
	}
	if card.PlayerNumber != player {
		return errors.InvalidArgumentf("card %s belongs to player %d", cardID, card.PlayerNumber)
	}
	if !card.Selectable() {
		return errors.FailedPreconditionf("card %s has no eligible item", cardID)
	}
	p.locks[player] = cardID
	return nil
}

// Clear removes a player's lock
func (p *Picks) Clear(player int) {
	delete(p.locks, player)
}

// Locked returns the card a player has locked
func (p *Picks) Locked(player int) (entities.LootCard, bool) {
	id, ok := p.locks[player]
	if !ok {
		return entities.LootCard{}, false
	}
	return p.overlay.Card(id)
}

// Pending lists players who hold a selectable card but have no lock yet
func (p *Picks) Pending() []int {
	var pending []int
	for _, player := range p.overlay.PlayerNumbers() {
		if _, locked := p.locks[player]; locked {
			continue
		}
		for _, card := range p.overlay.CardsFor(player) {
			if card.Selectable() {
				pending = append(pending, player)
				break
			}
		}
	}
	return pending
}

// Satisfied reports whether every player with a selectable card has locked
// one. An overlay with no players is satisfied.
func (p *Picks) Satisfied() bool {
	return len(p.Pending()) == 0
}

// Confirm commits every lock as an unlock in player order
func (p *Picks) Confirm(s entities.Session) (entities.Session, error) {
	if pending := p.Pending(); len(pending) > 0 {
		return s, errors.FailedPrecondition("not every player has picked a card").
			WithMeta("pending_players", pending)
	}

	players := make([]int, 0, len(p.locks))
	for player := range p.locks {
		players = append(players, player)
	}
	sort.Ints(players)

	for _, player := range players {
		card, ok := p.overlay.Card(p.locks[player])
		if !ok {
			continue
		}
		s = ApplyLootCard(s, player, card, p.overlay.ActID)
	}
	return s, nil
}
