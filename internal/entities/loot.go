package entities

// NoEligibleSlotName labels placeholder cards
const NoEligibleSlotName = "No eligible slot"

// LootCard is one draw offered to a player. Placeholder cards have neither
// an item nor a slot.
type LootCard struct {
	ID           string          `json:"id"`
	PlayerNumber int             `json:"playerNumber"`
	GroupID      SlotCardGroupID `json:"groupId"`
	GroupName    string          `json:"groupName"`
	SlotID       *string         `json:"slotId"`
	SlotName     string          `json:"slotName"`
	Item         *GearItem       `json:"item"`
}

// Selectable reports whether the card carries an item a player can take
func (c LootCard) Selectable() bool {
	return c.Item != nil && c.SlotID != nil
}

// LootOverlay is the set of cards produced by one completed task
type LootOverlay struct {
	TaskName string     `json:"taskName"`
	ActID    ActID      `json:"actId"`
	Cards    []LootCard `json:"cards"`
}

// CardsFor returns the cards dealt to a player in deal order
func (o LootOverlay) CardsFor(playerNumber int) []LootCard {
	var out []LootCard
	for _, c := range o.Cards {
		if c.PlayerNumber == playerNumber {
			out = append(out, c)
		}
	}
	return out
}

// Card finds a card by id
func (o LootOverlay) Card(id string) (LootCard, bool) {
	for _, c := range o.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return LootCard{}, false
}

// PlayerNumbers lists the players holding cards in first-dealt order
func (o LootOverlay) PlayerNumbers() []int {
	seen := make(map[int]bool)
	var out []int
	for _, c := range o.Cards {
		if !seen[c.PlayerNumber] {
			seen[c.PlayerNumber] = true
			out = append(out, c.PlayerNumber)
		}
	}
	return out
}
