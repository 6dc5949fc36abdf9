package entities

// ActID identifies a campaign stage
type ActID string

// Campaign stages in play order
const (
	Act1 ActID = "act1"
	Act2 ActID = "act2"
	Act3 ActID = "act3"
)

// String returns the string representation of the act
func (a ActID) String() string {
	return string(a)
}

// Act describes a campaign stage
type Act struct {
	ID         ActID  `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Summary    string `json:"summary,omitempty" yaml:"summary"`
	LevelRange string `json:"levelRange,omitempty" yaml:"level_range"`
}

// GearSlot is a fixed equipment slot such as head or main-hand
type GearSlot struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// GearItem is a catalog item that occupies exactly one slot and may be
// eligible in several acts
type GearItem struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	SlotID     string  `json:"slotId" yaml:"slot"`
	Type       string  `json:"type,omitempty" yaml:"type"`
	Acts       []ActID `json:"acts" yaml:"acts"`
	Rarity     string  `json:"rarity,omitempty" yaml:"rarity"`
	Area       string  `json:"area,omitempty" yaml:"area"`
	Location   string  `json:"location,omitempty" yaml:"location"`
	Properties string  `json:"properties,omitempty" yaml:"properties"`
	Notes      string  `json:"notes,omitempty" yaml:"notes"`
}

// EligibleIn reports whether the item can be rolled in the act
func (i GearItem) EligibleIn(act ActID) bool {
	for _, a := range i.Acts {
		if a == act {
			return true
		}
	}
	return false
}

// SlotCardGroupID identifies one of the fixed loot card bundles
type SlotCardGroupID string

// Card groups
const (
	GroupWardrobe   SlotCardGroupID = "wardrobe"
	GroupAdornments SlotCardGroupID = "adornments"
	GroupArsenal    SlotCardGroupID = "arsenal"
)

// SlotCardGroup bundles related slots into a single loot draw
type SlotCardGroup struct {
	ID          SlotCardGroupID `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	SlotIDs     []string        `json:"slotIds" yaml:"slots"`
	Icon        string          `json:"icon,omitempty" yaml:"icon"`
	Description string          `json:"description,omitempty" yaml:"description"`
}

// SlotRollState records what a player has unlocked in one slot of one act.
// UnlockedItemIDs is insertion ordered; the last entry is the most recent
// unlock. CurrentItemID is not cleared when its item is removed from the
// unlocked list.
type SlotRollState struct {
	CurrentItemID   *string  `json:"currentItemId"`
	UnlockedItemIDs []string `json:"unlockedItemIds"`
}

// HasUnlocked reports whether itemID is in the unlocked list
func (s SlotRollState) HasUnlocked(itemID string) bool {
	for _, id := range s.UnlockedItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

// EquippedItemID returns the item to show as equipped: the current item if
// set, otherwise the most recent unlock
func (s SlotRollState) EquippedItemID() (string, bool) {
	if s.CurrentItemID != nil {
		return *s.CurrentItemID, true
	}
	if n := len(s.UnlockedItemIDs); n > 0 {
		return s.UnlockedItemIDs[n-1], true
	}
	return "", false
}

// PlayerGearState maps act -> slot id -> slot state. Missing keys mean no
// rolls yet.
type PlayerGearState map[ActID]map[string]SlotRollState

// PlayerGearStates maps player number to that player's gear state
type PlayerGearStates map[int]PlayerGearState
