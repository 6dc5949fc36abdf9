// Package gearstate holds the pure state transitions of a forge session and
// the loot roll that turns a completed task into candidate cards.
//
// Every transition takes a Session value and returns a new one. Maps along
// the changed path are copied; untouched branches are shared with the input,
// so callers must never mutate a Session in place.
package gearstate

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/honor-run-forge/internal/entities"
)

// SlotSource supplies the default slot a player views after locking a build
type SlotSource interface {
	DefaultSlotID(act entities.ActID) string
}

// ActSource reports which acts exist
type ActSource interface {
	HasAct(act entities.ActID) bool
}

// SelectBuild records a player's chosen option and points their active slot
// at the first slot of the active act
func SelectBuild(s entities.Session, slots SlotSource, player int, optionID string) entities.Session {
	s.PlayerSelections = withInt(s.PlayerSelections, player, optionID)
	s.PlayerActiveSlots = withInt(s.PlayerActiveSlots, player, slots.DefaultSlotID(s.ActiveActID))
	return s
}

// ResetSelection clears a player's chosen build and active slot. Gear state
// is kept.
func ResetSelection(s entities.Session, player int) entities.Session {
	s.PlayerSelections = withoutInt(s.PlayerSelections, player)
	s.PlayerActiveSlots = withoutInt(s.PlayerActiveSlots, player)
	return s
}

// SelectSlot records which slot a player is viewing
func SelectSlot(s entities.Session, player int, slotID string) entities.Session {
	s.PlayerActiveSlots = withInt(s.PlayerActiveSlots, player, slotID)
	return s
}

// UnlockItem equips itemID in the slot and appends it to the unlocked list
// if it is not already there
func UnlockItem(s entities.Session, player int, act entities.ActID, slotID, itemID string) entities.Session {
	current, _ := s.SlotState(player, act, slotID)

	unlocked := current.UnlockedItemIDs
	if !current.HasUnlocked(itemID) {
		unlocked = make([]string, 0, len(current.UnlockedItemIDs)+1)
		unlocked = append(unlocked, current.UnlockedItemIDs...)
		unlocked = append(unlocked, itemID)
	}

	id := itemID
	s.PlayerGearStates = withSlotState(s.PlayerGearStates, player, act, slotID, entities.SlotRollState{
		CurrentItemID:   &id,
		UnlockedItemIDs: unlocked,
	})
	return s
}

// RemoveUnlockedItem drops itemID from the unlocked list. The session is
// returned unchanged when the path or the item is missing. The current item
// is left as is even when it is the one removed.
func RemoveUnlockedItem(s entities.Session, player int, act entities.ActID, slotID, itemID string) entities.Session {
	current, ok := s.SlotState(player, act, slotID)
	if !ok || !current.HasUnlocked(itemID) {
		return s
	}

	unlocked := make([]string, 0, len(current.UnlockedItemIDs)-1)
	for _, id := range current.UnlockedItemIDs {
		if id != itemID {
			unlocked = append(unlocked, id)
		}
	}

	s.PlayerGearStates = withSlotState(s.PlayerGearStates, player, act, slotID, entities.SlotRollState{
		CurrentItemID:   current.CurrentItemID,
		UnlockedItemIDs: unlocked,
	})
	return s
}

// RegenerateRun replaces the draft and clears every selection, gear state,
// active slot and completed task. Player count, names and the active act
// carry over.
func RegenerateRun(s entities.Session, run entities.RunResult) entities.Session {
	s.CurrentRun = run
	s.PlayerSelections = map[int]string{}
	s.PlayerGearStates = entities.PlayerGearStates{}
	s.PlayerActiveSlots = map[int]string{}
	s.CompletedTasks = map[string]bool{}
	return s
}

// ToggleTask marks a task complete or incomplete. The returned bool is true
// only on the incomplete to complete edge, which is when a loot roll fires.
func ToggleTask(s entities.Session, taskID string, completed bool) (entities.Session, bool) {
	already := s.CompletedTasks[taskID]
	if completed {
		if already {
			return s, false
		}
		next := make(map[string]bool, len(s.CompletedTasks)+1)
		for k, v := range s.CompletedTasks {
			next[k] = v
		}
		next[taskID] = true
		s.CompletedTasks = next
		return s, true
	}

	if !already {
		return s, false
	}
	next := make(map[string]bool, len(s.CompletedTasks))
	for k, v := range s.CompletedTasks {
		if k != taskID {
			next[k] = v
		}
	}
	s.CompletedTasks = next
	return s, false
}

// SetActiveAct switches the active act. Unknown acts are ignored.
func SetActiveAct(s entities.Session, acts ActSource, act entities.ActID) entities.Session {
	if !acts.HasAct(act) {
		return s
	}
	s.ActiveActID = act
	return s
}

// ClampPlayerCount bounds n to the supported player range
func ClampPlayerCount(n int) int {
	return min(max(n, entities.MinPlayerCount), entities.MaxPlayerCount)
}

// SetPlayerCount stores a clamped player count. The draft is not touched
// until the next regenerate.
func SetPlayerCount(s entities.Session, n int) entities.Session {
	s.PlayerCount = ClampPlayerCount(n)
	return s
}

// RenamePlayer stores a display name truncated to the maximum length
func RenamePlayer(s entities.Session, player int, name string) entities.Session {
	if runes := []rune(name); len(runes) > entities.MaxPlayerNameLength {
		name = string(runes[:entities.MaxPlayerNameLength])
	}
	s.PlayerNames = withInt(s.PlayerNames, player, name)
	return s
}

// PlayerDisplayName returns the trimmed stored name or "Player N"
func PlayerDisplayName(s entities.Session, player int) string {
	if name := strings.TrimSpace(s.PlayerNames[player]); name != "" {
		return name
	}
	return fmt.Sprintf("Player %d", player)
}

// ApplyLootCard commits a picked card as an unlock. Placeholder cards are
// ignored.
func ApplyLootCard(s entities.Session, player int, card entities.LootCard, act entities.ActID) entities.Session {
	if !card.Selectable() {
		return s
	}
	return UnlockItem(s, player, act, *card.SlotID, card.Item.ID)
}

func withInt(m map[int]string, key int, value string) map[int]string {
	next := make(map[int]string, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	next[key] = value
	return next
}

func withoutInt(m map[int]string, key int) map[int]string {
	if _, ok := m[key]; !ok {
		return m
	}
	next := make(map[int]string, len(m))
	for k, v := range m {
		if k != key {
			next[k] = v
		}
	}
	return next
}

// withSlotState copies the player, act and slot maps along one path and
// shares every other branch
func withSlotState(
	states entities.PlayerGearStates,
	player int,
	act entities.ActID,
	slotID string,
	state entities.SlotRollState,
) entities.PlayerGearStates {
	playerState := states[player]
	actState := playerState[act]

	nextAct := make(map[string]entities.SlotRollState, len(actState)+1)
	for k, v := range actState {
		nextAct[k] = v
	}
	nextAct[slotID] = state

	nextPlayer := make(entities.PlayerGearState, len(playerState)+1)
	for k, v := range playerState {
		nextPlayer[k] = v
	}
	nextPlayer[act] = nextAct

	next := make(entities.PlayerGearStates, len(states)+1)
	for k, v := range states {
		next[k] = v
	}
	next[player] = nextPlayer

	return next
}
