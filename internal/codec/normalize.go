package codec

import (
	"strconv"

	"github.com/KirkDiggler/honor-run-forge/internal/entities"
)

// Legacy slot state keys
const (
	legacyItemIDKey   = "itemId"
	legacyStatusKey   = "status"
	legacyUnlocked    = "unlocked"
	currentItemIDKey  = "currentItemId"
	unlockedItemIDKey = "unlockedItemIds"
)

// NormalizeSlotState converts a decoded slot value into the current shape.
//
// A value with currentItemId or unlockedItemIds is read as the current
// shape, keeping only string ids. A value with itemId is the legacy shape:
// itemId becomes the current item and, when status is "unlocked", the only
// unlocked id. Anything else reports false.
func NormalizeSlotState(raw any) (entities.SlotRollState, bool) {
	slot, ok := raw.(map[string]any)
	if !ok {
		return entities.SlotRollState{}, false
	}

	_, hasCurrent := slot[currentItemIDKey]
	_, hasUnlocked := slot[unlockedItemIDKey]
	if hasCurrent || hasUnlocked {
		state := entities.SlotRollState{UnlockedItemIDs: []string{}}
		if id, ok := slot[currentItemIDKey].(string); ok {
			state.CurrentItemID = &id
		}
		if ids, ok := slot[unlockedItemIDKey].([]any); ok {
			seen := make(map[string]bool, len(ids))
			for _, entry := range ids {
				id, ok := entry.(string)
				if !ok || seen[id] {
					continue
				}
				seen[id] = true
				state.UnlockedItemIDs = append(state.UnlockedItemIDs, id)
			}
		}
		return state, true
	}

	if itemID, present := slot[legacyItemIDKey]; present {
		state := entities.SlotRollState{UnlockedItemIDs: []string{}}
		id, isString := itemID.(string)
		if isString {
			state.CurrentItemID = &id
		}
		if status, _ := slot[legacyStatusKey].(string); status == legacyUnlocked && isString {
			state.UnlockedItemIDs = append(state.UnlockedItemIDs, id)
		}
		return state, true
	}

	return entities.SlotRollState{}, false
}

// NormalizeGearStates walks player -> act -> slot -> raw slot state,
// normalising every leaf. Branches that end up empty are dropped and player
// keys that are not integers are skipped. It never fails.
func NormalizeGearStates(raw any) entities.PlayerGearStates {
	result := entities.PlayerGearStates{}

	players, ok := raw.(map[string]any)
	if !ok {
		return result
	}

	for playerKey, playerRaw := range players {
		player, err := strconv.Atoi(playerKey)
		if err != nil {
			continue
		}
		acts, ok := playerRaw.(map[string]any)
		if !ok {
			continue
		}

		normalizedActs := entities.PlayerGearState{}
		for actKey, actRaw := range acts {
			slots, ok := actRaw.(map[string]any)
			if !ok {
				continue
			}
			normalizedSlots := make(map[string]entities.SlotRollState)
			for slotID, slotRaw := range slots {
				if state, ok := NormalizeSlotState(slotRaw); ok {
					normalizedSlots[slotID] = state
				}
			}
			if len(normalizedSlots) > 0 {
				normalizedActs[entities.ActID(actKey)] = normalizedSlots
			}
		}

		if len(normalizedActs) > 0 {
			result[player] = normalizedActs
		}
	}

	return result
}
