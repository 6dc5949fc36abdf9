// Package builders provides test data builders for creating test fixtures
package builders

import (
	"fmt"

	"github.com/KirkDiggler/honor-run-forge/internal/entities"
)

// SessionBuilder provides a fluent interface for building test Session instances
type SessionBuilder struct {
	session entities.Session
}

// NewSessionBuilder creates a two player session in act1 with two options
// per player and nothing selected
func NewSessionBuilder() *SessionBuilder {
	b := &SessionBuilder{
		session: entities.NewSession(entities.DefaultPlayerCount, entities.RunResult{}, entities.Act1),
	}
	return b.WithPlayers(entities.DefaultPlayerCount)
}

// WithPlayers replaces the run with n players. Option ids follow the
// P{player}-O{option} pattern.
func (b *SessionBuilder) WithPlayers(n int) *SessionBuilder {
	run := entities.RunResult{Players: make([]entities.PlayerOptionSet, 0, n)}
	for p := 1; p <= n; p++ {
		set := entities.PlayerOptionSet{PlayerNumber: p}
		for o := 1; o <= 2; o++ {
			set.Options = append(set.Options, entities.CharacterOption{
				ID:     fmt.Sprintf("P%d-O%d", p, o),
				Gender: entities.NamedOption{Name: "Undefined Presence"},
				ClassSpread: []entities.ClassSpread{{
					Class:    entities.ClassOption{Name: "Fighter"},
					Subclass: entities.NamedOption{Name: "Champion"},
					Levels:   entities.TotalLevels,
				}},
			})
		}
		run.Players = append(run.Players, set)
	}
	b.session.PlayerCount = n
	b.session.CurrentRun = run
	return b
}

// WithSelection locks in an option for a player and points them at a slot
func (b *SessionBuilder) WithSelection(player int, optionID, slotID string) *SessionBuilder {
	b.session.PlayerSelections[player] = optionID
	b.session.PlayerActiveSlots[player] = slotID
	return b
}

// WithUnlocked records unlocked items for a slot. The last id is equipped.
func (b *SessionBuilder) WithUnlocked(player int, act entities.ActID, slotID string, itemIDs ...string) *SessionBuilder {
	acts, ok := b.session.PlayerGearStates[player]
	if !ok {
		acts = entities.PlayerGearState{}
		b.session.PlayerGearStates[player] = acts
	}
	slots, ok := acts[act]
	if !ok {
		slots = map[string]entities.SlotRollState{}
		acts[act] = slots
	}

	state := entities.SlotRollState{UnlockedItemIDs: append([]string{}, itemIDs...)}
	if len(itemIDs) > 0 {
		current := itemIDs[len(itemIDs)-1]
		state.CurrentItemID = &current
	}
	slots[slotID] = state
	return b
}

// WithCompletedTask marks a task complete
func (b *SessionBuilder) WithCompletedTask(taskID string) *SessionBuilder {
	b.session.CompletedTasks[taskID] = true
	return b
}

// WithActiveAct sets the active act
func (b *SessionBuilder) WithActiveAct(act entities.ActID) *SessionBuilder {
	b.session.ActiveActID = act
	return b
}

// WithName sets a player's display name
func (b *SessionBuilder) WithName(player int, name string) *SessionBuilder {
	b.session.PlayerNames[player] = name
	return b
}

// Build returns the session
func (b *SessionBuilder) Build() entities.Session {
	return b.session
}
