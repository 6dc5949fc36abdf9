package forge

import (
	"github.com/KirkDiggler/honor-run-forge/internal/entities"
)

// LoadInput defines the request for hydrating the live session
type LoadInput struct{}

// LoadOutput defines the response for hydrating the live session
type LoadOutput struct {
	Session entities.Session
	// Found is false when nothing was stored under the key
	Found bool
	// Recovered is true when part of the stored blob was discarded
	Recovered bool
}

// GenerateRunInput defines the request for drafting a new run
type GenerateRunInput struct {
	// PlayerCount overrides the session's player count when non-zero
	PlayerCount int
}

// GenerateRunOutput defines the response for drafting a new run
type GenerateRunOutput struct {
	Run entities.RunResult
}

// SelectBuildInput defines the request for locking in a build
type SelectBuildInput struct {
	PlayerNumber int
	OptionID     string
}

// SelectBuildOutput defines the response for locking in a build
type SelectBuildOutput struct {
	Option entities.CharacterOption
	// ArchetypeName is the display name of the build
	ArchetypeName string
	ActiveSlotID  string
}

// ResetSelectionInput defines the request for clearing a build
type ResetSelectionInput struct {
	PlayerNumber int
}

// ResetSelectionOutput defines the response for clearing a build
type ResetSelectionOutput struct{}

// SelectSlotInput defines the request for focusing a slot
type SelectSlotInput struct {
	PlayerNumber int
	SlotID       string
}

// SelectSlotOutput defines the response for focusing a slot
type SelectSlotOutput struct {
	SlotState entities.SlotRollState
}

// ToggleTaskInput defines the request for checking or unchecking a task
type ToggleTaskInput struct {
	TaskID    string
	Completed bool
}

// ToggleTaskOutput defines the response for checking or unchecking a task
type ToggleTaskOutput struct {
	Task entities.Task
	// Overlay is set when completing the task dealt loot cards
	Overlay *entities.LootOverlay
}

// RemoveUnlockedInput defines the request for dropping an unlocked item
type RemoveUnlockedInput struct {
	PlayerNumber int
	ActID        entities.ActID
	SlotID       string
	ItemID       string
}

// RemoveUnlockedOutput defines the response for dropping an unlocked item
type RemoveUnlockedOutput struct {
	// Removed is false when the item was not unlocked in that slot
	Removed bool
}

// SelectLootCardInput defines the request for locking a loot card
type SelectLootCardInput struct {
	PlayerNumber int
	CardID       string
}

// SelectLootCardOutput defines the response for locking a loot card
type SelectLootCardOutput struct {
	Card entities.LootCard
	// Pending lists players who still have to pick
	Pending []int
}

// ClearLootCardInput defines the request for releasing a loot card lock
type ClearLootCardInput struct {
	PlayerNumber int
}

// ClearLootCardOutput defines the response for releasing a loot card lock
type ClearLootCardOutput struct {
	Pending []int
}

// ConfirmLootInput defines the request for committing every locked card
type ConfirmLootInput struct{}

// ConfirmLootOutput defines the response for committing every locked card
type ConfirmLootOutput struct {
	// Committed maps player number to the card they took
	Committed map[int]entities.LootCard
}

// DismissLootInput defines the request for closing the overlay unconfirmed
type DismissLootInput struct{}

// DismissLootOutput defines the response for closing the overlay unconfirmed
type DismissLootOutput struct {
	Dismissed bool
}

// RenamePlayerInput defines the request for naming a player
type RenamePlayerInput struct {
	PlayerNumber int
	Name         string
}

// RenamePlayerOutput defines the response for naming a player
type RenamePlayerOutput struct {
	DisplayName string
}

// SetActiveActInput defines the request for switching act
type SetActiveActInput struct {
	ActID entities.ActID
}

// SetActiveActOutput defines the response for switching act
type SetActiveActOutput struct {
	ActiveActID entities.ActID
}

// SetPlayerCountInput defines the request for changing the table size
type SetPlayerCountInput struct {
	PlayerCount int
}

// SetPlayerCountOutput defines the response for changing the table size
type SetPlayerCountOutput struct {
	// PlayerCount is the clamped value stored on the session
	PlayerCount int
}

// PendingLoot describes the open loot overlay
type PendingLoot struct {
	Overlay entities.LootOverlay
	// Locks maps player number to their locked card id
	Locks map[int]string
	// Pending lists players who still have to pick
	Pending   []int
	Satisfied bool
}
