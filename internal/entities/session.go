package entities

// Session limits and defaults
const (
	MinPlayerCount      = 1
	MaxPlayerCount      = 4
	DefaultPlayerCount  = 2
	OptionsPerPlayer    = 3
	TotalLevels         = 12
	MaxPlayerNameLength = 40
	DefaultStorageKey   = "bg3-honor-run-v3"
)

// Session is the full persisted aggregate. Values are treated as immutable:
// transitions build new maps along the changed path and share the rest.
type Session struct {
	PlayerCount       int              `json:"playerCount"`
	CurrentRun        RunResult        `json:"currentRun"`
	PlayerSelections  map[int]string   `json:"playerSelections"`
	PlayerGearStates  PlayerGearStates `json:"playerGearStates"`
	PlayerActiveSlots map[int]string   `json:"playerActiveSlots"`
	CompletedTasks    map[string]bool  `json:"completedTasks"`
	ActiveActID       ActID            `json:"activeActId"`
	PlayerNames       map[int]string   `json:"playerNames"`
}

// NewSession creates an empty session around a drafted run
func NewSession(playerCount int, run RunResult, act ActID) Session {
	return Session{
		PlayerCount:       playerCount,
		CurrentRun:        run,
		PlayerSelections:  map[int]string{},
		PlayerGearStates:  PlayerGearStates{},
		PlayerActiveSlots: map[int]string{},
		CompletedTasks:    map[string]bool{},
		ActiveActID:       act,
		PlayerNames:       map[int]string{},
	}
}

// SelectedOption returns the option a player has locked in, if any
func (s Session) SelectedOption(playerNumber int) (CharacterOption, bool) {
	id, ok := s.PlayerSelections[playerNumber]
	if !ok || id == "" {
		return CharacterOption{}, false
	}
	player, ok := s.CurrentRun.Player(playerNumber)
	if !ok {
		return CharacterOption{}, false
	}
	return player.Option(id)
}

// SlotState returns the roll state for a player/act/slot path
func (s Session) SlotState(playerNumber int, act ActID, slotID string) (SlotRollState, bool) {
	acts, ok := s.PlayerGearStates[playerNumber]
	if !ok {
		return SlotRollState{}, false
	}
	slots, ok := acts[act]
	if !ok {
		return SlotRollState{}, false
	}
	state, ok := slots[slotID]
	return state, ok
}
