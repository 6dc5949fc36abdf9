// Package forge implements the forge orchestrator: the single writer that
// owns the live session, applies every presentation callback through the
// gearstate reducers and announces changes on the event bus.
package forge

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/honor-run-forge/internal/catalog"
	"github.com/KirkDiggler/honor-run-forge/internal/codec"
	"github.com/KirkDiggler/honor-run-forge/internal/draft"
	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/gearstate"
	"github.com/KirkDiggler/honor-run-forge/internal/repositories/session"
)

// Service defines the callbacks and queries the presentation layer drives
type Service interface {
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)

	GenerateRun(ctx context.Context, input *GenerateRunInput) (*GenerateRunOutput, error)
	SelectBuild(ctx context.Context, input *SelectBuildInput) (*SelectBuildOutput, error)
	ResetSelection(ctx context.Context, input *ResetSelectionInput) (*ResetSelectionOutput, error)
	SelectSlot(ctx context.Context, input *SelectSlotInput) (*SelectSlotOutput, error)
	ToggleTask(ctx context.Context, input *ToggleTaskInput) (*ToggleTaskOutput, error)
	RemoveUnlocked(ctx context.Context, input *RemoveUnlockedInput) (*RemoveUnlockedOutput, error)
	RenamePlayer(ctx context.Context, input *RenamePlayerInput) (*RenamePlayerOutput, error)
	SetActiveAct(ctx context.Context, input *SetActiveActInput) (*SetActiveActOutput, error)
	SetPlayerCount(ctx context.Context, input *SetPlayerCountInput) (*SetPlayerCountOutput, error)

	// Loot overlay
	SelectLootCard(ctx context.Context, input *SelectLootCardInput) (*SelectLootCardOutput, error)
	ClearLootCard(ctx context.Context, input *ClearLootCardInput) (*ClearLootCardOutput, error)
	ConfirmLoot(ctx context.Context, input *ConfirmLootInput) (*ConfirmLootOutput, error)
	DismissLoot(ctx context.Context, input *DismissLootInput) (*DismissLootOutput, error)

	// Queries
	Snapshot() entities.Session
	PendingLoot() (*PendingLoot, bool)
	GearIndex() *catalog.Index
	Catalog() *catalog.Catalog
}

// Drafter drafts the character options of a run
type Drafter interface {
	GenerateRun(playerCount int) (entities.RunResult, error)
}

var _ Drafter = (*draft.Generator)(nil)

// Config holds the dependencies for the forge orchestrator
type Config struct {
	Catalog    *catalog.Catalog
	Drafter    Drafter
	Roller     dice.Roller
	EventBus   events.EventBus
	Repository session.Repository
	StorageKey string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Drafter == nil {
		vb.RequiredField("Drafter")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	errors.ValidateRequired("StorageKey", c.StorageKey, vb)

	return vb.Build()
}

type orchestrator struct {
	catalog    *catalog.Catalog
	drafter    Drafter
	roller     dice.Roller
	eventBus   events.EventBus
	repository session.Repository
	storageKey string

	mu      sync.Mutex
	session entities.Session
	picks   *gearstate.Picks
}

// NewOrchestrator creates a forge orchestrator holding a freshly drafted
// default session. Call Load to replace it with the stored one.
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	run, err := cfg.Drafter.GenerateRun(entities.DefaultPlayerCount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to draft default run")
	}

	return &orchestrator{
		catalog:    cfg.Catalog,
		drafter:    cfg.Drafter,
		roller:     cfg.Roller,
		eventBus:   cfg.EventBus,
		repository: cfg.Repository,
		storageKey: cfg.StorageKey,
		session:    entities.NewSession(entities.DefaultPlayerCount, run, cfg.Catalog.DefaultActID()),
	}, nil
}

// Load hydrates the session from the repository. A missing record keeps
// the default session. Hydration is announced even then so autosave can
// start.
func (o *orchestrator) Load(ctx context.Context, _ *LoadInput) (*LoadOutput, error) {
	out := &LoadOutput{}

	got, err := o.repository.Get(ctx, session.GetInput{Key: o.storageKey})
	switch {
	case errors.IsNotFound(err):
		o.mu.Lock()
		out.Session = o.session
		o.mu.Unlock()
	case err != nil:
		return nil, errors.Wrap(err, "failed to load session")
	default:
		out.Found = true
		o.mu.Lock()
		decoded := codec.Decode(&codec.DecodeInput{
			Blob:     got.Record.Blob,
			Defaults: o.session,
			Acts:     o.catalog,
		})
		o.session = decoded.Session
		o.picks = nil
		out.Session = decoded.Session
		out.Recovered = decoded.Recovered
		o.mu.Unlock()
	}

	slog.Info("Loaded session",
		"key", o.storageKey,
		"found", out.Found,
		"recovered", out.Recovered,
		"players", out.Session.PlayerCount)

	o.publish(ctx, EventSessionHydrated, &sessionEntity{key: o.storageKey})
	return out, nil
}

// GenerateRun drafts a new run and clears all progress
func (o *orchestrator) GenerateRun(ctx context.Context, input *GenerateRunInput) (*GenerateRunOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	next := o.session
	if input.PlayerCount != 0 {
		next = gearstate.SetPlayerCount(next, input.PlayerCount)
	}
	run, err := o.drafter.GenerateRun(next.PlayerCount)
	if err != nil {
		o.mu.Unlock()
		return nil, errors.Wrap(err, "failed to draft run")
	}
	o.session = gearstate.RegenerateRun(next, run)
	o.picks = nil
	o.mu.Unlock()

	o.publish(ctx, EventSessionChanged, &sessionEntity{key: o.storageKey})
	return &GenerateRunOutput{Run: run}, nil
}

// SelectBuild locks in one of the player's drafted options
func (o *orchestrator) SelectBuild(ctx context.Context, input *SelectBuildInput) (*SelectBuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OptionID == "" {
		return nil, errors.InvalidArgument("option ID is required")
	}

	o.mu.Lock()
	set, ok := o.session.CurrentRun.Player(input.PlayerNumber)
	if !ok {
		o.mu.Unlock()
		return nil, errors.NotFoundf("player %d is not in the run", input.PlayerNumber)
	}
	option, ok := set.Option(input.OptionID)
	if !ok {
		o.mu.Unlock()
		return nil, errors.NotFoundf("option %s not found for player %d", input.OptionID, input.PlayerNumber)
	}
	o.session = gearstate.SelectBuild(o.session, o.catalog, input.PlayerNumber, input.OptionID)
	activeSlot := o.session.PlayerActiveSlots[input.PlayerNumber]
	o.mu.Unlock()

	name := draft.BuildArchetypeName(option.ClassSpread)
	slog.Info("Selected build",
		"player", input.PlayerNumber,
		"option_id", input.OptionID,
		"archetype", name)

	o.publish(ctx, EventSessionChanged, &playerEntity{number: input.PlayerNumber})
	return &SelectBuildOutput{
		Option:        option,
		ArchetypeName: name,
		ActiveSlotID:  activeSlot,
	}, nil
}

// ResetSelection clears a player's build, keeping their unlocks
func (o *orchestrator) ResetSelection(ctx context.Context, input *ResetSelectionInput) (*ResetSelectionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	o.session = gearstate.ResetSelection(o.session, input.PlayerNumber)
	o.mu.Unlock()

	o.publish(ctx, EventSessionChanged, &playerEntity{number: input.PlayerNumber})
	return &ResetSelectionOutput{}, nil
}

// SelectSlot focuses a player on a slot of the active act
func (o *orchestrator) SelectSlot(ctx context.Context, input *SelectSlotInput) (*SelectSlotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if _, ok := o.catalog.Slot(input.SlotID); !ok {
		return nil, errors.NotFoundf("slot %s not found", input.SlotID)
	}

	o.mu.Lock()
	o.session = gearstate.SelectSlot(o.session, input.PlayerNumber, input.SlotID)
	state, _ := o.session.SlotState(input.PlayerNumber, o.session.ActiveActID, input.SlotID)
	o.mu.Unlock()

	o.publish(ctx, EventSessionChanged, &playerEntity{number: input.PlayerNumber})
	return &SelectSlotOutput{SlotState: state}, nil
}

// ToggleTask checks or unchecks a task. Completing an incomplete task rolls
// loot; a dealt overlay replaces any overlay still open.
func (o *orchestrator) ToggleTask(ctx context.Context, input *ToggleTaskInput) (*ToggleTaskOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	task, ok := o.catalog.Task(input.TaskID)
	if !ok {
		return nil, errors.NotFoundf("task %s not found", input.TaskID)
	}

	o.mu.Lock()
	next, fire := gearstate.ToggleTask(o.session, task.ID, input.Completed)

	var overlay *entities.LootOverlay
	if fire {
		var err error
		overlay, err = gearstate.RollLoot(&gearstate.RollLootInput{
			Catalog: o.catalog,
			Session: next,
			Task:    task,
			Roller:  o.roller,
		})
		if err != nil {
			o.mu.Unlock()
			return nil, errors.Wrapf(err, "failed to roll loot for task %s", task.ID)
		}
	}

	o.session = next
	if overlay != nil {
		if o.picks != nil {
			slog.Warn("Replacing unconfirmed loot overlay", "task", o.picks.Overlay().TaskName)
		}
		o.picks = gearstate.NewPicks(*overlay)
	}
	o.mu.Unlock()

	o.publish(ctx, EventSessionChanged, &sessionEntity{key: o.storageKey})
	if overlay != nil {
		o.publish(ctx, EventLootDealt, &sessionEntity{key: o.storageKey})
	}

	return &ToggleTaskOutput{Task: task, Overlay: overlay}, nil
}

// RemoveUnlocked drops an item from a player's unlocked list
func (o *orchestrator) RemoveUnlocked(ctx context.Context, input *RemoveUnlockedInput) (*RemoveUnlockedOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	before := o.session
	state, ok := before.SlotState(input.PlayerNumber, input.ActID, input.SlotID)
	removed := ok && state.HasUnlocked(input.ItemID)
	o.session = gearstate.RemoveUnlockedItem(before, input.PlayerNumber, input.ActID, input.SlotID, input.ItemID)
	o.mu.Unlock()

	if !removed {
		return &RemoveUnlockedOutput{}, nil
	}

	slog.Info("Removed unlocked item",
		"player", input.PlayerNumber,
		"act", input.ActID,
		"slot", input.SlotID,
		"item", input.ItemID)

	o.publish(ctx, EventSessionChanged, &playerEntity{number: input.PlayerNumber})
	return &RemoveUnlockedOutput{Removed: true}, nil
}

// RenamePlayer stores a display name for a seat
func (o *orchestrator) RenamePlayer(ctx context.Context, input *RenamePlayerInput) (*RenamePlayerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("player_number", input.PlayerNumber, entities.MinPlayerCount, entities.MaxPlayerCount, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.session = gearstate.RenamePlayer(o.session, input.PlayerNumber, input.Name)
	name := gearstate.PlayerDisplayName(o.session, input.PlayerNumber)
	o.mu.Unlock()

	o.publish(ctx, EventSessionChanged, &playerEntity{number: input.PlayerNumber})
	return &RenamePlayerOutput{DisplayName: name}, nil
}

// SetActiveAct switches the act the table is playing. Unknown acts leave
// the session untouched.
func (o *orchestrator) SetActiveAct(ctx context.Context, input *SetActiveActInput) (*SetActiveActOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	o.session = gearstate.SetActiveAct(o.session, o.catalog, input.ActID)
	active := o.session.ActiveActID
	o.mu.Unlock()

	if active == input.ActID {
		o.publish(ctx, EventSessionChanged, &sessionEntity{key: o.storageKey})
	}
	return &SetActiveActOutput{ActiveActID: active}, nil
}

// SetPlayerCount changes the table size used by the next drafted run
func (o *orchestrator) SetPlayerCount(ctx context.Context, input *SetPlayerCountInput) (*SetPlayerCountOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	o.session = gearstate.SetPlayerCount(o.session, input.PlayerCount)
	count := o.session.PlayerCount
	o.mu.Unlock()

	o.publish(ctx, EventSessionChanged, &sessionEntity{key: o.storageKey})
	return &SetPlayerCountOutput{PlayerCount: count}, nil
}

// SelectLootCard locks a card for its player on the open overlay
func (o *orchestrator) SelectLootCard(_ context.Context, input *SelectLootCardInput) (*SelectLootCardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.picks == nil {
		return nil, errors.FailedPrecondition("no loot overlay is open")
	}
	if err := o.picks.Select(input.PlayerNumber, input.CardID); err != nil {
		return nil, err
	}

	card, _ := o.picks.Locked(input.PlayerNumber)
	return &SelectLootCardOutput{Card: card, Pending: o.picks.Pending()}, nil
}

// ClearLootCard releases a player's lock on the open overlay
func (o *orchestrator) ClearLootCard(_ context.Context, input *ClearLootCardInput) (*ClearLootCardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.picks == nil {
		return nil, errors.FailedPrecondition("no loot overlay is open")
	}
	o.picks.Clear(input.PlayerNumber)
	return &ClearLootCardOutput{Pending: o.picks.Pending()}, nil
}

// ConfirmLoot commits every lock as an unlock and closes the overlay. It
// fails while any player with a selectable card has not picked.
func (o *orchestrator) ConfirmLoot(ctx context.Context, _ *ConfirmLootInput) (*ConfirmLootOutput, error) {
	o.mu.Lock()
	if o.picks == nil {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition("no loot overlay is open")
	}

	committed := make(map[int]entities.LootCard)
	for _, player := range o.picks.Overlay().PlayerNumbers() {
		if card, ok := o.picks.Locked(player); ok {
			committed[player] = card
		}
	}

	next, err := o.picks.Confirm(o.session)
	if err != nil {
		o.mu.Unlock()
		return nil, err
	}
	overlay := o.picks.Overlay()
	o.session = next
	o.picks = nil
	o.mu.Unlock()

	players := make([]int, 0, len(committed))
	for player := range committed {
		players = append(players, player)
	}
	sort.Ints(players)
	for _, player := range players {
		card := committed[player]
		slog.Info("Unlocked item",
			"player", player,
			"act", overlay.ActID,
			"slot", *card.SlotID,
			"item", card.Item.ID,
			"task", overlay.TaskName)
	}

	o.publish(ctx, EventSessionChanged, &sessionEntity{key: o.storageKey})
	return &ConfirmLootOutput{Committed: committed}, nil
}

// DismissLoot closes the overlay without committing anything
func (o *orchestrator) DismissLoot(_ context.Context, _ *DismissLootInput) (*DismissLootOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	dismissed := o.picks != nil
	o.picks = nil
	return &DismissLootOutput{Dismissed: dismissed}, nil
}

// Snapshot returns the current session. The value shares maps with the
// live session and must not be mutated.
func (o *orchestrator) Snapshot() entities.Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session
}

// PendingLoot describes the open overlay, if any
func (o *orchestrator) PendingLoot() (*PendingLoot, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.picks == nil {
		return nil, false
	}

	overlay := o.picks.Overlay()
	locks := make(map[int]string)
	for _, player := range overlay.PlayerNumbers() {
		if card, ok := o.picks.Locked(player); ok {
			locks[player] = card.ID
		}
	}

	return &PendingLoot{
		Overlay:   overlay,
		Locks:     locks,
		Pending:   o.picks.Pending(),
		Satisfied: o.picks.Satisfied(),
	}, true
}

// GearIndex returns the item lookup built from the catalog
func (o *orchestrator) GearIndex() *catalog.Index {
	return o.catalog.Index()
}

// Catalog returns the static catalog
func (o *orchestrator) Catalog() *catalog.Catalog {
	return o.catalog
}

// publish announces a change. It runs outside the lock so subscribers may
// query the orchestrator.
func (o *orchestrator) publish(ctx context.Context, eventType string, source core.Entity) {
	if err := o.eventBus.Publish(ctx, events.NewGameEvent(eventType, source, nil)); err != nil {
		slog.Warn("Failed to publish forge event",
			"event", eventType,
			"source", strings.Join([]string{source.GetType(), source.GetID()}, ":"),
			"error", err)
	}
}
