package gearstate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/honor-run-forge/internal/catalog"
	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/gearstate"
)

type ReducersTestSuite struct {
	suite.Suite
	catalog *catalog.Catalog
	session entities.Session
}

func (s *ReducersTestSuite) SetupTest() {
	s.catalog = newTestCatalog(s.T())
	s.session = newTestSession(2)
}

func TestReducersSuite(t *testing.T) {
	suite.Run(t, new(ReducersTestSuite))
}

func (s *ReducersTestSuite) TestSelectBuild() {
	next := gearstate.SelectBuild(s.session, s.catalog, 1, "opt-b")

	s.Equal("opt-b", next.PlayerSelections[1])
	s.Equal("head", next.PlayerActiveSlots[1])
	s.Empty(s.session.PlayerSelections, "input session must not change")
	s.Empty(s.session.PlayerActiveSlots)

	option, ok := next.SelectedOption(1)
	s.True(ok)
	s.Equal("opt-b", option.ID)
}

func (s *ReducersTestSuite) TestResetSelectionKeepsGear() {
	next := gearstate.SelectBuild(s.session, s.catalog, 1, "opt-a")
	next = gearstate.UnlockItem(next, 1, entities.Act1, "head", "crown-a")
	next = gearstate.ResetSelection(next, 1)

	s.NotContains(next.PlayerSelections, 1)
	s.NotContains(next.PlayerActiveSlots, 1)
	state, ok := next.SlotState(1, entities.Act1, "head")
	s.True(ok)
	s.Equal([]string{"crown-a"}, state.UnlockedItemIDs)
}

func (s *ReducersTestSuite) TestResetSelectionWithoutSelectionIsNoop() {
	next := gearstate.ResetSelection(s.session, 2)
	s.True(samePointer(s.session.PlayerSelections, next.PlayerSelections))
	s.True(samePointer(s.session.PlayerActiveSlots, next.PlayerActiveSlots))
}

func (s *ReducersTestSuite) TestSelectSlot() {
	next := gearstate.SelectSlot(s.session, 2, "ring")
	s.Equal("ring", next.PlayerActiveSlots[2])
}

func (s *ReducersTestSuite) TestUnlockItemIsIdempotent() {
	once := gearstate.UnlockItem(s.session, 1, entities.Act1, "head", "crown-a")
	twice := gearstate.UnlockItem(once, 1, entities.Act1, "head", "crown-a")

	stateOnce, _ := once.SlotState(1, entities.Act1, "head")
	stateTwice, _ := twice.SlotState(1, entities.Act1, "head")
	s.Equal([]string{"crown-a"}, stateTwice.UnlockedItemIDs)
	s.Equal(stateOnce, stateTwice)
	s.Equal(strPtr("crown-a"), stateTwice.CurrentItemID)
}

func (s *ReducersTestSuite) TestUnlockItemAppendsInOrder() {
	next := gearstate.UnlockItem(s.session, 1, entities.Act1, "head", "crown-a")
	next = gearstate.UnlockItem(next, 1, entities.Act1, "head", "crown-b")

	state, _ := next.SlotState(1, entities.Act1, "head")
	s.Equal([]string{"crown-a", "crown-b"}, state.UnlockedItemIDs)
	s.Equal(strPtr("crown-b"), state.CurrentItemID)

	equipped, ok := state.EquippedItemID()
	s.True(ok)
	s.Equal("crown-b", equipped)
}

func (s *ReducersTestSuite) TestUnlockItemCopiesOnWrite() {
	first := gearstate.UnlockItem(s.session, 1, entities.Act1, "head", "crown-a")
	first = gearstate.UnlockItem(first, 2, entities.Act1, "ring", "band")
	second := gearstate.UnlockItem(first, 1, entities.Act1, "head", "crown-b")

	before, _ := first.SlotState(1, entities.Act1, "head")
	s.Equal([]string{"crown-a"}, before.UnlockedItemIDs)
	s.Empty(s.session.PlayerGearStates)

	s.True(samePointer(first.PlayerGearStates[2], second.PlayerGearStates[2]),
		"untouched player branch must be shared")
	s.False(samePointer(first.PlayerGearStates[1], second.PlayerGearStates[1]))
}

func (s *ReducersTestSuite) TestRemoveUnlockedItem() {
	next := gearstate.UnlockItem(s.session, 1, entities.Act1, "head", "crown-a")
	next = gearstate.UnlockItem(next, 1, entities.Act1, "head", "crown-b")
	next = gearstate.RemoveUnlockedItem(next, 1, entities.Act1, "head", "crown-a")

	state, ok := next.SlotState(1, entities.Act1, "head")
	s.True(ok)
	s.Equal([]string{"crown-b"}, state.UnlockedItemIDs)
	s.Equal(strPtr("crown-b"), state.CurrentItemID)
}

func (s *ReducersTestSuite) TestRemoveLeavesDanglingCurrentItem() {
	next := gearstate.UnlockItem(s.session, 1, entities.Act1, "head", "crown-a")
	next = gearstate.RemoveUnlockedItem(next, 1, entities.Act1, "head", "crown-a")

	state, ok := next.SlotState(1, entities.Act1, "head")
	s.True(ok, "slot entry stays present once emptied")
	s.Empty(state.UnlockedItemIDs)
	s.Equal(strPtr("crown-a"), state.CurrentItemID)
}

func (s *ReducersTestSuite) TestRemoveAbsentItemIsNoop() {
	base := gearstate.UnlockItem(s.session, 1, entities.Act1, "head", "crown-a")
	base = gearstate.UnlockItem(base, 2, entities.Act1, "ring", "band")

	testCases := []struct {
		name   string
		player int
		act    entities.ActID
		slot   string
		item   string
	}{
		{name: "item not unlocked", player: 1, act: entities.Act1, slot: "head", item: "crown-b"},
		{name: "missing player", player: 3, act: entities.Act1, slot: "head", item: "crown-a"},
		{name: "missing act", player: 1, act: entities.Act2, slot: "head", item: "crown-a"},
		{name: "missing slot", player: 1, act: entities.Act1, slot: "ring", item: "band"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			next := gearstate.RemoveUnlockedItem(base, tc.player, tc.act, tc.slot, tc.item)
			s.Equal(base, next)
			s.True(samePointer(base.PlayerGearStates, next.PlayerGearStates))
			s.True(samePointer(base.PlayerGearStates[1], next.PlayerGearStates[1]))
			s.True(samePointer(base.PlayerGearStates[2], next.PlayerGearStates[2]))
		})
	}
}

func (s *ReducersTestSuite) TestRegenerateRunClearsDerivedState() {
	next := gearstate.SelectBuild(s.session, s.catalog, 1, "opt-a")
	next = gearstate.UnlockItem(next, 1, entities.Act1, "head", "crown-a")
	next, _ = gearstate.ToggleTask(next, "t1", true)
	next = gearstate.RenamePlayer(next, 1, "Karlach")
	next = gearstate.SetActiveAct(next, s.catalog, entities.Act2)

	run := entities.RunResult{Players: []entities.PlayerOptionSet{{PlayerNumber: 1}}}
	next = gearstate.RegenerateRun(next, run)

	s.Equal(run, next.CurrentRun)
	s.Empty(next.PlayerSelections)
	s.Empty(next.PlayerGearStates)
	s.Empty(next.PlayerActiveSlots)
	s.Empty(next.CompletedTasks)
	s.Equal("Karlach", next.PlayerNames[1])
	s.Equal(entities.Act2, next.ActiveActID)
}

func (s *ReducersTestSuite) TestToggleTask() {
	next, roll := gearstate.ToggleTask(s.session, "t1", true)
	s.True(roll)
	s.True(next.CompletedTasks["t1"])

	again, roll := gearstate.ToggleTask(next, "t1", true)
	s.False(roll, "already complete tasks do not roll again")
	s.True(samePointer(next.CompletedTasks, again.CompletedTasks))

	unchecked, roll := gearstate.ToggleTask(again, "t1", false)
	s.False(roll)
	s.NotContains(unchecked.CompletedTasks, "t1")
	s.True(again.CompletedTasks["t1"], "input session must not change")

	noop, roll := gearstate.ToggleTask(unchecked, "t2", false)
	s.False(roll)
	s.True(samePointer(unchecked.CompletedTasks, noop.CompletedTasks))

	rerolled, roll := gearstate.ToggleTask(unchecked, "t1", true)
	s.True(roll)
	s.True(rerolled.CompletedTasks["t1"])
}

func (s *ReducersTestSuite) TestSetActiveAct() {
	next := gearstate.SetActiveAct(s.session, s.catalog, entities.Act2)
	s.Equal(entities.Act2, next.ActiveActID)

	ignored := gearstate.SetActiveAct(next, s.catalog, entities.Act3)
	s.Equal(entities.Act2, ignored.ActiveActID)
}

func (s *ReducersTestSuite) TestSetPlayerCountClamps() {
	testCases := []struct {
		in   int
		want int
	}{
		{in: -2, want: 1},
		{in: 0, want: 1},
		{in: 1, want: 1},
		{in: 3, want: 3},
		{in: 4, want: 4},
		{in: 9, want: 4},
	}
	for _, tc := range testCases {
		s.Equal(tc.want, gearstate.SetPlayerCount(s.session, tc.in).PlayerCount)
	}
}

func (s *ReducersTestSuite) TestRenamePlayer() {
	long := strings.Repeat("é", 50)
	next := gearstate.RenamePlayer(s.session, 1, long)
	s.Equal(strings.Repeat("é", entities.MaxPlayerNameLength), next.PlayerNames[1])

	next = gearstate.RenamePlayer(next, 2, "  Shadowheart  ")
	s.Equal("  Shadowheart  ", next.PlayerNames[2])
	s.Equal("Shadowheart", gearstate.PlayerDisplayName(next, 2))

	next = gearstate.RenamePlayer(next, 2, "   ")
	s.Equal("Player 2", gearstate.PlayerDisplayName(next, 2))
	s.Equal("Player 3", gearstate.PlayerDisplayName(next, 3))
}

func (s *ReducersTestSuite) TestApplyLootCardIgnoresPlaceholder() {
	placeholder := entities.LootCard{ID: "1-arsenal-3", PlayerNumber: 1}
	next := gearstate.ApplyLootCard(s.session, 1, placeholder, entities.Act1)
	s.Equal(s.session, next)

	item := entities.GearItem{ID: "band", SlotID: "ring"}
	card := entities.LootCard{ID: "1-adornments-band-1", PlayerNumber: 1, SlotID: strPtr("ring"), Item: &item}
	next = gearstate.ApplyLootCard(s.session, 1, card, entities.Act2)
	state, ok := next.SlotState(1, entities.Act2, "ring")
	s.True(ok)
	s.Equal([]string{"band"}, state.UnlockedItemIDs)
}
