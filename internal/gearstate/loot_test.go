package gearstate_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/honor-run-forge/internal/catalog"
	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/gearstate"
	"github.com/KirkDiggler/honor-run-forge/internal/pkg/random"
	"github.com/KirkDiggler/honor-run-forge/internal/testutils"
)

type LootTestSuite struct {
	suite.Suite
	catalog *catalog.Catalog
	session entities.Session
	task1   entities.Task
	task2   entities.Task
}

func (s *LootTestSuite) SetupTest() {
	s.catalog = newTestCatalog(s.T())
	s.session = newTestSession(2)
	s.task1, _ = s.catalog.Task("t1")
	s.task2, _ = s.catalog.Task("t2")
}

func TestLootSuite(t *testing.T) {
	suite.Run(t, new(LootTestSuite))
}

func (s *LootTestSuite) roll(session entities.Session, task entities.Task, seed uint64) *entities.LootOverlay {
	overlay, err := gearstate.RollLoot(&gearstate.RollLootInput{
		Catalog: s.catalog,
		Session: session,
		Task:    task,
		Roller:  random.NewSeeded(seed),
	})
	s.Require().NoError(err)
	return overlay
}

func (s *LootTestSuite) TestValidation() {
	_, err := gearstate.RollLoot(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = gearstate.RollLoot(&gearstate.RollLootInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "catalog: is required")
	s.Contains(err.Error(), "roller: is required")
	s.Contains(err.Error(), "task.id: is required")
}

func (s *LootTestSuite) TestNoSelectedPlayersMeansNoOverlay() {
	s.Nil(s.roll(s.session, s.task1, 1))
}

func (s *LootTestSuite) TestOneCardPerGroupInDealOrder() {
	session := gearstate.SelectBuild(s.session, s.catalog, 1, "opt-a")
	session = gearstate.SelectBuild(session, s.catalog, 2, "opt-b")

	overlay := s.roll(session, s.task1, 3)
	s.Require().NotNil(overlay)
	s.Equal("First Task", overlay.TaskName)
	s.Equal(entities.Act1, overlay.ActID)
	s.Require().Len(overlay.Cards, 6)
	s.Equal([]int{1, 2}, overlay.PlayerNumbers())

	for _, player := range []int{1, 2} {
		cards := overlay.CardsFor(player)
		s.Require().Len(cards, 3)
		s.Equal(entities.GroupWardrobe, cards[0].GroupID)
		s.Equal(entities.GroupAdornments, cards[1].GroupID)
		s.Equal(entities.GroupArsenal, cards[2].GroupID)

		s.True(cards[0].Selectable())
		s.Equal("Head", cards[0].SlotName)
		s.Equal("band", cards[1].Item.ID)
		s.Equal("Ring", cards[1].SlotName)

		// no act1 main-hand items
		s.False(cards[2].Selectable())
		s.Nil(cards[2].SlotID)
		s.Equal(entities.NoEligibleSlotName, cards[2].SlotName)
	}
}

func (s *LootTestSuite) TestScriptedCardIDs() {
	session := gearstate.SelectBuild(s.session, s.catalog, 1, "opt-a")
	roller := testutils.NewScriptedRoller(
		2,  // wardrobe picks crown-b
		8,  // suffix 7
		1,  // adornments picks band
		11, // suffix 10
		4,  // arsenal placeholder suffix 3
	)

	overlay, err := gearstate.RollLoot(&gearstate.RollLootInput{
		Catalog: s.catalog,
		Session: session,
		Task:    s.task1,
		Roller:  roller,
	})
	s.Require().NoError(err)
	s.Require().NotNil(overlay)

	ids := make([]string, 0, len(overlay.Cards))
	for _, card := range overlay.Cards {
		ids = append(ids, card.ID)
	}
	s.Equal([]string{"1-wardrobe-crown-b-7", "1-adornments-band-10", "1-arsenal-3"}, ids)
	s.Equal([]int{2, 100001, 1, 100001, 100001}, roller.Sizes())
	s.Equal(0, roller.Remaining())
}

func (s *LootTestSuite) TestUnlockedItemIsNeverOfferedAgain() {
	session := gearstate.SelectBuild(s.session, s.catalog, 1, "opt-a")
	session = gearstate.UnlockItem(session, 1, entities.Act1, "head", "crown-a")

	for seed := uint64(0); seed < 200; seed++ {
		overlay := s.roll(session, s.task1, seed)
		s.Require().NotNil(overlay)
		wardrobe := overlay.CardsFor(1)[0]
		s.Require().True(wardrobe.Selectable())
		s.Equal("crown-b", wardrobe.Item.ID, "seed %d", seed)
		s.Equal("head", *wardrobe.SlotID)
	}
}

func (s *LootTestSuite) TestExhaustedGroupFallsBackToPlaceholder() {
	session := gearstate.SelectBuild(s.session, s.catalog, 1, "opt-a")
	session = gearstate.UnlockItem(session, 1, entities.Act1, "head", "crown-a")
	session = gearstate.UnlockItem(session, 1, entities.Act1, "head", "crown-b")

	overlay := s.roll(session, s.task1, 5)
	s.Require().NotNil(overlay)
	cards := overlay.CardsFor(1)
	s.Require().Len(cards, 3)
	s.False(cards[0].Selectable())
	s.Equal(entities.NoEligibleSlotName, cards[0].SlotName)
	s.True(cards[1].Selectable())
}

func (s *LootTestSuite) TestExclusionIsScopedToAct() {
	session := gearstate.SelectBuild(s.session, s.catalog, 1, "opt-a")
	session = gearstate.UnlockItem(session, 1, entities.Act1, "ring", "band")

	overlay := s.roll(session, s.task2, 9)
	s.Require().NotNil(overlay)
	adornments := overlay.CardsFor(1)[1]
	s.Require().True(adornments.Selectable())
	s.Equal("band", adornments.Item.ID)
}

func (s *LootTestSuite) TestExhaustedPlayerGetsNoCards() {
	session := gearstate.SelectBuild(s.session, s.catalog, 1, "opt-a")
	session = gearstate.SelectBuild(session, s.catalog, 2, "opt-a")
	session = gearstate.UnlockItem(session, 1, entities.Act2, "ring", "band")
	session = gearstate.UnlockItem(session, 1, entities.Act2, "main-hand", "blade")

	overlay := s.roll(session, s.task2, 11)
	s.Require().NotNil(overlay)
	s.Empty(overlay.CardsFor(1))
	s.Len(overlay.CardsFor(2), 3)
	s.Equal([]int{2}, overlay.PlayerNumbers())
}

func (s *LootTestSuite) TestEveryoneExhaustedMeansNoOverlay() {
	session := gearstate.SelectBuild(s.session, s.catalog, 1, "opt-a")
	session = gearstate.UnlockItem(session, 1, entities.Act2, "ring", "band")
	session = gearstate.UnlockItem(session, 1, entities.Act2, "main-hand", "blade")

	s.Nil(s.roll(session, s.task2, 2))
}

func (s *LootTestSuite) TestGroupPoolMixesSlots() {
	c, err := catalog.New(catalog.Data{
		Acts:  []entities.Act{{ID: entities.Act1}},
		Slots: []entities.GearSlot{{ID: "head", Name: "Head"}, {ID: "boots", Name: "Boots"}},
		Items: []entities.GearItem{
			{ID: "hood", SlotID: "head", Acts: []entities.ActID{entities.Act1}},
			{ID: "sandals", SlotID: "boots", Acts: []entities.ActID{entities.Act1}},
		},
		Tasks: []entities.Task{{ID: "t1", ActID: entities.Act1, Name: "Task"}},
		CardGroups: []entities.SlotCardGroup{
			{ID: entities.GroupWardrobe, Name: "Wardrobe Card", SlotIDs: []string{"head", "boots"}},
		},
	})
	s.Require().NoError(err)

	session := gearstate.SelectBuild(s.session, c, 1, "opt-a")
	task, _ := c.Task("t1")

	seen := make(map[string]string)
	for seed := uint64(0); seed < 100; seed++ {
		overlay, err := gearstate.RollLoot(&gearstate.RollLootInput{
			Catalog: c,
			Session: session,
			Task:    task,
			Roller:  random.NewSeeded(seed),
		})
		s.Require().NoError(err)
		s.Require().NotNil(overlay)
		card := overlay.Cards[0]
		s.Require().True(card.Selectable())
		s.Equal(card.Item.SlotID, *card.SlotID)
		seen[card.Item.ID] = card.SlotName
	}
	s.Equal(map[string]string{"hood": "Head", "sandals": "Boots"}, seen)
}
