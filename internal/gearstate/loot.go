package gearstate

import (
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/honor-run-forge/internal/catalog"
	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/pkg/random"
)

// MaxCardSuffix bounds the random suffix of loot card ids
const MaxCardSuffix = 100000

// RollLootInput is the input for RollLoot
type RollLootInput struct {
	Catalog *catalog.Catalog
	Session entities.Session
	Task    entities.Task
	Roller  dice.Roller
}

// Validate ensures the input is usable
func (i *RollLootInput) Validate() error {
	vb := errors.NewValidationBuilder()
	if i.Catalog == nil {
		vb.RequiredField("catalog")
	}
	if i.Roller == nil {
		vb.RequiredField("roller")
	}
	errors.ValidateRequired("task.id", i.Task.ID, vb)
	return vb.Build()
}

// RollLoot deals one card per card group to every player with a locked-in
// build. A group whose pool is empty yields a placeholder card. Players whose
// groups are all empty get no cards. A nil overlay means nothing was dealt.
//
// The pool of a group mixes every slot in it: items eligible in the task's
// act, minus those the player already unlocked in that slot and act. The
// rolled item's own slot becomes the card's target.
func RollLoot(input *RollLootInput) (*entities.LootOverlay, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	act := input.Task.ActID
	available := make(map[string]bool)
	for _, slot := range input.Catalog.AvailableSlotsForAct(act) {
		available[slot.ID] = true
	}
	index := input.Catalog.Index()

	var cards []entities.LootCard
	for _, player := range input.Session.CurrentRun.Players {
		if input.Session.PlayerSelections[player.PlayerNumber] == "" {
			continue
		}

		playerCards := make([]entities.LootCard, 0, len(input.Catalog.CardGroups()))
		dealt := false
		for _, group := range input.Catalog.CardGroups() {
			pool := groupPool(input.Session, index, available, player.PlayerNumber, act, group)

			card := entities.LootCard{
				PlayerNumber: player.PlayerNumber,
				GroupID:      group.ID,
				GroupName:    group.Name,
				SlotName:     entities.NoEligibleSlotName,
			}

			if len(pool) == 0 {
				suffix, err := random.Int(input.Roller, 0, MaxCardSuffix)
				if err != nil {
					return nil, errors.Wrap(err, "failed to roll card id")
				}
				card.ID = fmt.Sprintf("%d-%s-%d", player.PlayerNumber, group.ID, suffix)
				playerCards = append(playerCards, card)
				continue
			}

			rolled, err := random.PickOne(input.Roller, pool)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to roll %s card", group.ID)
			}
			suffix, err := random.Int(input.Roller, 0, MaxCardSuffix)
			if err != nil {
				return nil, errors.Wrap(err, "failed to roll card id")
			}

			item := rolled
			slotID := rolled.SlotID
			card.ID = fmt.Sprintf("%d-%s-%s-%d", player.PlayerNumber, group.ID, rolled.ID, suffix)
			card.SlotID = &slotID
			card.SlotName = input.Catalog.SlotName(slotID)
			card.Item = &item
			playerCards = append(playerCards, card)
			dealt = true
		}

		if !dealt {
			slog.Info("No eligible loot for player",
				"player", player.PlayerNumber,
				"task", input.Task.ID,
				"act", act)
			continue
		}
		cards = append(cards, playerCards...)
	}

	if len(cards) == 0 {
		return nil, nil
	}

	slog.Info("Rolled loot",
		"task", input.Task.ID,
		"act", act,
		"cards", len(cards))

	return &entities.LootOverlay{
		TaskName: input.Task.Name,
		ActID:    act,
		Cards:    cards,
	}, nil
}

func groupPool(
	s entities.Session,
	index *catalog.Index,
	available map[string]bool,
	player int,
	act entities.ActID,
	group entities.SlotCardGroup,
) []entities.GearItem {
	var pool []entities.GearItem
	for _, slotID := range group.SlotIDs {
		if !available[slotID] {
			continue
		}
		state, _ := s.SlotState(player, act, slotID)
		for _, item := range index.Pool(act, slotID) {
			if !state.HasUnlocked(item.ID) {
				pool = append(pool, item)
			}
		}
	}
	return pool
}
