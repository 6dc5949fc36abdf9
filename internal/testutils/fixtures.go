package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/honor-run-forge/internal/catalog"
	"github.com/KirkDiggler/honor-run-forge/internal/entities"
)

// Fixture ids from CreateTestCatalog
const (
	TestTaskAct1 = "t1"
	TestTaskAct2 = "t2"

	// TestPlayerName is the default display name for fixtures
	TestPlayerName = "Astarion"
)

// TestCatalogData is a small catalog with one slot per card group:
//   - act1: two head items and one ring, no main-hand items
//   - act2: the same ring and one main-hand item, no head items
func TestCatalogData() catalog.Data {
	return catalog.Data{
		Acts: []entities.Act{
			{ID: entities.Act1, Name: "Act I"},
			{ID: entities.Act2, Name: "Act II"},
		},
		Slots: []entities.GearSlot{
			{ID: "head", Name: "Head"},
			{ID: "ring", Name: "Ring"},
			{ID: "main-hand", Name: "Main Hand"},
		},
		Items: []entities.GearItem{
			{ID: "crown-a", Name: "Crown A", SlotID: "head", Acts: []entities.ActID{entities.Act1}, Rarity: "rare"},
			{ID: "crown-b", Name: "Crown B", SlotID: "head", Acts: []entities.ActID{entities.Act1}, Rarity: "uncommon"},
			{ID: "band", Name: "Band", SlotID: "ring", Acts: []entities.ActID{entities.Act1, entities.Act2}},
			{ID: "blade", Name: "Blade", SlotID: "main-hand", Acts: []entities.ActID{entities.Act2}, Rarity: "legendary"},
		},
		Classes: []entities.ClassOption{
			{Name: "Fighter", Subclasses: []entities.NamedOption{{Name: "Champion"}, {Name: "Battle Master"}}},
			{Name: "Wizard", Subclasses: []entities.NamedOption{{Name: "Evocation"}}},
			{Name: "Druid", Subclasses: []entities.NamedOption{{Name: "Circle of the Moon"}}},
		},
		Tasks: []entities.Task{
			{ID: TestTaskAct1, ActID: entities.Act1, Name: "First Task"},
			{ID: TestTaskAct2, ActID: entities.Act2, Name: "Second Task"},
		},
		CardGroups: []entities.SlotCardGroup{
			{ID: entities.GroupWardrobe, Name: "Wardrobe Card", SlotIDs: []string{"head"}},
			{ID: entities.GroupAdornments, Name: "Adornment Card", SlotIDs: []string{"ring"}},
			{ID: entities.GroupArsenal, Name: "Arsenal Card", SlotIDs: []string{"main-hand"}},
		},
	}
}

// CreateTestCatalog builds the catalog from TestCatalogData
func CreateTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(TestCatalogData())
	require.NoError(t, err, "failed to build test catalog")
	return c
}
